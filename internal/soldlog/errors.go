package soldlog

import "errors"

var (
	ErrMalformedLogRecord = errors.New("malformed PT_LOAD mapping record")
)
