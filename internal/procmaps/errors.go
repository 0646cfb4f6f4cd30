package procmaps

import "errors"

var (
	ErrMalformedMapLine = errors.New("malformed maps line")
)
