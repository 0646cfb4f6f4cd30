package soldlog

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	MappingPattern *regexp.Regexp

	requiredKeys = []string{"name", "vaddr", "orig_vaddr", "memsz"}
)

func init() {
	MappingPattern = regexp.MustCompile(`PT_LOAD mapping: (.*)$`)
}

func ParseFile(path string) (segments []Segment, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	if segments, err = Parse(f); err != nil {
		err = errors.WithMessage(err, path)
	}
	return
}

// Parse collects the PT_LOAD mapping records of a combiner log in log
// order. Other lines are skipped; the first malformed record aborts.
func Parse(r io.Reader) (segments []Segment, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		matched := MappingPattern.FindStringSubmatch(scanner.Text())
		if matched == nil {
			continue
		}
		segment, perr := parseRecord(matched[1])
		if perr != nil {
			return nil, errors.WithMessagef(perr, "line %d", lineno)
		}
		segment.Line = lineno
		log.Debugf("segment: %+v", segment)
		segments = append(segments, segment)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read log")
	}
	log.Debugf("parsed %d PT_LOAD mappings\n", len(segments))
	return
}

func parseRecord(payload string) (segment Segment, err error) {
	seen := map[string]bool{}
	for _, tok := range strings.Fields(payload) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			err = errors.Wrapf(ErrMalformedLogRecord, "token %q is not key=value", tok)
			return
		}
		seen[key] = true
		if key == "name" {
			segment.Name = value
			continue
		}

		n, ok := parseNumber(value)
		if !ok {
			err = errors.Wrapf(ErrMalformedLogRecord, "%s=%q is not a number", key, value)
			return
		}
		switch key {
		case "vaddr":
			segment.Vaddr = n
		case "orig_vaddr":
			segment.OrigVaddr = n
		case "memsz":
			segment.Memsz = n
		}
	}
	for _, key := range requiredKeys {
		if !seen[key] {
			err = errors.Wrapf(ErrMalformedLogRecord, "missing %s", key)
			return
		}
	}
	return
}

// parseNumber accepts the combiner's 0x-prefixed hex strings as well as
// plain decimal.
func parseNumber(s string) (uint64, bool) {
	base := 10
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s, base = s[2:], 16
	}
	n, err := strconv.ParseUint(s, base, 64)
	return n, err == nil
}
