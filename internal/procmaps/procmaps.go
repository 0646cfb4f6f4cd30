package procmaps

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func ParseFile(path string) (regions []MappedRegion, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	if regions, err = Parse(f); err != nil {
		err = errors.WithMessage(err, path)
	}
	return
}

// Parse reads a maps snapshot in listing order. Every line must carry five
// fields, or six when the region is backed by a file.
func Parse(r io.Reader) (regions []MappedRegion, err error) {
	bases := baseTable{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		region, perr := parseLine(line)
		if perr != nil {
			return nil, errors.WithMessagef(perr, "line %d", lineno)
		}
		bases.assign(&region)
		log.Debugf("region: %s base=%x", region, region.Base)
		regions = append(regions, region)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read maps")
	}
	log.Debugf("parsed %d regions of %d objects\n", len(regions), len(bases))
	return
}

func parseLine(line string) (region MappedRegion, err error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 5:
	case 6:
		region.Path = fields[5]
	default:
		err = errors.Wrapf(ErrMalformedMapLine, "%d fields in %q", len(fields), line)
		return
	}

	start, end, ok := strings.Cut(fields[0], "-")
	if !ok {
		err = errors.Wrapf(ErrMalformedMapLine, "address range %q", fields[0])
		return
	}
	if region.Start, err = strconv.ParseUint(start, 16, 64); err != nil {
		err = errors.Wrapf(ErrMalformedMapLine, "start address %q", start)
		return
	}
	if region.End, err = strconv.ParseUint(end, 16, 64); err != nil {
		err = errors.Wrapf(ErrMalformedMapLine, "end address %q", end)
		return
	}
	if region.End < region.Start {
		err = errors.Wrapf(ErrMalformedMapLine, "address range %q ends before it starts", fields[0])
		return
	}

	region.Perms = fields[1]
	if region.Offset, err = strconv.ParseUint(fields[2], 16, 64); err != nil {
		err = errors.Wrapf(ErrMalformedMapLine, "offset %q", fields[2])
		return
	}
	return
}
