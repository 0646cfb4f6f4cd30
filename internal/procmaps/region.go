package procmaps

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// MappedRegion is one line of a /proc/<pid>/maps listing. Base is the start
// of the first region in the listing backed by the same Path.
type MappedRegion struct {
	Path   string
	Start  uint64
	End    uint64
	Base   uint64
	Perms  string
	Offset uint64
}

func (r MappedRegion) Size() uint64 {
	return r.End - r.Start
}

func (r MappedRegion) Contains(addr uint64) bool {
	return r.Start <= addr && addr < r.End
}

func (r MappedRegion) Anonymous() bool {
	return r.Path == ""
}

func (r MappedRegion) String() string {
	path := r.Path
	if r.Anonymous() {
		path = "[anonymous]"
	}
	return fmt.Sprintf("%x-%x %s %s", r.Start, r.End, r.Perms, path)
}

// baseTable remembers the first start address seen per path. Listings are
// expected in ascending address order, so the first region of a file is
// its lowest one.
type baseTable map[string]uint64

func (t baseTable) assign(region *MappedRegion) {
	base, ok := t[region.Path]
	if !ok {
		base = region.Start
		t[region.Path] = base
	}
	if base > region.Start {
		log.Warnf("regions of %q are not in ascending order: base %x above %x", region.Path, base, region.Start)
	}
	region.Base = base
}
