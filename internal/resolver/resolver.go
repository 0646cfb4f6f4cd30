package resolver

import (
	"github.com/jschwinger233/resolveaddr/internal/procmaps"
	"github.com/jschwinger233/resolveaddr/internal/soldlog"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Status int

const (
	Resolved Status = iota
	AddressNotMapped
	NoOwningModule
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case AddressNotMapped:
		return "address not mapped"
	case NoOwningModule:
		return "no owning module"
	}
	return "unknown"
}

type Owner struct {
	Module   string
	OrigAddr uint64
}

// Result is the answer for one runtime address. Region is nil when the
// address is not mapped; RelAddr is relative to the merged image.
type Result struct {
	Addr    uint64
	Region  *procmaps.MappedRegion
	RelAddr uint64
	Owners  []Owner
}

func (r *Result) Status() Status {
	switch {
	case r.Region == nil:
		return AddressNotMapped
	case len(r.Owners) == 0:
		return NoOwningModule
	}
	return Resolved
}

// Resolve maps addr to the merged image through the first region containing
// it, then back to every segment covering the image address. Overlapping
// segments are all reported.
func Resolve(addr uint64, segments []soldlog.Segment, regions []procmaps.MappedRegion) (result *Result) {
	result = &Result{Addr: addr}
	for i := range regions {
		if regions[i].Contains(addr) {
			result.Region = &regions[i]
			break
		}
	}
	if result.Region == nil {
		log.Debugf("%x is outside all %d regions", addr, len(regions))
		return
	}

	result.RelAddr = addr - result.Region.Base
	log.Debugf("%x is in %s, base %x", addr, result.Region, result.Region.Base)

	result.Owners = lo.FilterMap(segments, func(segment soldlog.Segment, _ int) (Owner, bool) {
		if !segment.Contains(result.RelAddr) {
			return Owner{}, false
		}
		log.Debugf("%x is in segment %+v", result.RelAddr, segment)
		return Owner{
			Module:   segment.Name,
			OrigAddr: segment.Translate(result.RelAddr),
		}, true
	})
	if len(result.Owners) > 1 {
		log.Warnf("%x is covered by %d segments", result.RelAddr, len(result.Owners))
	}
	return
}
