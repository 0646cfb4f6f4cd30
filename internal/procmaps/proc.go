//go:build linux
// +build linux

package procmaps

import (
	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
	log "github.com/sirupsen/logrus"
)

// ReadProc reads the live maps of pid through fs and groups the regions
// exactly like Parse does.
func ReadProc(fs procfs.FS, pid int) (regions []MappedRegion, err error) {
	proc, err := fs.Proc(pid)
	if err != nil {
		err = errors.Wrapf(err, "open process %d", pid)
		return
	}
	maps, err := proc.ProcMaps()
	if err != nil {
		err = errors.Wrapf(err, "read maps of process %d", pid)
		return
	}

	bases := baseTable{}
	for _, m := range maps {
		region := MappedRegion{
			Path:   m.Pathname,
			Start:  uint64(m.StartAddr),
			End:    uint64(m.EndAddr),
			Perms:  permString(m.Perms),
			Offset: uint64(m.Offset),
		}
		bases.assign(&region)
		regions = append(regions, region)
	}
	log.Debugf("read %d regions of process %d\n", len(regions), pid)
	return
}

func permString(p *procfs.ProcMapPermissions) string {
	if p == nil {
		return "----"
	}
	perms := []byte("---p")
	if p.Read {
		perms[0] = 'r'
	}
	if p.Write {
		perms[1] = 'w'
	}
	if p.Execute {
		perms[2] = 'x'
	}
	if p.Shared {
		perms[3] = 's'
	}
	return string(perms)
}
