//go:build linux
// +build linux

package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-sysinfo"
	"github.com/jschwinger233/resolveaddr/internal/procmaps"
	"github.com/jschwinger233/resolveaddr/internal/resolver"
	"github.com/jschwinger233/resolveaddr/internal/soldlog"
	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
	log "github.com/sirupsen/logrus"
)

const defaultProcRoot = procfs.DefaultMountPoint

type Options struct {
	LogPath  string
	MapsPath string
	Pid      int
	ProcRoot string
	Dump     bool
}

type AddrResolver struct {
	segments []soldlog.Segment
	regions  []procmaps.MappedRegion
	dump     bool
}

// NewAddrResolver parses both inputs up front; a bad record in either one
// fails before any address is looked at.
func NewAddrResolver(opts Options) (_ *AddrResolver, err error) {
	segments, err := soldlog.ParseFile(opts.LogPath)
	if err != nil {
		return
	}
	if len(segments) == 0 {
		log.Warnf("no PT_LOAD mapping found in %s", opts.LogPath)
	}

	regions, err := loadRegions(opts)
	if err != nil {
		return
	}
	log.Debugf("loaded %d segments and %d regions\n", len(segments), len(regions))

	return &AddrResolver{
		segments: segments,
		regions:  regions,
		dump:     opts.Dump,
	}, nil
}

func loadRegions(opts Options) (regions []procmaps.MappedRegion, err error) {
	if opts.Pid == 0 {
		return procmaps.ParseFile(opts.MapsPath)
	}

	root := opts.ProcRoot
	if root == "" {
		root = defaultProcRoot
	}
	if root == defaultProcRoot {
		describeProcess(opts.Pid)
	}
	fs, err := procfs.NewFS(root)
	if err != nil {
		err = errors.Wrapf(err, "mount %s", root)
		return
	}
	return procmaps.ReadProc(fs, opts.Pid)
}

func describeProcess(pid int) {
	proc, err := sysinfo.Process(pid)
	if err != nil {
		log.Warnf("failed to inspect process %d: %v", pid, err)
		return
	}
	info, err := proc.Info()
	if err != nil {
		log.Warnf("failed to inspect process %d: %v", pid, err)
		return
	}
	log.Infof("process %d: %s (%s)\n", info.PID, info.Name, info.Exe)
}

func (r *AddrResolver) Resolve(addr uint64, w io.Writer) *resolver.Result {
	if r.dump {
		resolver.PrintSegments(w, r.segments)
		resolver.PrintRegions(w, r.regions)
	}
	result := resolver.Resolve(addr, r.segments, r.regions)
	log.Debugf("%x: %s", addr, result.Status())
	result.Print(w)
	return result
}

// ParseAddress accepts any Go integer literal: 4096, 0x1000, 0o10000.
func ParseAddress(s string) (addr uint64, err error) {
	if addr, err = strconv.ParseUint(strings.TrimSpace(s), 0, 64); err != nil {
		err = errors.Wrapf(err, "invalid address %q", s)
	}
	return
}
