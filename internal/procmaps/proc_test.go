//go:build linux
// +build linux

package procmaps

import (
	"os"
	"testing"

	"github.com/prometheus/procfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProcMatchesParse(t *testing.T) {
	fs, err := procfs.NewFS("testdata/proc")
	require.NoError(t, err)

	live, err := ReadProc(fs, 4242)
	require.NoError(t, err)
	snapshot, err := ParseFile("testdata/proc/4242/maps")
	require.NoError(t, err)

	assert.Equal(t, snapshot, live)
}

func TestReadProcUnknownPid(t *testing.T) {
	fs, err := procfs.NewFS("testdata/proc")
	require.NoError(t, err)

	_, err = ReadProc(fs, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open process 1")
}

func TestReadProcSelf(t *testing.T) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		t.Skip("procfs not mounted")
	}

	regions, err := ReadProc(fs, os.Getpid())
	require.NoError(t, err)
	require.NotEmpty(t, regions)
	for _, r := range regions {
		assert.LessOrEqual(t, r.Start, r.End)
		assert.Len(t, r.Perms, 4)
	}
}

func TestPermString(t *testing.T) {
	assert.Equal(t, "----", permString(nil))
	assert.Equal(t, "r-xp", permString(&procfs.ProcMapPermissions{Read: true, Execute: true, Private: true}))
	assert.Equal(t, "rw-s", permString(&procfs.ProcMapPermissions{Read: true, Write: true, Shared: true}))
}
