package procmaps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	merged = "/opt/sold/libtorch_merged.so"
	base   = 0x7f4107ff4000
)

func TestParseFile(t *testing.T) {
	regions, err := ParseFile("testdata/maps")
	require.NoError(t, err)
	require.Len(t, regions, 9)

	assert.Equal(t, MappedRegion{
		Path:   merged,
		Start:  0x7f4108000000,
		End:    0x7f4108420000,
		Base:   base,
		Perms:  "r-xp",
		Offset: 0xc000,
	}, regions[4])
	assert.Equal(t, uint64(0x420000), regions[4].Size())
	assert.Equal(t, "[heap]", regions[2].Path)
	assert.Equal(t, uint64(0x55d4c6a00000), regions[1].Base)
}

func TestParseGroupsRegionsByPath(t *testing.T) {
	regions, err := ParseFile("testdata/maps")
	require.NoError(t, err)

	var got []MappedRegion
	for _, r := range regions {
		if r.Path == merged {
			got = append(got, r)
		}
	}
	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, uint64(base), r.Base, r.String())
	}
	assert.NotEqual(t, got[1].Start, got[1].Base)
}

func TestParseAnonymousRegionsShareBase(t *testing.T) {
	regions, err := ParseFile("testdata/maps")
	require.NoError(t, err)

	anon := regions[6]
	assert.True(t, anon.Anonymous())
	assert.Equal(t, uint64(0x7f4108430000), anon.Base)
	assert.Equal(t, anon.Base, regions[7].Base)
	assert.Equal(t, "7f4108430000-7f4108438000 rw-p [anonymous]", anon.String())
}

func TestParseFirstOccurrenceFixesBase(t *testing.T) {
	input := strings.Join([]string{
		"00002000-00003000 r-xp 00000000 08:01 11 /lib/a.so",
		"00001000-00002000 r--p 00000000 08:01 11 /lib/a.so",
		"",
		"00005000-00006000 r--p 00000000 08:01 12 /lib/b.so",
	}, "\n")
	regions, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, regions, 3)

	assert.Equal(t, uint64(0x2000), regions[0].Base)
	assert.Equal(t, uint64(0x2000), regions[1].Base)
	assert.Equal(t, uint64(0x5000), regions[2].Base)
}

func TestParseMalformed(t *testing.T) {
	for _, c := range []struct {
		name string
		line string
		msg  string
	}{
		{
			name: "four fields",
			line: "00400000-00452000 r-xp 00000000 08:02",
			msg:  "4 fields",
		},
		{
			name: "seven fields",
			line: "00400000-00452000 r-xp 00000000 08:02 173521 /tmp/a.so (deleted)",
			msg:  "7 fields",
		},
		{
			name: "range without dash",
			line: "00400000 r-xp 00000000 08:02 173521",
			msg:  "address range",
		},
		{
			name: "bad start",
			line: "0040zz00-00452000 r-xp 00000000 08:02 173521",
			msg:  `start address "0040zz00"`,
		},
		{
			name: "bad end",
			line: "00400000-xyz r-xp 00000000 08:02 173521",
			msg:  `end address "xyz"`,
		},
		{
			name: "reversed range",
			line: "00452000-00400000 r-xp 00000000 08:02 173521",
			msg:  "ends before it starts",
		},
		{
			name: "bad offset",
			line: "00400000-00452000 r-xp 0000g000 08:02 173521",
			msg:  `offset "0000g000"`,
		},
	} {
		t.Run(c.name, func(t *testing.T) {
			input := "00001000-00002000 r--p 00000000 08:01 11 /lib/a.so\n" + c.line + "\n"
			_, err := Parse(strings.NewReader(input))
			require.ErrorIs(t, err, ErrMalformedMapLine)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestRegionContains(t *testing.T) {
	r := MappedRegion{Start: 0x1000, End: 0x2000}
	assert.False(t, r.Contains(0xfff))
	assert.True(t, r.Contains(0x1000))
	assert.True(t, r.Contains(0x1fff))
	assert.False(t, r.Contains(0x2000))
}
