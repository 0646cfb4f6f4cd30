package soldlog

// Segment is one PT_LOAD of an input module as placed by the combiner.
// Vaddr is the address inside the merged image, OrigVaddr the address
// inside the module before merging.
type Segment struct {
	Name      string
	Vaddr     uint64
	OrigVaddr uint64
	Memsz     uint64

	Line int
}

func (s Segment) End() uint64 {
	return s.Vaddr + s.Memsz
}

// Contains reports whether vaddr lies in [Vaddr, Vaddr+Memsz).
func (s Segment) Contains(vaddr uint64) bool {
	return vaddr >= s.Vaddr && vaddr-s.Vaddr < s.Memsz
}

func (s Segment) Translate(vaddr uint64) uint64 {
	return vaddr - s.Vaddr + s.OrigVaddr
}
