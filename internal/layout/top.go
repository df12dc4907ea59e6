package layout

import "github.com/simonzhangsm/capnproto/internal/holeset"

// Top is the root allocator for one struct. It has no parent: every
// allocation either consumes an existing hole or extends the data section
// by one 64-bit word (spawning holes for the unused remainder of that
// word).
type Top struct {
	dataWords uint32
	pointers  uint32
	holes     holeset.Set[uint32]
}

// NewTop returns an empty Top allocator.
func NewTop() *Top {
	return &Top{}
}

func (t *Top) AddVoid() {}

func (t *Top) AddData(lgSize int) uint32 {
	if offset, ok := t.holes.TryAllocate(lgSize); ok {
		return offset
	}
	// 64/2^lgSize fields of this size fit per word; the new field lands at
	// the start of a freshly appended word.
	offset := t.dataWords * (64 >> uint(lgSize))
	t.dataWords++
	if lgSize < holeset.NumSizes {
		t.holes.AddHolesAtEnd(lgSize, offset+1, holeset.NumSizes)
	}
	return offset
}

func (t *Top) AddPointer() uint32 {
	idx := t.pointers
	t.pointers++
	return idx
}

func (t *Top) TryExpandData(oldLgSize int, oldOffset uint32, factor int) bool {
	return t.holes.TryExpand(oldLgSize, oldOffset, factor)
}

// DataWords returns the current data-section size in 64-bit words.
func (t *Top) DataWords() uint32 { return t.dataWords }

// Pointers returns the current pointer-section size in slots.
func (t *Top) Pointers() uint32 { return t.pointers }

// FirstWordUsed reports the lgSize (0..6) of the used prefix of the first
// word.
func (t *Top) FirstWordUsed() int {
	if t.dataWords == 0 {
		return 0
	}
	return t.holes.FirstWordUsed()
}
