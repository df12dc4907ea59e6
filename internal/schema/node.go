// Package schema defines the output schema node records the translator
// populates. The fields are plain data: callers set them through the
// setters or directly (the walker appends to Fields), and tests assert on
// them directly.
package schema

// ListEncoding is the preferred compact on-wire representation for a list
// of this struct.
type ListEncoding uint8

const (
	EncodingEmpty ListEncoding = iota
	EncodingBit
	EncodingByte
	EncodingTwoBytes
	EncodingFourBytes
	EncodingEightBytes
	EncodingPointer
	EncodingInlineComposite
)

func (e ListEncoding) String() string {
	switch e {
	case EncodingEmpty:
		return "empty"
	case EncodingBit:
		return "bit"
	case EncodingByte:
		return "byte"
	case EncodingTwoBytes:
		return "two_bytes"
	case EncodingFourBytes:
		return "four_bytes"
	case EncodingEightBytes:
		return "eight_bytes"
	case EncodingPointer:
		return "pointer"
	case EncodingInlineComposite:
		return "inline_composite"
	default:
		return "unknown"
	}
}

// PreferredListEncoding is a pure function of the post-layout (dataWords,
// pointerCount, firstWordUsed) triple.
func PreferredListEncoding(dataWords, pointerCount uint32, firstWordUsed int) ListEncoding {
	switch {
	case dataWords == 0 && pointerCount == 0:
		return EncodingEmpty
	case dataWords == 1 && pointerCount == 0:
		switch firstWordUsed {
		case 0:
			return EncodingBit
		case 1, 2, 3:
			return EncodingByte
		case 4:
			return EncodingTwoBytes
		case 5:
			return EncodingFourBytes
		case 6:
			return EncodingEightBytes
		}
		return EncodingInlineComposite
	case dataWords == 0 && pointerCount == 1:
		return EncodingPointer
	default:
		return EncodingInlineComposite
	}
}

// FieldOffset is a field's placement: Offset is expressed as a multiple of
// the field's own size. PointerSlot is meaningful only when IsPointer is
// true.
type FieldOffset struct {
	IsPointer   bool
	LgSize      int // bit-size exponent for data fields; unused for pointers
	Offset      uint32
	PointerSlot uint32
}

// FieldNode is the slice of a struct's schema devoted to one field.
type FieldNode struct {
	Name      string
	CodeOrder uint32
	Ordinal   uint16

	Offset       FieldOffset
	GroupID      uint64
	InGroup      bool
	Discriminant *uint16 // set when the field is a union variant
}

// EnumerantNode is one entry of an enum's EnumerantTable.
type EnumerantNode struct {
	Name      string
	CodeOrder uint32
}

// Node is the output schema record for a struct-shaped declaration (a
// struct, or one of its named groups/unions).
type Node struct {
	ID          uint64
	ScopeID     uint64
	DisplayName string
	IsGroup     bool

	DataSectionWordSize uint32
	PointerSectionSize  uint32
	PreferredEncoding   ListEncoding

	DiscriminantCount  uint16
	DiscriminantOffset uint32 // multiple of 16 bits

	// Enumerants holds an enum declaration's table, ordered by ordinal
	// ascending; unused for structs.
	Enumerants []EnumerantNode

	Fields []FieldNode
}

func (n *Node) SetID(id uint64)              { n.ID = id }
func (n *Node) SetScopeID(id uint64)         { n.ScopeID = id }
func (n *Node) SetDisplayName(name string)   { n.DisplayName = name }
func (n *Node) SetGroupID(id uint64)         { n.IsGroup = true; n.ID = id }

func (n *Node) SetDataSectionWordSize(words uint32) { n.DataSectionWordSize = words }
func (n *Node) SetPointerSectionSize(slots uint32)  { n.PointerSectionSize = slots }
func (n *Node) SetPreferredListEncoding(e ListEncoding) { n.PreferredEncoding = e }

// SetEnumerants records an enum node's ordinal-ordered table.
func (n *Node) SetEnumerants(table []EnumerantNode) { n.Enumerants = table }

func (n *Node) SetDiscriminantCount(c uint16)   { n.DiscriminantCount = c }
func (n *Node) SetDiscriminantOffset(o uint32)  { n.DiscriminantOffset = o }

// SetOffset records field's placement.
func (n *Node) SetOffset(fieldIndex int, off FieldOffset) {
	n.ensureField(fieldIndex).Offset = off
}

// SetDiscriminantValue marks fieldIndex as belonging to the enclosing
// union, tagged by discriminant value disc.
func (n *Node) SetDiscriminantValue(fieldIndex int, disc uint16) {
	d := disc
	n.ensureField(fieldIndex).Discriminant = &d
}

// SetOrdinal records the explicit ordinal that placed fieldIndex.
func (n *Node) SetOrdinal(fieldIndex int, ordinal uint16) {
	n.ensureField(fieldIndex).Ordinal = ordinal
}

// SetGroupMembership marks fieldIndex as belonging to the group/union node
// identified by groupID.
func (n *Node) SetGroupMembership(fieldIndex int, groupID uint64) {
	f := n.ensureField(fieldIndex)
	f.InGroup = true
	f.GroupID = groupID
}

func (n *Node) ensureField(i int) *FieldNode {
	for len(n.Fields) <= i {
		n.Fields = append(n.Fields, FieldNode{})
	}
	return &n.Fields[i]
}
