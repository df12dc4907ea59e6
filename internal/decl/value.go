package decl

import "github.com/simonzhangsm/capnproto/internal/source"

// ScalarKind enumerates the primitive (non-pointer) type shapes a field or
// constant can have.
type ScalarKind uint8

const (
	ScalarNone ScalarKind = iota
	ScalarVoid
	ScalarBool
	ScalarInt8
	ScalarInt16
	ScalarInt32
	ScalarInt64
	ScalarUint8
	ScalarUint16
	ScalarUint32
	ScalarUint64
	ScalarFloat32
	ScalarFloat64
	ScalarEnum
)

// PointerKind enumerates the pointer-section type shapes.
type PointerKind uint8

const (
	PointerNone PointerKind = iota
	PointerText
	PointerData
	PointerList
	PointerStruct
	PointerInterface
	PointerAnyPointer
)

// Type is a resolved type reference, already compiled from whatever syntax
// an external parser used; type compilation itself happens upstream of the
// node translator and isn't implemented here.
type Type struct {
	Scalar    ScalarKind
	IsPointer bool
	Pointer   PointerKind
	// RefID names the referenced declaration for Scalar == ScalarEnum or
	// Pointer == PointerStruct/PointerInterface.
	RefID NodeID
}

// ValueKind enumerates the shapes a compiled constant/default value can
// take.
type ValueKind uint8

const (
	ValueVoid ValueKind = iota
	ValueBool
	ValueInt
	ValueUint
	ValueFloat
	ValueText
	ValueData
	ValueList
	ValueStruct
	ValueEnumerant
	// ValueConstRef is an uncompiled reference to another constant; it is
	// queued for the second (finish) compilation pass.
	ValueConstRef
)

// Value is a compiled (or pending) constant/default value.
type Value struct {
	Kind ValueKind

	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Text  string
	Data  []byte
	List  []Value
	// Fields holds struct-literal members, keyed by field name.
	Fields map[string]Value

	// ConstRef is the (possibly unqualified) name this value references,
	// valid when Kind == ValueConstRef.
	ConstRef string
	Span     source.Span
}

// IsZero reports whether v is the default-default value for its declared
// kind — what an erroring value compilation degrades to.
func (v Value) IsZero() bool {
	return !v.Bool && v.Int == 0 && v.Uint == 0 && v.Float == 0 &&
		v.Text == "" && len(v.Data) == 0 && len(v.List) == 0 && len(v.Fields) == 0
}
