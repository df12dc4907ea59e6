// Package decltest provides a minimal decl.Decl implementation for tests
// that need to drive internal/walker and internal/translator without a
// real parser — declaration parsing is out of scope for this module (see
// internal/decl's doc comment), so tests build the tree by hand.
package decltest

import (
	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/schema"
	"github.com/simonzhangsm/capnproto/internal/source"
)

// Fake is a hand-built decl.Decl. Zero value fields behave as "absent"
// (no ordinal, not anonymous, no default, etc).
type Fake struct {
	KindVal      decl.Kind
	NameVal      string
	OrdinalVal   uint16
	HasOrdinal   bool
	AnonymousVal bool
	ChildrenVal  []decl.Decl
	AnnotVal     []decl.Applied

	Type       decl.Type
	DefaultVal decl.Value
	HasDefault bool

	ConstTypeVal  decl.Type
	ConstValueVal decl.Value

	EnumOrdinal uint16

	TargetKinds []decl.Kind
}

func (f *Fake) Kind() decl.Kind       { return f.KindVal }
func (f *Fake) Name() string          { return f.NameVal }
func (f *Fake) Span() source.Span     { return source.Span{} }
func (f *Fake) Anonymous() bool       { return f.AnonymousVal }
func (f *Fake) Children() []decl.Decl { return f.ChildrenVal }
func (f *Fake) Annotations() []decl.Applied { return f.AnnotVal }
func (f *Fake) FieldType() decl.Type  { return f.Type }
func (f *Fake) ConstType() decl.Type  { return f.ConstTypeVal }
func (f *Fake) ConstValue() decl.Value { return f.ConstValueVal }
func (f *Fake) EnumerantOrdinal() uint16 { return f.EnumOrdinal }

func (f *Fake) Ordinal() (uint16, bool) { return f.OrdinalVal, f.HasOrdinal }
func (f *Fake) FieldDefault() (decl.Value, bool) { return f.DefaultVal, f.HasDefault }

func (f *Fake) Targets(k decl.Kind) bool {
	if f.TargetKinds == nil {
		return true
	}
	for _, t := range f.TargetKinds {
		if t == k {
			return true
		}
	}
	return false
}

// Field returns a *Fake for a plain field declaration.
func Field(name string, ordinal uint16, t decl.Type) *Fake {
	return &Fake{KindVal: decl.KindField, NameVal: name, OrdinalVal: ordinal, HasOrdinal: true, Type: t}
}

// FieldNoOrdinal returns a field declaration with no explicit ordinal —
// callers must assign source-order placement via struct field order alone
// (rare; most tests want Field).
func FieldNoOrdinal(name string, t decl.Type) *Fake {
	return &Fake{KindVal: decl.KindField, NameVal: name, Type: t}
}

// Group returns a named group declaration wrapping children.
func Group(name string, children ...decl.Decl) *Fake {
	return &Fake{KindVal: decl.KindGroup, NameVal: name, ChildrenVal: children}
}

// Union returns a named union declaration wrapping children, with an
// optional explicit ordinal.
func Union(name string, ordinal uint16, hasOrdinal bool, children ...decl.Decl) *Fake {
	return &Fake{KindVal: decl.KindUnion, NameVal: name, OrdinalVal: ordinal, HasOrdinal: hasOrdinal, ChildrenVal: children}
}

// AnonUnion returns an unnamed union declaration wrapping children.
func AnonUnion(children ...decl.Decl) *Fake {
	return &Fake{KindVal: decl.KindUnion, AnonymousVal: true, ChildrenVal: children}
}

// Struct returns a struct declaration wrapping children.
func Struct(name string, children ...decl.Decl) *Fake {
	return &Fake{KindVal: decl.KindStruct, NameVal: name, ChildrenVal: children}
}

// Enumerant returns an enumerant declaration.
func Enumerant(name string, ordinal uint16) *Fake {
	return &Fake{KindVal: decl.KindEnumerant, NameVal: name, EnumOrdinal: ordinal}
}

// Enum returns an enum declaration wrapping enumerants.
func Enum(name string, children ...decl.Decl) *Fake {
	return &Fake{KindVal: decl.KindEnum, NameVal: name, ChildrenVal: children}
}

// Bool/UInt8/UInt16/UInt32/UInt64/Text/Void are convenience decl.Type
// constructors for tests.
func Bool() decl.Type   { return decl.Type{Scalar: decl.ScalarBool} }
func UInt8() decl.Type  { return decl.Type{Scalar: decl.ScalarUint8} }
func UInt16() decl.Type { return decl.Type{Scalar: decl.ScalarUint16} }
func UInt32() decl.Type { return decl.Type{Scalar: decl.ScalarUint32} }
func UInt64() decl.Type { return decl.Type{Scalar: decl.ScalarUint64} }
func Text() decl.Type   { return decl.Type{IsPointer: true, Pointer: decl.PointerText} }
func Void() decl.Type   { return decl.Type{Scalar: decl.ScalarVoid} }

// NopResolver resolves nothing; suitable for tests with no cross-references.
type NopResolver struct{}

func (NopResolver) Resolve(string) (decl.Kind, decl.NodeID, bool)          { return 0, 0, false }
func (NopResolver) ResolveBootstrapSchema(decl.NodeID) (*schema.Node, bool) { return nil, false }
func (NopResolver) ResolveFinalSchema(decl.NodeID) (*schema.Node, bool)     { return nil, false }
