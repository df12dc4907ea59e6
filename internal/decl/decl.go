// Package decl models the declaration-reader collaborator: the node
// translator consumes a tree of Decls produced by an external parser and a
// Resolver for cross-reference lookups. Neither parsing nor cross-file
// resolution is implemented here — this package only defines the shape the
// translator expects.
package decl

import (
	"github.com/simonzhangsm/capnproto/internal/schema"
	"github.com/simonzhangsm/capnproto/internal/source"
)

// Kind is the declaration kind.
type Kind uint8

const (
	KindFile Kind = iota
	KindConst
	KindAnnotation
	KindEnum
	KindStruct
	KindInterface
	KindField
	KindUnion
	KindGroup
	KindEnumerant
	KindMethod
	KindUsing
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindConst:
		return "const"
	case KindAnnotation:
		return "annotation"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindField:
		return "field"
	case KindUnion:
		return "union"
	case KindGroup:
		return "group"
	case KindEnumerant:
		return "enumerant"
	case KindMethod:
		return "method"
	case KindUsing:
		return "using"
	default:
		return "unknown"
	}
}

// NodeID is a schema node's stable 64-bit identifier.
type NodeID uint64

// Decl is one node of the parsed declaration tree handed to the translator.
type Decl interface {
	Kind() Kind
	Name() string
	Span() source.Span

	// Ordinal returns the declaration's explicit 16-bit ordinal, if one was
	// written in source. Fields carry one; a union (named or unnamed) may
	// carry one for its discriminant position.
	Ordinal() (id uint16, ok bool)

	// Anonymous reports whether a union declaration has no name (it is
	// still laid out as if its members were declared in the parent scope).
	Anonymous() bool

	Children() []Decl
	Annotations() []Applied

	// Field-only payload.
	FieldType() Type
	FieldDefault() (Value, bool)

	// Const-only payload.
	ConstType() Type
	ConstValue() Value

	// Enumerant-only payload.
	EnumerantOrdinal() uint16

	// Annotation-only payload: which declaration kinds it may target.
	Targets(k Kind) bool
}

// Applied is an annotation application: a reference to an annotation
// declaration plus the value supplied at the use site.
type Applied struct {
	Name  string
	Value Value
	Span  source.Span
}

// Resolver is the cross-reference collaborator.
type Resolver interface {
	// Resolve looks up a name in scope, returning the kind and id of the
	// declaration it names, if any.
	Resolve(name string) (kind Kind, id NodeID, ok bool)

	// ResolveBootstrapSchema returns a provisional schema node for id,
	// sufficient for compiling constants/annotations that reference it.
	ResolveBootstrapSchema(id NodeID) (*schema.Node, bool)

	// ResolveFinalSchema returns the fully populated schema node for id.
	ResolveFinalSchema(id NodeID) (*schema.Node, bool)
}
