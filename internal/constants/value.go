// Package constants compiles constant and default-value expressions in two
// phases: a bootstrap pass compiles whatever a value literal can resolve
// immediately; compound values that reference other not-yet-bootstrapped
// constants are queued and drained in finish(), whose queue may grow while
// it drains.
package constants

import (
	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/diag"
)

// Compiler compiles decl.Value literals against a resolved decl.Type,
// degrading any error to the type's default-default.
type Compiler struct {
	resolver decl.Resolver
	reporter diag.Reporter
	pending  PendingQueue
}

// New returns a Compiler that resolves cross-references through resolver
// and reports problems through reporter.
func New(resolver decl.Resolver, reporter diag.Reporter) *Compiler {
	return &Compiler{resolver: resolver, reporter: reporter}
}

// Pending exposes the compiler's second-pass queue so the driver can drain
// it once every top-level declaration has a bootstrap schema.
func (c *Compiler) Pending() *PendingQueue { return &c.pending }

// CompileBootstrap compiles v against t as far as possible without
// resolving any ValueConstRef. If v (or something nested in it) turns out
// to reference a constant without a bootstrap schema yet, the default-
// default is returned immediately and (t, v) is queued on Pending(); once
// the driver calls Pending().Drain in finish(), assign is invoked with the
// fully compiled value.
func (c *Compiler) CompileBootstrap(t decl.Type, v decl.Value, assign func(decl.Value)) decl.Value {
	out, unresolved := c.compile(t, v)
	if unresolved {
		if assign != nil {
			c.pending.Add(t, v, assign)
		}
		return defaultDefault(t)
	}
	return out
}

// Finish drains every value queued during bootstrap compilation, compiling
// each once more through CompileBootstrap. A value that still references a
// constant without a bootstrap schema gets its type's default-default and
// is not queued again.
func (c *Compiler) Finish() {
	c.pending.Drain(func(t decl.Type, v decl.Value) decl.Value {
		return c.CompileBootstrap(t, v, nil)
	})
}

// CompileDefaultDefault returns the type-appropriate zero/null value for t,
// used both as the implicit default for a field with no explicit default
// and as the degraded result of any value-compilation error.
func CompileDefaultDefault(t decl.Type) decl.Value {
	return defaultDefault(t)
}

// compile performs one bootstrap attempt. unresolved is true iff v (or one
// of its nested values) is a ValueConstRef naming a constant whose
// bootstrap schema isn't available yet — the caller should queue the
// original (t, v) pair for the second pass.
func (c *Compiler) compile(t decl.Type, v decl.Value) (decl.Value, bool) {
	switch v.Kind {
	case decl.ValueConstRef:
		return c.resolveConstRef(t, v)
	case decl.ValueList:
		out := make([]decl.Value, len(v.List))
		for i, elem := range v.List {
			compiled, unresolved := c.compile(elemType(t), elem)
			if unresolved {
				return decl.Value{}, true
			}
			out[i] = compiled
		}
		return decl.Value{Kind: decl.ValueList, List: out}, false
	case decl.ValueStruct:
		if t.IsPointer && t.Pointer == decl.PointerList {
			// A list-typed slot used as a struct-object field initializer
			// is a type mismatch, not a silent degrade.
			diag.Errorf(c.reporter, diag.ValTypeMismatch, v.Span,
				"struct literal is not valid for list-typed field")
			return defaultDefault(t), false
		}
		out := make(map[string]decl.Value, len(v.Fields))
		for name, field := range v.Fields {
			compiled, unresolved := c.compile(decl.Type{}, field)
			if unresolved {
				return decl.Value{}, true
			}
			out[name] = compiled
		}
		return decl.Value{Kind: decl.ValueStruct, Fields: out}, false
	default:
		if !typeMatches(t, v) {
			diag.Errorf(c.reporter, diag.ValTypeMismatch, v.Span,
				"type mismatch in value literal")
			return defaultDefault(t), false
		}
		return v, false
	}
}

func (c *Compiler) resolveConstRef(t decl.Type, v decl.Value) (decl.Value, bool) {
	if v.ConstRef == "" {
		diag.Errorf(c.reporter, diag.ValConstantCitedUnqualified, v.Span,
			"constant cited unqualified")
		return defaultDefault(t), false
	}
	kind, id, ok := c.resolver.Resolve(v.ConstRef)
	if !ok || kind != decl.KindConst {
		diag.Errorf(c.reporter, diag.ValTypeRefNotType, v.Span,
			"%q does not name a constant", v.ConstRef)
		return defaultDefault(t), false
	}
	if _, ok := c.resolver.ResolveBootstrapSchema(id); !ok {
		// Not ready yet: the caller queues this (t, v) pair for finish().
		return decl.Value{}, true
	}
	return v, false
}

func elemType(t decl.Type) decl.Type {
	if t.IsPointer && t.Pointer == decl.PointerList {
		return decl.Type{IsPointer: true}
	}
	return t
}

func typeMatches(t decl.Type, v decl.Value) bool {
	switch v.Kind {
	case decl.ValueVoid:
		return t.Scalar == decl.ScalarVoid || (!t.IsPointer && t.Scalar == decl.ScalarNone)
	case decl.ValueBool:
		return t.Scalar == decl.ScalarBool
	case decl.ValueInt, decl.ValueUint:
		switch t.Scalar {
		case decl.ScalarInt8, decl.ScalarInt16, decl.ScalarInt32, decl.ScalarInt64,
			decl.ScalarUint8, decl.ScalarUint16, decl.ScalarUint32, decl.ScalarUint64:
			return true
		}
		return false
	case decl.ValueFloat:
		return t.Scalar == decl.ScalarFloat32 || t.Scalar == decl.ScalarFloat64
	case decl.ValueText:
		return t.IsPointer && t.Pointer == decl.PointerText
	case decl.ValueData:
		return t.IsPointer && t.Pointer == decl.PointerData
	case decl.ValueEnumerant:
		return t.Scalar == decl.ScalarEnum
	default:
		return true
	}
}

// defaultDefault returns the type-appropriate zero/null value for t.
func defaultDefault(t decl.Type) decl.Value {
	if t.IsPointer {
		switch t.Pointer {
		case decl.PointerText:
			return decl.Value{Kind: decl.ValueText}
		case decl.PointerData:
			return decl.Value{Kind: decl.ValueData}
		case decl.PointerList:
			return decl.Value{Kind: decl.ValueList}
		case decl.PointerStruct:
			return decl.Value{Kind: decl.ValueStruct, Fields: map[string]decl.Value{}}
		default:
			return decl.Value{Kind: decl.ValueVoid}
		}
	}
	switch t.Scalar {
	case decl.ScalarBool:
		return decl.Value{Kind: decl.ValueBool}
	case decl.ScalarInt8, decl.ScalarInt16, decl.ScalarInt32, decl.ScalarInt64:
		return decl.Value{Kind: decl.ValueInt}
	case decl.ScalarUint8, decl.ScalarUint16, decl.ScalarUint32, decl.ScalarUint64:
		return decl.Value{Kind: decl.ValueUint}
	case decl.ScalarFloat32, decl.ScalarFloat64:
		return decl.Value{Kind: decl.ValueFloat}
	case decl.ScalarEnum:
		return decl.Value{Kind: decl.ValueEnumerant}
	default:
		return decl.Value{Kind: decl.ValueVoid}
	}
}
