// Package translator drives the struct layout algorithm end to end: it
// walks a declaration's members (via internal/walker), places each one in
// ordinal order (via internal/layout), and writes the results back onto
// the output schema.Node.
package translator

import (
	"fmt"
	"sort"

	"github.com/simonzhangsm/capnproto/internal/constants"
	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/diag"
	"github.com/simonzhangsm/capnproto/internal/layout"
	"github.com/simonzhangsm/capnproto/internal/schema"
	"github.com/simonzhangsm/capnproto/internal/source"
	"github.com/simonzhangsm/capnproto/internal/walker"
)

// Translate populates node (already carrying an ID and DisplayName set by
// the caller) with the full struct layout for d, and returns the auxiliary
// group nodes created for d's named groups and unions.
//
// resolver backs default-value compilation for any field that cites a
// constant: a value that cites a constant without a bootstrap schema yet
// is queued and drained by Finish() once the caller has bootstrap-schemed
// every sibling declaration.
func Translate(d decl.Decl, node *schema.Node, resolver decl.Resolver, annotationDecls map[string]decl.Decl, reporter diag.Reporter) (groups []*schema.Node, finish func()) {
	checkDuplicateNames(reporter, collectMemberDecls(d))

	top := layout.NewTop()
	tree := walker.Walk(d, top, node, reporter)

	checkAnnotations(reporter, resolver, annotationDecls, d, d.Kind())
	for _, m := range tree.AllMembers {
		if m == tree.Root {
			continue
		}
		checkAnnotations(reporter, resolver, annotationDecls, m.Decl, m.Decl.Kind())
	}

	placeMembersInOrdinalOrder(tree, reporter)
	finishGroups(tree)
	compiler := compileDefaultValues(tree, resolver, reporter)

	node.SetDataSectionWordSize(top.DataWords())
	node.SetPointerSectionSize(top.Pointers())
	node.SetPreferredListEncoding(schema.PreferredListEncoding(top.DataWords(), top.Pointers(), top.FirstWordUsed()))

	for _, m := range tree.AllMembers {
		if m == tree.Root {
			continue
		}
		if m.Node == nil {
			continue
		}
		m.Node.SetDataSectionWordSize(node.DataSectionWordSize)
		m.Node.SetPointerSectionSize(node.PointerSectionSize)
		m.Node.SetPreferredListEncoding(node.PreferredEncoding)
		groups = append(groups, m.Node)
	}
	return groups, compiler.Finish
}

// compileDefaultValues runs the bootstrap pass of default-value compilation
// over every leaf field in tree, mirroring the original's per-field
// compileBootstrapValue/compileDefaultDefaultValue dispatch. The returned
// Compiler's Finish must be called by the caller once every sibling
// declaration in the enclosing file has a bootstrap schema, so any default
// that cited a not-yet-ready constant resolves to its final value.
func compileDefaultValues(tree *walker.Tree, resolver decl.Resolver, reporter diag.Reporter) *constants.Compiler {
	compiler := constants.New(resolver, reporter)
	for _, m := range tree.AllMembers {
		if m == tree.Root || m.Decl.Kind() != decl.KindField {
			continue
		}
		member := m
		fieldType := member.Decl.FieldType()
		if v, ok := member.Decl.FieldDefault(); ok {
			member.DefaultValue = compiler.CompileBootstrap(fieldType, v, func(out decl.Value) {
				member.DefaultValue = out
			})
		} else {
			member.DefaultValue = constants.CompileDefaultDefault(fieldType)
		}
	}
	return compiler
}

// placeMembersInOrdinalOrder iterates membersByOrdinal ascending, checking
// ordinal sequencing and allocating each field's (or union's discriminant's)
// storage.
func placeMembersInOrdinalOrder(tree *walker.Tree, reporter diag.Reporter) {
	ordinals := make([]uint16, 0, len(tree.MembersByOrdinal))
	for ord := range tree.MembersByOrdinal {
		ordinals = append(ordinals, ord)
	}
	sort.Slice(ordinals, func(i, j int) bool { return ordinals[i] < ordinals[j] })

	var dup duplicateOrdinalDetector
	for _, ord := range ordinals {
		m := tree.MembersByOrdinal[ord]
		dup.check(reporter, m.Decl.Span(), ord)

		fieldIndex := m.EnsureField()
		m.Parent.Node.SetOrdinal(fieldIndex, ord)

		switch m.Decl.Kind() {
		case decl.KindField:
			placeField(m, fieldIndex)
		case decl.KindUnion:
			if !m.UnionScope.AddDiscriminant() {
				diag.Errorf(reporter, diag.OrdUnionRetroactive, m.Decl.Span(),
					"union %q's ordinal, if specified, must precede all but one of its member ordinals", m.Decl.Name())
			}
		default:
			panic(fmt.Sprintf("translator: unexpected ordinal-bearing declaration kind %s", m.Decl.Kind()))
		}
	}
}

// placeField allocates m's storage from its FieldScope and records the
// resulting offset on its parent's FieldNode.
func placeField(m *walker.Member, fieldIndex int) {
	lgSize := classify(m.Decl.FieldType())

	var off schema.FieldOffset
	switch {
	case lgSize == lgSizeVoid:
		m.FieldScope.AddVoid()
		off = schema.FieldOffset{Offset: 0}
	case lgSize == lgSizePointer:
		slot := m.FieldScope.AddPointer()
		off = schema.FieldOffset{IsPointer: true, PointerSlot: slot}
	default:
		offset := m.FieldScope.AddData(lgSize)
		off = schema.FieldOffset{LgSize: lgSize, Offset: offset}
	}
	m.Parent.Node.SetOffset(fieldIndex, off)
}

// finishGroups mirrors MemberInfo::finishGroup: for every container member
// (named group, named union, or the struct root containing an unnamed
// union) with a union, write its discriminant count/offset; for every
// nested container, synthesise its group id and mark its own FieldNode
// entry (in its parent) as belonging to that group.
func finishGroups(tree *walker.Tree) {
	finishGroup(tree.Root)
	for _, m := range tree.AllMembers {
		if m == tree.Root {
			continue
		}
		if m.Decl.Kind() == decl.KindUnion || m.Decl.Kind() == decl.KindGroup {
			finishGroup(m)
		}
	}
}

func finishGroup(m *walker.Member) {
	if m.UnionScope != nil {
		u := m.UnionScope
		u.AddDiscriminant() // idempotent: no-op if already reserved
		if u.HasDiscriminant() {
			m.Node.SetDiscriminantCount(uint16(m.UnionDiscriminantCount))
			m.Node.SetDiscriminantOffset(u.DiscriminantOffset())
		}
	}

	if m.Parent != nil {
		fieldIndex := m.EnsureField()
		groupID := schema.GenerateGroupID(m.Parent.Node.ID, m.Index)
		m.Node.SetGroupID(groupID)
		m.Node.SetScopeID(m.Parent.Node.ID)
		m.Parent.Node.SetGroupMembership(fieldIndex, groupID)
	}
}

// duplicateOrdinalDetector implements a sequential pass: starting from an
// expected ordinal of 0, a lower value is a duplicate, a higher value
// skips a hole.
type duplicateOrdinalDetector struct {
	expected uint16
	started  bool
}

func (d *duplicateOrdinalDetector) check(r diag.Reporter, span source.Span, ordinal uint16) {
	switch {
	case d.started && ordinal < d.expected:
		diag.Errorf(r, diag.OrdDuplicate, span, "duplicate ordinal number @%d", ordinal)
	case ordinal > d.expected:
		diag.Errorf(r, diag.OrdSkipped, span,
			"skipped ordinal @%d. Ordinals must be sequential with no holes", d.expected)
		d.expected = ordinal + 1
	default:
		d.expected = ordinal + 1
	}
	d.started = true
}
