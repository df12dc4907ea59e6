package walker

import (
	"testing"

	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/decltest"
	"github.com/simonzhangsm/capnproto/internal/diag"
	"github.com/simonzhangsm/capnproto/internal/layout"
	"github.com/simonzhangsm/capnproto/internal/schema"
)

func TestWalkFlatStructAssignsCodeOrder(t *testing.T) {
	d := decltest.Struct("Point",
		decltest.Field("x", 0, decltest.UInt32()),
		decltest.Field("y", 1, decltest.UInt32()),
	)
	node := &schema.Node{DisplayName: "Point"}
	top := layout.NewTop()
	tree := Walk(d, top, node, diag.NopReporter{})

	if len(tree.AllMembers) != 3 { // root + x + y
		t.Fatalf("AllMembers = %d; want 3", len(tree.AllMembers))
	}
	x := tree.MembersByOrdinal[0]
	y := tree.MembersByOrdinal[1]
	if x == nil || y == nil {
		t.Fatal("both fields should be indexed by ordinal")
	}
	if x.CodeOrder != 0 || y.CodeOrder != 1 {
		t.Fatalf("CodeOrder = %d, %d; want 0, 1", x.CodeOrder, y.CodeOrder)
	}
	if x.Parent != tree.Root || y.Parent != tree.Root {
		t.Fatal("flat fields should be direct children of the root")
	}
}

func TestWalkGroupGetsOwnNode(t *testing.T) {
	d := decltest.Struct("Outer",
		decltest.Group("inner",
			decltest.Field("a", 0, decltest.UInt8()),
		),
	)
	node := &schema.Node{DisplayName: "Outer"}
	top := layout.NewTop()
	tree := Walk(d, top, node, diag.NopReporter{})

	var group *Member
	for _, m := range tree.AllMembers {
		if m.Decl.Kind() == decl.KindGroup {
			group = m
		}
	}
	if group == nil {
		t.Fatal("expected a group member in the walked tree")
	}
	if group.Node == nil {
		t.Fatal("a named group must own its own schema.Node")
	}
	if group.Node.DisplayName != "Outer.inner" {
		t.Fatalf("group DisplayName = %q; want %q", group.Node.DisplayName, "Outer.inner")
	}

	var field *Member
	for _, m := range tree.AllMembers {
		if m.Decl.Kind() == decl.KindField {
			field = m
		}
	}
	if field.Parent != group {
		t.Fatal("the group's field should be parented to the group member, not the struct root")
	}
}

func TestWalkDuplicateOrdinalReported(t *testing.T) {
	d := decltest.Struct("Dup",
		decltest.Field("a", 0, decltest.UInt8()),
		decltest.Field("b", 0, decltest.UInt8()),
	)
	node := &schema.Node{DisplayName: "Dup"}
	top := layout.NewTop()
	bag := diag.NewBag(10)
	Walk(d, top, node, diag.BagReporter{Bag: bag})

	if bag.Len() == 0 {
		t.Fatal("a duplicate ordinal should have raised a diagnostic during the walk")
	}
}

func TestWalkAnonymousUnionSharesCodeOrderCounter(t *testing.T) {
	d := decltest.Struct("WithAnon",
		decltest.Field("before", 0, decltest.UInt8()),
		decltest.AnonUnion(
			decltest.Field("a", 1, decltest.UInt8()),
			decltest.Field("b", 2, decltest.UInt8()),
		),
		decltest.Field("after", 3, decltest.UInt8()),
	)
	node := &schema.Node{DisplayName: "WithAnon"}
	top := layout.NewTop()
	tree := Walk(d, top, node, diag.NopReporter{})

	var before, after *Member
	for _, m := range tree.AllMembers {
		switch m.Decl.Name() {
		case "before":
			before = m
		case "after":
			after = m
		}
	}
	if before == nil || after == nil {
		t.Fatal("expected to find both 'before' and 'after' fields")
	}
	// "after" must continue the shared counter past the anonymous union's
	// two members (codeOrder 0 for before, then 1 and 2 for the members
	// inside, so "after" lands at codeOrder 3).
	if after.CodeOrder <= before.CodeOrder {
		t.Fatalf("CodeOrder should be monotonically increasing across an anonymous union: before=%d after=%d",
			before.CodeOrder, after.CodeOrder)
	}
}

func TestWalkNamedUnionGetsIndependentSubOrder(t *testing.T) {
	d := decltest.Struct("WithNamed",
		decltest.Union("u", 0, false,
			decltest.Field("a", 1, decltest.UInt8()),
			decltest.Field("b", 2, decltest.UInt8()),
		),
	)
	node := &schema.Node{DisplayName: "WithNamed"}
	top := layout.NewTop()
	tree := Walk(d, top, node, diag.NopReporter{})

	var union *Member
	for _, m := range tree.AllMembers {
		if m.Decl.Kind() == decl.KindUnion {
			union = m
		}
	}
	if union == nil {
		t.Fatal("expected a named union member")
	}
	if union.UnionScope == nil {
		t.Fatal("a union member must have a UnionScope")
	}

	var a, b *Member
	for _, m := range tree.AllMembers {
		switch m.Decl.Name() {
		case "a":
			a = m
		case "b":
			b = m
		}
	}
	if a.CodeOrder != 0 || b.CodeOrder != 1 {
		t.Fatalf("named union members should start their own codeOrder at 0: got %d, %d", a.CodeOrder, b.CodeOrder)
	}
	if a.Parent != union || b.Parent != union {
		t.Fatal("union variant fields should be parented to the union member")
	}
}

func TestWalkUnionTooFewMembersReported(t *testing.T) {
	d := decltest.Struct("Bad",
		decltest.Union("u", 0, false,
			decltest.Field("a", 1, decltest.UInt8()),
		),
	)
	node := &schema.Node{DisplayName: "Bad"}
	top := layout.NewTop()
	bag := diag.NewBag(10)
	Walk(d, top, node, diag.BagReporter{Bag: bag})

	if bag.Len() == 0 {
		t.Fatal("a union with fewer than two members should raise a diagnostic")
	}
}

func TestEnsureFieldIsIdempotent(t *testing.T) {
	d := decltest.Struct("S", decltest.Field("a", 0, decltest.UInt8()))
	node := &schema.Node{DisplayName: "S"}
	top := layout.NewTop()
	tree := Walk(d, top, node, diag.NopReporter{})

	a := tree.MembersByOrdinal[0]
	first := a.EnsureField()
	second := a.EnsureField()
	if first != second {
		t.Fatalf("EnsureField should be idempotent: %d != %d", first, second)
	}
	if len(node.Fields) != 1 {
		t.Fatalf("calling EnsureField twice should not duplicate the FieldNode entry; got %d entries", len(node.Fields))
	}
}
