// Package walker turns a declaration tree into a member tree rooted at the
// struct, in source order, and indexes ordinal-bearing members for the
// translator's second pass.
package walker

import (
	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/diag"
	"github.com/simonzhangsm/capnproto/internal/layout"
	"github.com/simonzhangsm/capnproto/internal/schema"
	"github.com/simonzhangsm/capnproto/internal/source"
)

// Member is one node of the walk's output tree.
//
// A Member is either a *field* (FieldScope set: the layout.Scope its own
// storage is allocated from) or a *container* (Node set: the struct, or a
// named group/union, which owns its own schema.Node and its own nested
// Fields list). A container that directly encloses an unnamed union reuses
// its own Node and UnionScope fields for that union rather than allocating
// a fresh Member.
type Member struct {
	Parent    *Member
	Decl      decl.Decl
	CodeOrder int
	IsInUnion bool

	// Index is this member's position among its parent's children whose
	// field entry has been initialized, assigned the first time EnsureField
	// runs (lazily, in ordinal order or finishGroup order — whichever comes
	// first), not in declaration order.
	Index int

	// ChildCount/ChildInitializedCount/UnionDiscriminantCount track: how
	// many children this container has in total, how many have had
	// EnsureField called so far, and how many of this container's union
	// variants have been assigned a discriminant value so far.
	ChildCount             int
	ChildInitializedCount  int
	UnionDiscriminantCount int

	// Node is set for containers: the struct itself, and every named group
	// or union. Its Fields list holds exactly this container's direct
	// children, tagged InGroup/GroupID for ones nested further.
	Node *schema.Node

	// FieldScope is set for plain fields: the allocator their own storage
	// comes from.
	FieldScope layout.Scope

	// UnionScope is set on a member that owns a union layout — a named or
	// unnamed union, or (reused) the struct/group Member that directly
	// contains an unnamed union.
	UnionScope *layout.Union

	Ordinal    uint16
	HasOrdinal bool

	// DefaultValue holds a field's compiled default, filled in by
	// internal/translator's constant-compilation pass; zero until then.
	DefaultValue decl.Value

	fieldAssigned bool
	FieldIndex    int // valid once fieldAssigned; index into Parent.Node.Fields
}

// EnsureField lazily creates m's entry in m.Parent.Node.Fields: Index is
// assigned from the parent's running ChildInitializedCount, and if m is a
// union variant it claims the next discriminant value from the parent's
// running UnionDiscriminantCount. Safe to call more than once.
func (m *Member) EnsureField() int {
	if m.fieldAssigned {
		return m.FieldIndex
	}
	parent := m.Parent
	if parent.ChildInitializedCount >= parent.ChildCount {
		panic("walker: more fields initialized than childCount allows")
	}
	m.Index = parent.ChildInitializedCount
	parent.ChildInitializedCount++

	idx := len(parent.Node.Fields)
	parent.Node.Fields = append(parent.Node.Fields, schema.FieldNode{
		Name:      m.Decl.Name(),
		CodeOrder: uint32(m.CodeOrder),
	})
	if m.IsInUnion {
		disc := parent.UnionDiscriminantCount
		parent.UnionDiscriminantCount++
		parent.Node.SetDiscriminantValue(idx, uint16(disc))
	}
	m.FieldIndex = idx
	m.fieldAssigned = true
	return idx
}

// Tree is the walk's complete output.
type Tree struct {
	Root             *Member
	MembersByOrdinal map[uint16]*Member
	AllMembers       []*Member
}

type walker struct {
	reporter diag.Reporter
	tree     *Tree
}

// Walk builds the member tree for structNode, whose top-level fields are
// allocated out of topScope. d must be the struct declaration itself; its
// Children() are walked.
func Walk(d decl.Decl, topScope layout.Scope, structNode *schema.Node, reporter diag.Reporter) *Tree {
	w := &walker{
		reporter: reporter,
		tree: &Tree{
			MembersByOrdinal: make(map[uint16]*Member),
		},
	}
	root := &Member{Decl: d, Node: structNode}
	w.tree.Root = root
	w.tree.AllMembers = append(w.tree.AllMembers, root)
	w.walkChildren(root, topScope, d.Children())
	return w.tree
}

// walkChildren walks decls, all declared directly inside parent's scope
// (parent is either the struct root or a plain/union-variant group),
// assigning codeOrder sequentially among siblings.
func (w *walker) walkChildren(parent *Member, scope layout.Scope, decls []decl.Decl) {
	order := 0
	for _, d := range decls {
		switch d.Kind() {
		case decl.KindField:
			w.walkField(parent, scope, d, order, false)
			order++
		case decl.KindGroup:
			w.walkGroup(parent, scope, d, order)
			order++
		case decl.KindUnion:
			// walkUnion manages its own slot in &order: a named union
			// consumes exactly one (its own CodeOrder) and recurses with a
			// fresh independent counter for its members; an anonymous union
			// consumes none of its own and instead mutates &order directly
			// as its members are walked, sharing its parent's counter.
			w.walkUnion(parent, scope, d, &order)
		case decl.KindUsing, decl.KindAnnotation, decl.KindConst, decl.KindEnum, decl.KindStruct, decl.KindInterface:
			// Nested type/const/using declarations do not participate in
			// layout; the walker only cares about storage-bearing members.
		default:
			w.code(diag.OrdKindNotAllowed, d.Span(), "declaration kind %s is not permitted here", d.Kind())
		}
	}
}

func (w *walker) code(code diag.Code, span source.Span, format string, args ...any) {
	diag.Errorf(w.reporter, code, span, format, args...)
}

// walkField handles a field declared directly in a struct/group scope, or
// (isInUnion) one declared directly inside a union — the latter is already
// wrapped in its singleton layout.Group by the caller before scope is
// passed in.
func (w *walker) walkField(parent *Member, scope layout.Scope, d decl.Decl, order int, isInUnion bool) *Member {
	parent.ChildCount++
	m := &Member{
		Parent:     parent,
		Decl:       d,
		CodeOrder:  order,
		IsInUnion:  isInUnion,
		FieldScope: scope,
	}
	if ord, ok := d.Ordinal(); ok {
		m.Ordinal = ord
		m.HasOrdinal = true
		if existing, dup := w.tree.MembersByOrdinal[ord]; dup {
			w.code(diag.OrdDuplicate, d.Span(), "duplicate ordinal %d (also used by %q)", ord, existing.Decl.Name())
		} else {
			w.tree.MembersByOrdinal[ord] = m
		}
	}
	w.tree.AllMembers = append(w.tree.AllMembers, m)
	return m
}

// newGroupNode creates the fresh schema.Node a named group or named union
// gets, as a child of parent's node, with DisplayName built as
// parent.displayName + "." + localName.
func newGroupNode(parentNode *schema.Node, name string) *schema.Node {
	return &schema.Node{DisplayName: parentNode.DisplayName + "." + name}
}

// walkGroup handles a group declared directly in a struct or another plain
// group (i.e. NOT as a union variant): storage-wise it is pure namespacing,
// sharing the enclosing scope exactly, but it gets its own schema.Node and
// its own nested Fields list, just like a named union.
func (w *walker) walkGroup(parent *Member, scope layout.Scope, d decl.Decl, order int) {
	if _, ok := d.Ordinal(); ok {
		w.code(diag.OrdKindNotAllowed, d.Span(), "group %q must not have an ordinal", d.Name())
	}
	if len(d.Children()) == 0 {
		w.code(diag.OrdGroupEmpty, d.Span(), "group %q must have at least one member", d.Name())
	}
	parent.ChildCount++
	m := &Member{
		Parent:    parent,
		Decl:      d,
		CodeOrder: order,
		Node:      newGroupNode(parent.Node, d.Name()),
	}
	w.tree.AllMembers = append(w.tree.AllMembers, m)
	// Members of the group are laid out exactly as if they were members of
	// the parent: the group's own node only changes where their FieldNode
	// entries land, not where their bits come from.
	w.walkChildren(m, scope, d.Children())
}

// walkUnion handles both named and unnamed unions. A fresh layout.Union is
// always created. orderPtr is the enclosing scope's running codeOrder
// counter: a named union consumes exactly one value from it (for its own
// CodeOrder) and then walks its members with a fresh, independent counter
// starting at 0; an unnamed union's MemberInfo *is* the parent itself (so
// its fields count toward the parent's own Fields list and name scope),
// consumes no value of its own, and walks its members by mutating orderPtr
// directly, so sibling declarations after the union continue numbering
// from wherever the union's members left off.
func (w *walker) walkUnion(parent *Member, scope layout.Scope, d decl.Decl, orderPtr *int) {
	union := layout.NewUnion(scope)

	var self *Member
	var subOrderPtr *int
	if d.Anonymous() {
		self = parent
		subOrderPtr = orderPtr
	} else {
		order := *orderPtr
		*orderPtr++
		parent.ChildCount++
		self = &Member{
			Parent:    parent,
			Decl:      d,
			CodeOrder: order,
			Node:      newGroupNode(parent.Node, d.Name()),
		}
		w.tree.AllMembers = append(w.tree.AllMembers, self)
		independentSubOrder := 0
		subOrderPtr = &independentSubOrder
	}
	self.UnionScope = union

	if ord, ok := d.Ordinal(); ok {
		if self != parent {
			self.Ordinal = ord
			self.HasOrdinal = true
		}
		if existing, dup := w.tree.MembersByOrdinal[ord]; dup {
			w.code(diag.OrdDuplicate, d.Span(), "duplicate ordinal %d (also used by %q)", ord, existing.Decl.Name())
		} else {
			w.tree.MembersByOrdinal[ord] = self
		}
	}

	if n := countUnionMembers(d); n < 2 {
		w.code(diag.OrdUnionTooFewMembers, d.Span(), "union %q must have at least two members, has %d", unionLabel(d), n)
	}

	for _, c := range d.Children() {
		switch c.Kind() {
		case decl.KindField:
			group := layout.NewGroup(union)
			order := *subOrderPtr
			*subOrderPtr++
			w.walkField(self, group, c, order, true)
		case decl.KindGroup:
			if _, ok := c.Ordinal(); ok {
				w.code(diag.OrdKindNotAllowed, c.Span(), "group %q must not have an ordinal", c.Name())
			}
			if len(c.Children()) == 0 {
				w.code(diag.OrdGroupEmpty, c.Span(), "group %q must have at least one member", c.Name())
			}
			group := layout.NewGroup(union)
			order := *subOrderPtr
			*subOrderPtr++
			self.ChildCount++
			gm := &Member{
				Parent:    self,
				Decl:      c,
				CodeOrder: order,
				Node:      newGroupNode(self.Node, c.Name()),
			}
			w.tree.AllMembers = append(w.tree.AllMembers, gm)
			w.walkChildren(gm, group, c.Children())
		case decl.KindUnion:
			w.code(diag.OrdUnionInsideUnion, c.Span(), "unions cannot contain unions")
		default:
			w.code(diag.OrdKindNotAllowed, c.Span(), "declaration kind %s is not permitted inside a union", c.Kind())
		}
	}
}

func countUnionMembers(d decl.Decl) int {
	n := 0
	for _, c := range d.Children() {
		switch c.Kind() {
		case decl.KindField, decl.KindGroup:
			n++
		}
	}
	return n
}

func unionLabel(d decl.Decl) string {
	if d.Anonymous() {
		return "(anonymous)"
	}
	return d.Name()
}
