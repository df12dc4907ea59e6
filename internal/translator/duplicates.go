package translator

import (
	"sort"

	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/diag"
)

// checkDuplicateNames reports every name-bearing declaration in decls that
// collides with an earlier sibling in the same scope. All member kinds
// (fields, groups, unions, nested consts/enums/structs/annotations/usings)
// share one namespace within their enclosing declaration.
func checkDuplicateNames(r diag.Reporter, decls []decl.Decl) {
	seen := make(map[string]decl.Decl, len(decls))
	for _, d := range decls {
		name := d.Name()
		if name == "" {
			// Anonymous unions have no name and don't participate.
			continue
		}
		if existing, ok := seen[name]; ok {
			diag.Errorf(r, diag.DupName, d.Span(), "duplicate name %q (also used by a declaration at %v)", name, existing.Span())
			continue
		}
		seen[name] = d
	}
}

// collectMemberDecls gathers every field, group, and union declaration
// reachable from d (descending into nested groups/unions but not into
// nested structs/enums/interfaces, which open their own name scope) so
// checkDuplicateNames can validate the one flat field namescope a struct
// presents to codegen. An unnamed union's members are treated as if
// declared directly in the containing scope.
func collectMemberDecls(d decl.Decl) []decl.Decl {
	var out []decl.Decl
	for _, c := range d.Children() {
		switch c.Kind() {
		case decl.KindField:
			out = append(out, c)
		case decl.KindGroup, decl.KindUnion:
			if !c.Anonymous() {
				out = append(out, c)
			}
			out = append(out, collectMemberDecls(c)...)
		}
	}
	return out
}

// checkDuplicateEnumerants reports enumerant declarations whose names
// collide, and delegates ordinal sequencing, in ordinal order, to the same
// duplicateOrdinalDetector the struct translator uses.
func checkDuplicateEnumerants(r diag.Reporter, enumerants []decl.Decl) {
	checkDuplicateNames(r, enumerants)

	sorted := append([]decl.Decl(nil), enumerants...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnumerantOrdinal() < sorted[j].EnumerantOrdinal()
	})
	var dup duplicateOrdinalDetector
	for _, e := range sorted {
		dup.check(r, e.Span(), e.EnumerantOrdinal())
	}
}
