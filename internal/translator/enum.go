package translator

import (
	"sort"

	"github.com/simonzhangsm/capnproto/internal/decl"
	"github.com/simonzhangsm/capnproto/internal/diag"
	"github.com/simonzhangsm/capnproto/internal/schema"
)

// CompileEnum assigns sequential code order to d's enumerants, detects
// duplicate names/ordinals, and writes the resulting ordinal-ordered table
// onto node.
func CompileEnum(d decl.Decl, node *schema.Node, reporter diag.Reporter) {
	type entry struct {
		decl      decl.Decl
		codeOrder uint32
	}

	var entries []entry
	var enumerants []decl.Decl
	for _, c := range d.Children() {
		if c.Kind() != decl.KindEnumerant {
			continue
		}
		entries = append(entries, entry{decl: c, codeOrder: uint32(len(entries))})
		enumerants = append(enumerants, c)
	}

	checkDuplicateEnumerants(reporter, enumerants)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].decl.EnumerantOrdinal() < entries[j].decl.EnumerantOrdinal()
	})

	table := make([]schema.EnumerantNode, len(entries))
	for i, e := range entries {
		table[i] = schema.EnumerantNode{Name: e.decl.Name(), CodeOrder: e.codeOrder}
	}
	node.SetEnumerants(table)
}
