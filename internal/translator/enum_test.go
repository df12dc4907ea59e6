package translator

import (
	"testing"

	"github.com/simonzhangsm/capnproto/internal/decltest"
	"github.com/simonzhangsm/capnproto/internal/diag"
	"github.com/simonzhangsm/capnproto/internal/schema"
)

func TestCompileEnumOrdersByOrdinalNotDeclarationOrder(t *testing.T) {
	d := decltest.Enum("Color",
		decltest.Enumerant("green", 1),
		decltest.Enumerant("red", 0),
		decltest.Enumerant("blue", 2),
	)
	node := &schema.Node{DisplayName: "Color"}
	bag := diag.NewBag(10)
	CompileEnum(d, node, diag.BagReporter{Bag: bag})

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(node.Enumerants) != 3 {
		t.Fatalf("Enumerants = %d; want 3", len(node.Enumerants))
	}
	names := []string{node.Enumerants[0].Name, node.Enumerants[1].Name, node.Enumerants[2].Name}
	want := []string{"red", "green", "blue"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Enumerants order = %v; want %v", names, want)
		}
	}
}

func TestCompileEnumCodeOrderReflectsDeclarationOrderNotOrdinal(t *testing.T) {
	d := decltest.Enum("Color",
		decltest.Enumerant("green", 1),
		decltest.Enumerant("red", 0),
	)
	node := &schema.Node{DisplayName: "Color"}
	CompileEnum(d, node, diag.NopReporter{})

	// "green" was declared first (CodeOrder 0) even though its ordinal (1)
	// places it after "red" in the sorted table.
	var green, red schema.EnumerantNode
	for _, e := range node.Enumerants {
		switch e.Name {
		case "green":
			green = e
		case "red":
			red = e
		}
	}
	if green.CodeOrder != 0 {
		t.Fatalf("green.CodeOrder = %d; want 0 (declared first)", green.CodeOrder)
	}
	if red.CodeOrder != 1 {
		t.Fatalf("red.CodeOrder = %d; want 1 (declared second)", red.CodeOrder)
	}
}

func TestCompileEnumDuplicateNameReported(t *testing.T) {
	d := decltest.Enum("Color",
		decltest.Enumerant("red", 0),
		decltest.Enumerant("red", 1),
	)
	node := &schema.Node{DisplayName: "Color"}
	bag := diag.NewBag(10)
	CompileEnum(d, node, diag.BagReporter{Bag: bag})

	var found bool
	for _, item := range bag.Items() {
		if item.Code == diag.DupName {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a DupName diagnostic for two enumerants named \"red\"")
	}
}

func TestCompileEnumIgnoresNonEnumerantChildren(t *testing.T) {
	d := decltest.Enum("Color",
		decltest.Enumerant("red", 0),
		decltest.Field("stray", 1, decltest.UInt8()),
	)
	node := &schema.Node{DisplayName: "Color"}
	CompileEnum(d, node, diag.NopReporter{})
	if len(node.Enumerants) != 1 {
		t.Fatalf("Enumerants = %d; want 1 (the stray field should be ignored)", len(node.Enumerants))
	}
}
