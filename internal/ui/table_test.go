package ui

import (
	"strings"
	"testing"

	"github.com/simonzhangsm/capnproto/internal/schema"
)

func sampleNode() *schema.Node {
	disc := uint16(0)
	return &schema.Node{
		DisplayName:         "Point",
		DataSectionWordSize: 1,
		PointerSectionSize:  1,
		PreferredEncoding:   schema.EncodingInlineComposite,
		Fields: []schema.FieldNode{
			{Name: "x", Ordinal: 0, Offset: schema.FieldOffset{LgSize: 5, Offset: 0}},
			{Name: "y", Ordinal: 1, Offset: schema.FieldOffset{IsPointer: true, PointerSlot: 0}},
			{Name: "tag", Ordinal: 2, Offset: schema.FieldOffset{LgSize: 4, Offset: 1}, Discriminant: &disc, InGroup: true, GroupID: 0xABCD},
		},
	}
}

func TestRenderTableWithoutColorIsPlainText(t *testing.T) {
	out := RenderTable(sampleNode(), false)
	if strings.Contains(out, "\x1b[") {
		t.Fatal("RenderTable(useColor=false) should never emit ANSI escape codes")
	}
	for _, want := range []string{"Point", "x", "y", "tag", "slot 0", "0xabcd"} {
		if !strings.Contains(out, want) {
			t.Fatalf("RenderTable output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableHeaderReportsSectionSizes(t *testing.T) {
	out := RenderTable(sampleNode(), false)
	header := strings.Split(out, "\n")[0]
	for _, want := range []string{"data words=1", "pointers=1", "encoding=inline_composite"} {
		if !strings.Contains(header, want) {
			t.Fatalf("header %q missing %q", header, want)
		}
	}
}

func TestRenderTableIncludesOneLinePerField(t *testing.T) {
	out := RenderTable(sampleNode(), false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header line (layout summary) + column header row + 3 field rows.
	if len(lines) != 5 {
		t.Fatalf("RenderTable produced %d lines; want 5, got:\n%s", len(lines), out)
	}
}

func TestRenderTablePointerFieldShowsSlot(t *testing.T) {
	out := RenderTable(sampleNode(), false)
	if !strings.Contains(out, "slot 0") {
		t.Fatalf("pointer field should render its slot index, got:\n%s", out)
	}
}

func TestRenderTableDiscriminantFieldShowsTag(t *testing.T) {
	out := RenderTable(sampleNode(), false)
	if !strings.Contains(out, "[#0]") {
		t.Fatalf("a union variant field should show its discriminant value, got:\n%s", out)
	}
}

func TestColorizeDisabledReturnsPlainInput(t *testing.T) {
	got := colorize(false, headerColor, "hello")
	if got != "hello" {
		t.Fatalf("colorize(false, ...) = %q; want unmodified input", got)
	}
}

func TestColorizeEnabledPreservesText(t *testing.T) {
	got := colorize(true, headerColor, "hello")
	if !strings.Contains(got, "hello") {
		t.Fatalf("colorize(true, ...) = %q; should still contain the original text", got)
	}
}

func TestTruncateShortStringUnchanged(t *testing.T) {
	if got := Truncate("hi", 10); got != "hi" {
		t.Fatalf("Truncate(short, wide) = %q; want unchanged", got)
	}
}

func TestTruncateLongStringGetsEllipsis(t *testing.T) {
	got := Truncate("a very long value that overflows", 10)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Truncate(long, narrow) = %q; want an ellipsis suffix", got)
	}
	if len(got) > 10 {
		t.Fatalf("Truncate result %q exceeds the requested width", got)
	}
}

func TestTruncateZeroWidthReturnsInputUnchanged(t *testing.T) {
	if got := Truncate("anything", 0); got != "anything" {
		t.Fatalf("Truncate(_, 0) = %q; want the input returned as-is", got)
	}
}
