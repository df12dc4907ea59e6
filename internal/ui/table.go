// Package ui renders a translated struct's layout for humans: a static,
// colorized table for the layout and cache show commands, and
// (layout_tui.go, driven from cmd/nodetranslator/layout.go) an interactive
// Bubble Tea view of the same data. Color and width handling
// mirror internal/version's fatih/color use and internal/ui/progress.go's
// go-runewidth truncation.
package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/simonzhangsm/capnproto/internal/schema"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	pointerColor = color.New(color.FgMagenta)
	discriminant = color.New(color.FgYellow)
	groupColor   = color.New(color.FgBlue)
	titleCaser   = cases.Title(language.English)
)

// RenderTable formats node's field table as aligned, colorized text.
// useColor should come from a --color flag resolved against TTY detection
// (see cmd/nodetranslator's resolveColor), not from color's own globals,
// so output stays deterministic on a pipe.
func RenderTable(node *schema.Node, useColor bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (data words=%d, pointers=%d, encoding=%s)\n",
		colorize(useColor, headerColor, node.DisplayName),
		node.DataSectionWordSize, node.PointerSectionSize, node.PreferredEncoding)

	cols := []string{"ordinal", "name", "kind", "offset", "group"}
	widths := []int{7, 24, 8, 10, 10}
	writeRow(&b, cols, widths, func(s string) string { return colorize(useColor, headerColor, titleCaser.String(s)) })

	for _, f := range node.Fields {
		kind := "data"
		offset := fmt.Sprintf("%d@%d", f.Offset.Offset, f.Offset.LgSize)
		if f.Offset.IsPointer {
			kind = "pointer"
			offset = fmt.Sprintf("slot %d", f.Offset.PointerSlot)
		}
		group := "-"
		if f.InGroup {
			group = fmt.Sprintf("0x%x", f.GroupID)
		}
		name := f.Name
		if f.Discriminant != nil {
			name = colorize(useColor, discriminant, fmt.Sprintf("%s [#%d]", f.Name, *f.Discriminant))
		}
		kindText := kind
		if kind == "pointer" {
			kindText = colorize(useColor, pointerColor, kind)
		}
		groupText := group
		if f.InGroup {
			groupText = colorize(useColor, groupColor, group)
		}
		writeRow(&b, []string{fmt.Sprintf("@%d", f.Ordinal), name, kindText, offset, groupText}, widths, nil)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cols []string, widths []int, style func(string) string) {
	for i, c := range cols {
		text := c
		if style != nil {
			text = style(c)
		}
		pad := widths[i] - runewidth.StringWidth(c)
		b.WriteString(text)
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteByte(' ')
	}
	b.WriteByte('\n')
}

func colorize(enabled bool, c *color.Color, s string) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

// Truncate shortens value to fit width columns, matching go-runewidth's
// ellipsis-on-overflow behavior used by the pipeline progress view.
func Truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
