package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonzhangsm/capnproto/internal/schema"
)

// LayoutModel is a Bubble Tea model that renders a struct's data and
// pointer sections as a grid of cells, one per allocated byte/pointer
// slot, colored by what's there — modeled on progressModel's single static
// render-plus-keypress loop, minus the streaming event channel a build
// pipeline needs and this one-shot view does not.
type LayoutModel struct {
	node   *schema.Node
	cursor int
	width  int
	prog   progress.Model
}

// NewLayoutModel returns a model ready to run with tea.NewProgram.
func NewLayoutModel(node *schema.Node) *LayoutModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40
	return &LayoutModel{node: node, width: 80, prog: prog}
}

func (m *LayoutModel) Init() tea.Cmd { return nil }

func (m *LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 4 {
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.node.Fields)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

var (
	byteBlock    = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("0"))
	pointerBlock = lipgloss.NewStyle().Background(lipgloss.Color("5")).Foreground(lipgloss.Color("0"))
	holeBlock    = lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
)

func (m *LayoutModel) View() string {
	var b strings.Builder
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	b.WriteString(titleStyle.Render(m.node.DisplayName))
	b.WriteString("\n\n")

	b.WriteString(renderDataSection(m.node))
	b.WriteString("\n")
	b.WriteString(renderPointerSection(m.node))
	b.WriteString("\n")
	b.WriteString("fill:    " + m.prog.ViewAs(dataSectionFillRatio(m.node)))
	b.WriteString("\n\n")

	for i, f := range m.node.Fields {
		line := fmt.Sprintf("@%-3d %-20s %s", f.Ordinal, f.Name, offsetLabel(f))
		if i == m.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n(up/down to select, q to quit)\n")
	return b.String()
}

func offsetLabel(f schema.FieldNode) string {
	if f.Offset.IsPointer {
		return fmt.Sprintf("pointer slot %d", f.Offset.PointerSlot)
	}
	return fmt.Sprintf("data offset %d (lgSize %d)", f.Offset.Offset, f.Offset.LgSize)
}

// dataSectionOccupancy marks one bool per byte of the data section: true
// where some field claims it. Only byte-granularity and coarser fields are
// distinguishable at this resolution; sub-byte (bit) fields still mark
// their containing byte as occupied.
func dataSectionOccupancy(node *schema.Node) []bool {
	bytes := int(node.DataSectionWordSize) * 8
	occupied := make([]bool, bytes)
	for _, f := range node.Fields {
		if f.Offset.IsPointer {
			continue
		}
		size := 1 << f.Offset.LgSize
		startBit := int(f.Offset.Offset) * size
		startByte := startBit / 8
		endByte := (startBit + size + 7) / 8
		for i := startByte; i < endByte && i < bytes; i++ {
			occupied[i] = true
		}
	}
	return occupied
}

// dataSectionFillRatio is the fraction of the data section's bytes actually
// claimed by a field, the number the fill bar renders.
func dataSectionFillRatio(node *schema.Node) float64 {
	occupied := dataSectionOccupancy(node)
	if len(occupied) == 0 {
		return 0
	}
	used := 0
	for _, o := range occupied {
		if o {
			used++
		}
	}
	return float64(used) / float64(len(occupied))
}

// renderDataSection draws one block per byte of the data section, occupied
// bytes in byteBlock, padding holes in holeBlock.
func renderDataSection(node *schema.Node) string {
	occupied := dataSectionOccupancy(node)
	var b strings.Builder
	b.WriteString("data:    ")
	for _, o := range occupied {
		if o {
			b.WriteString(byteBlock.Render("#"))
		} else {
			b.WriteString(holeBlock.Render("."))
		}
	}
	return b.String()
}

func renderPointerSection(node *schema.Node) string {
	var b strings.Builder
	b.WriteString("pointers:")
	for i := uint32(0); i < node.PointerSectionSize; i++ {
		b.WriteString(" " + pointerBlock.Render("P"))
	}
	return b.String()
}
