package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lotas/testwerk/internal/repotree"
	"github.com/lotas/testwerk/internal/selection"
)

// Row is a visible line in the tree: one node plus its indentation depth.
type Row struct {
	Node  *repotree.Node
	Depth int
}

// TreeView renders the repository forest and owns cursor/scroll state. The
// forest and selection map themselves are immutable values replaced
// wholesale on every change.
type TreeView struct {
	Forest   []*repotree.Node
	Selected selection.Map
	Cursor   int
	Offset   int
	Width    int
	Height   int
}

func NewTreeView(forest []*repotree.Node) TreeView {
	return TreeView{
		Forest:   forest,
		Selected: selection.Map{},
	}
}

// VisibleRows returns the flat list of rows, descending only into expanded
// directories.
func (t TreeView) VisibleRows() []Row {
	var rows []Row
	var rec func(nodes []*repotree.Node, depth int)
	rec = func(nodes []*repotree.Node, depth int) {
		for _, n := range nodes {
			rows = append(rows, Row{Node: n, Depth: depth})
			if n.Kind == repotree.KindDir && n.Expanded {
				rec(n.Children, depth+1)
			}
		}
	}
	rec(t.Forest, 0)
	return rows
}

// CurrentRow returns the row under the cursor, or nil.
func (t TreeView) CurrentRow() *Row {
	rows := t.VisibleRows()
	if t.Cursor >= 0 && t.Cursor < len(rows) {
		return &rows[t.Cursor]
	}
	return nil
}

// MoveUp moves the cursor up one row.
func (t *TreeView) MoveUp() {
	if t.Cursor > 0 {
		t.Cursor--
	}
	if t.Cursor < t.Offset {
		t.Offset = t.Cursor
	}
}

// MoveDown moves the cursor down one row.
func (t *TreeView) MoveDown() {
	rows := t.VisibleRows()
	if t.Cursor < len(rows)-1 {
		t.Cursor++
	}
	t.scrollToCursor()
}

func (t *TreeView) scrollToCursor() {
	visibleRows := t.Height
	if visibleRows < 1 {
		visibleRows = 1
	}
	if t.Cursor >= t.Offset+visibleRows {
		t.Offset = t.Cursor - visibleRows + 1
	}
	if t.Cursor < t.Offset {
		t.Offset = t.Cursor
	}
}

// Toggle expands/collapses the directory under the cursor. The forest is
// replaced with a structurally shared copy; sibling branches keep identity.
func (t *TreeView) Toggle() {
	row := t.CurrentRow()
	if row == nil || row.Node.Kind != repotree.KindDir {
		return
	}
	t.Forest = repotree.Toggle(t.Forest, row.Node.Path)
}

// ToggleSelect flips the selection of the file under the cursor.
func (t *TreeView) ToggleSelect() {
	row := t.CurrentRow()
	if row == nil || row.Node.Kind != repotree.KindFile {
		return
	}
	t.Selected = selection.Set(t.Selected, row.Node.Path, !t.Selected[row.Node.Path])
}

// CollapseOrParent collapses the current directory, or jumps to the parent
// directory row when the cursor is on a file.
func (t *TreeView) CollapseOrParent() {
	row := t.CurrentRow()
	if row == nil {
		return
	}
	if row.Node.Kind == repotree.KindDir {
		if row.Node.Expanded {
			t.Forest = repotree.Toggle(t.Forest, row.Node.Path)
		}
		return
	}
	rows := t.VisibleRows()
	for i := t.Cursor - 1; i >= 0; i-- {
		if rows[i].Node.Kind == repotree.KindDir && rows[i].Depth < row.Depth {
			t.Cursor = i
			if t.Cursor < t.Offset {
				t.Offset = t.Cursor
			}
			return
		}
	}
}

// ExpandOrEnter expands the current directory, or moves onto its first
// child when already expanded.
func (t *TreeView) ExpandOrEnter() {
	row := t.CurrentRow()
	if row == nil || row.Node.Kind != repotree.KindDir {
		return
	}
	if !row.Node.Expanded {
		t.Forest = repotree.Toggle(t.Forest, row.Node.Path)
		return
	}
	rows := t.VisibleRows()
	if t.Cursor+1 < len(rows) && rows[t.Cursor+1].Depth > row.Depth {
		t.Cursor++
		t.scrollToCursor()
	}
}

// View renders the tree.
func (t TreeView) View() string {
	rows := t.VisibleRows()
	if len(rows) == 0 {
		return "No files found."
	}

	visibleRows := t.Height
	if visibleRows < 1 {
		visibleRows = 20
	}

	cursorStyle := lipgloss.NewStyle().Bold(true).Reverse(true)
	dirStyle := lipgloss.NewStyle().Bold(true)
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	sizeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	var b strings.Builder
	end := t.Offset + visibleRows
	if end > len(rows) {
		end = len(rows)
	}

	for i := t.Offset; i < end; i++ {
		row := rows[i]
		indent := strings.Repeat("  ", row.Depth)
		var line string

		if row.Node.Kind == repotree.KindDir {
			icon := "▶"
			if row.Node.Expanded {
				icon = "▼"
			}
			line = indent + dirStyle.Render(fmt.Sprintf("%s %s/", icon, row.Node.Name))
		} else {
			mark := "[ ]"
			if t.Selected[row.Node.Path] {
				mark = selStyle.Render("[x]")
			}
			name := row.Node.Name
			maxLen := t.Width - len(indent) - 8
			if maxLen > 10 && len(name) > maxLen {
				name = name[:maxLen-1] + "…"
			}
			line = fmt.Sprintf("%s%s %s %s", indent, mark, name,
				sizeStyle.Render(fmt.Sprintf("(%d B)", row.Node.Size)))
		}

		if i == t.Cursor {
			for lipgloss.Width(line) < t.Width {
				line += " "
			}
			line = cursorStyle.Render(line)
		}

		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
