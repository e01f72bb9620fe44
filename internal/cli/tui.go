package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/geom"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/session"
)

// Outline styles
var (
	outlineCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	outlineDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	outlineErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Outline rows
// =============================================================================

// outlineRow is one visible node in depth-first order.
type outlineRow struct {
	node     *mindmap.Node
	depth    int
	children int
	hidden   int
}

// outline lists the visible nodes depth-first, so every subtree reads as an
// indented block under its parent.
func outline(doc *mindmap.Document) []outlineRow {
	var rows []outlineRow
	seen := make(map[string]bool, doc.Len())
	var walk func(n *mindmap.Node, depth int)
	walk = func(n *mindmap.Node, depth int) {
		if seen[n.ID] {
			return
		}
		seen[n.ID] = true
		rows = append(rows, outlineRow{
			node:     n,
			depth:    depth,
			children: doc.ChildCount(n.ID),
			hidden:   mindmap.HiddenCount(doc, n.ID),
		})
		if n.Collapsed {
			return
		}
		for _, c := range doc.Children(n.ID) {
			walk(c, depth+1)
		}
	}
	for _, r := range doc.Roots() {
		walk(r, 0)
	}
	return rows
}

// =============================================================================
// EditorModel - Interactive outline editor
// =============================================================================

type editorMode int

const (
	modeBrowse editorMode = iota
	modeAdd
	modeRename
)

// EditorModel is the bubbletea model for editing a mind map as an outline.
type EditorModel struct {
	sess *session.Session
	save func(mindmap.Data) error

	rows   []outlineRow
	cursor int
	offset int
	height int

	mode      editorMode
	input     string
	status    string
	statusErr bool
	dirty     bool
	confirm   bool // quit requested with unsaved changes
}

// NewEditorModel creates an editor over sess. save persists the document
// when the user asks for it.
func NewEditorModel(sess *session.Session, save func(mindmap.Data) error) EditorModel {
	m := EditorModel{sess: sess, save: save, height: 20}
	m.refresh()
	if sel := sess.Selected(); sel != "" {
		m.moveTo(sel)
	}
	return m
}

// Dirty reports whether the document has unsaved changes.
func (m EditorModel) Dirty() bool { return m.dirty }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

// current returns the node under the cursor.
func (m EditorModel) current() *mindmap.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].node
}

func (m *EditorModel) refresh() {
	id := ""
	if n := m.current(); n != nil {
		id = n.ID
	}
	m.rows = outline(m.sess.Document())
	if id == "" || !m.moveTo(id) {
		m.setCursor(m.cursor)
	}
}

// moveTo places the cursor on id and reports whether id is visible.
func (m *EditorModel) moveTo(id string) bool {
	for i, r := range m.rows {
		if r.node.ID == id {
			m.setCursor(i)
			return true
		}
	}
	return false
}

func (m *EditorModel) setCursor(i int) {
	if i >= len(m.rows) {
		i = len(m.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	m.cursor = i
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	if n := m.current(); n != nil {
		_ = m.sess.Select(n.ID)
	}
}

func (m *EditorModel) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

// apply reports the outcome of an edit. Rejected edits leave the document
// unchanged and show the reason.
func (m *EditorModel) apply(err error, format string, args ...any) {
	if err != nil {
		m.status = errors.UserMessage(err)
		m.statusErr = true
		return
	}
	m.dirty = true
	m.confirm = false
	m.setStatus(format, args...)
	m.refresh()
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		m.setCursor(m.cursor)
	}
	return m, nil
}

func (m EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.current()
	if n == nil {
		return m, tea.Quit
	}

	key := msg.String()
	if key != "q" && key != "esc" {
		m.confirm = false
	}

	switch key {
	case "q", "esc", "ctrl+c":
		if m.dirty && !m.confirm && key != "ctrl+c" {
			m.confirm = true
			m.setStatus("Unsaved changes: press s to save or q again to quit")
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		m.setCursor(m.cursor - 1)
	case "down", "j":
		m.setCursor(m.cursor + 1)
	case "left", "h":
		if p := m.sess.Document().Parent(n.ID); p != nil {
			m.moveTo(p.ID)
		}
	case "right", "l":
		if n.Collapsed {
			_, err := m.sess.ToggleCollapsed(n.ID)
			m.apply(err, "Expanded %s", n.Title)
		}
		if m.cursor+1 < len(m.rows) && m.rows[m.cursor+1].depth > m.rows[m.cursor].depth {
			m.setCursor(m.cursor + 1)
		}

	case " ", "enter":
		collapsed, err := m.sess.ToggleCollapsed(n.ID)
		verb := "Expanded"
		if collapsed {
			verb = "Collapsed"
		}
		m.apply(err, "%s %s", verb, n.Title)
	case "x":
		locked, err := m.sess.ToggleLocked(n.ID)
		verb := "Unlocked"
		if locked {
			verb = "Locked"
		}
		m.apply(err, "%s %s", verb, n.Title)
	case "c":
		f := mindmap.FieldsOf(n)
		f.Color = f.Color%mindmap.ColorPink + 1
		m.apply(m.sess.Update(n.ID, f), "Color %s", f.Color)
	case "d", "delete":
		removed, err := m.sess.Delete(n.ID)
		m.apply(err, "Deleted %d nodes", len(removed))

	case "a", "tab":
		m.mode = modeAdd
		m.input = ""
	case "r", "e":
		m.mode = modeRename
		m.input = n.Title

	case "L":
		res, err := m.sess.AutoLayout(geom.Rect{})
		m.apply(err, "Laid out %d nodes", res.Placed)
	case "u":
		m.apply(m.sess.Undo(), "Undone")
	case "ctrl+r", "U":
		m.apply(m.sess.Redo(), "Redone")
	case "s", "ctrl+s":
		if err := m.save(m.sess.Data()); err != nil {
			m.status = errors.UserMessage(err)
			m.statusErr = true
			return m, nil
		}
		m.dirty = false
		m.setStatus("Saved")
	}
	return m, nil
}

func (m EditorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.mode = modeBrowse
		m.input = ""
		m.setStatus("Cancelled")
	case tea.KeyEnter:
		m.commitInput()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *EditorModel) commitInput() {
	n := m.current()
	mode := m.mode
	m.mode = modeBrowse
	title := m.input
	m.input = ""
	if n == nil {
		return
	}

	switch mode {
	case modeAdd:
		child, err := m.sess.AddChild(n.ID, mindmap.Fields{Title: title, Color: n.Color})
		m.apply(err, "Added %s", child.Title)
		if err == nil {
			m.moveTo(child.ID)
		}
	case modeRename:
		f := mindmap.FieldsOf(n)
		f.Title = title
		m.apply(m.sess.Update(n.ID, f), "Renamed to %s", strings.TrimSpace(title))
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := m.sess.Name
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(outlineDimStyle.Render("↑/↓ move  ←/→ parent/child  ␣ collapse  a add  r rename  d delete  x lock  c color  L layout  u/U undo/redo  s save  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd:
		b.WriteString(StyleHighlight.Render("New child: ") + m.input + "█")
	case modeRename:
		b.WriteString(StyleHighlight.Render("Title: ") + m.input + "█")
	default:
		if m.statusErr {
			b.WriteString(outlineErrorStyle.Render(iconError + " " + m.status))
		} else if m.status != "" {
			b.WriteString(outlineDimStyle.Render(m.status))
		}
	}
	return b.String()
}

func (m EditorModel) renderRow(i int) string {
	r := m.rows[i]
	n := r.node

	marker := "•"
	switch {
	case n.Collapsed && r.children > 0:
		marker = "▸"
	case r.children > 0:
		marker = "▾"
	}

	cursor := "  "
	if i == m.cursor {
		cursor = "› "
	}

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color.Hex())).Render("●")
	text := n.Title
	if i == m.cursor {
		text = outlineCursorStyle.Render(text)
	}
	line := cursor + strings.Repeat("  ", r.depth) + marker + " " + dot + " " + text
	if r.hidden > 0 {
		line += " " + outlineDimStyle.Render(fmt.Sprintf("+%d", r.hidden))
	}
	if n.Locked {
		line += " " + StyleWarning.Render("locked")
	}
	if n.EdgeLabel != "" {
		line += " " + outlineDimStyle.Render("("+n.EdgeLabel+")")
	}
	return line
}
