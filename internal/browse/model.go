// Package browse is the terminal frontend: the same navigator driven by a
// Bubble Tea program instead of the Gio popup.
package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quickpick/internal/i18n"
	"quickpick/internal/navigator"
	"quickpick/internal/snippets"
)

// Rows shown when the terminal size is unknown.
const defaultListHeight = 10

var (
	crumbStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	rowStyle      = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62")).
			Bold(true)
	folderMark = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Render(" ›")
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model of one picker session.
type Model struct {
	nav    *navigator.Navigator
	search textinput.Model
	height int
	picked string
}

// NewModel starts a session at the root of tree.
func NewModel(tree *snippets.Tree) Model {
	ti := textinput.New()
	ti.Placeholder = i18n.T("picker_search")
	ti.Prompt = "› "
	ti.Focus()

	return Model{
		nav:    navigator.New(tree),
		search: ti,
		height: defaultListHeight,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// breadcrumb, search, blank line, hint
		m.height = max(msg.Height-4, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.nav.Cancel()
			return m, tea.Quit

		case "enter":
			res := m.nav.SelectCurrent()
			if res.Outcome == navigator.Picked {
				m.picked = res.Text
				return m, tea.Quit
			}
			m.search.SetValue(m.nav.Filter())
			return m, nil

		case "up", "ctrl+p":
			m.nav.MoveCursor(-1)
			return m, nil

		case "down", "ctrl+n":
			m.nav.MoveCursor(1)
			return m, nil

		case "backspace":
			if m.search.Value() == "" && m.nav.CanGoBack() {
				m.nav.Back()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.nav.Filter() {
		m.nav.SetFilter(v)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.nav.Done() {
		return ""
	}

	var b strings.Builder

	crumb := m.nav.Breadcrumb()
	if crumb == "" {
		crumb = i18n.T("picker_root")
	}
	b.WriteString(crumbStyle.Render(crumb))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	visible := m.nav.Visible()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("  " + i18n.T("picker_empty")))
		b.WriteString("\n")
	}

	cursor := m.nav.Cursor()
	first, last := window(len(visible), cursor, m.height)
	for i := first; i < last; i++ {
		label := visible[i]
		if m.nav.IsFolder(label) {
			label += folderMark
		}
		if i == cursor {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(rowStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(i18n.T("picker_hint")))
	return b.String()
}

// Outcome reports how the session ended.
func (m Model) Outcome() navigator.Outcome {
	return m.nav.Outcome()
}

// Picked returns the selected leaf text, if any.
func (m Model) Picked() (string, bool) {
	return m.picked, m.nav.Outcome() == navigator.Picked
}

// window returns the [first, last) range of rows to draw so that the cursor
// stays on screen.
func window(total, cursor, height int) (int, int) {
	if total <= height {
		return 0, total
	}
	first := 0
	if cursor >= height {
		first = cursor - height + 1
	}
	return first, first + height
}
