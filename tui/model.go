// Package tui renders a numinput.Widget as a bubbletea component.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-via/numinput"
)

var (
	buttonStyle         = lipgloss.NewStyle().Bold(true)
	disabledButtonStyle = lipgloss.NewStyle().Faint(true)
	fieldStyle          = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true)
	draftStyle          = fieldStyle.Foreground(lipgloss.Color("214"))
	mutedFieldStyle     = fieldStyle.Foreground(lipgloss.Color("241"))
	labelStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

type keyMap struct {
	Increase  key.Binding
	Decrease  key.Binding
	Commit    key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Increase:  key.NewBinding(key.WithKeys("up", "+"), key.WithHelp("↑/+", "increase")),
		Decrease:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "decrease")),
		Commit:    key.NewBinding(key.WithKeys("enter", "tab"), key.WithHelp("enter", "commit")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Quit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increase, k.Decrease, k.Commit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Increase, k.Decrease, k.Commit, k.Backspace, k.Quit}}
}

// Model is a bubbletea model around a widget. Typed characters edit a text
// buffer that is fed to the widget after every keystroke; enter or tab commit.
type Model struct {
	w       *numinput.Widget
	label   string
	keys    keyMap
	help    help.Model
	buffer  string
	editing bool
}

// New returns a model for w. The label is shown before the control.
func New(w *numinput.Widget, label string) Model {
	return Model{
		w:     w,
		label: label,
		keys:  newKeyMap(),
		help:  help.New(),
	}
}

// Widget returns the underlying widget.
func (m Model) Widget() *numinput.Widget {
	return m.w
}

// Buffer returns the text being typed, if any.
func (m Model) Buffer() (string, bool) {
	return m.buffer, m.editing
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Increase):
		m.w.Increase()
		m.buffer, m.editing = "", false
	case key.Matches(keyMsg, m.keys.Decrease):
		m.w.Decrease()
		m.buffer, m.editing = "", false
	case key.Matches(keyMsg, m.keys.Commit):
		m.w.Blur()
		m.buffer, m.editing = "", false
	case key.Matches(keyMsg, m.keys.Backspace):
		if m.editing && m.buffer != "" {
			r := []rune(m.buffer)
			m.edit(string(r[:len(r)-1]))
		}
	case keyMsg.Type == tea.KeyRunes:
		typed := string(keyMsg.Runes)
		if strings.Trim(typed, "0123456789.-") != "" {
			return m, nil
		}
		m.edit(m.buffer + typed)
	}
	return m, nil
}

// edit replaces the buffer and hands it to the widget. Partial text such as
// "-" stays in the buffer while the widget keeps its last valid value.
func (m *Model) edit(text string) {
	if !m.w.Mutable() {
		return
	}
	m.buffer, m.editing = text, true
	m.w.InputChange(text)
}

func (m Model) View() string {
	st := m.w.State()
	cfg := m.w.Config()
	mutable := m.w.Mutable()

	button := func(label string, disabled bool) string {
		if disabled || !mutable {
			return disabledButtonStyle.Render(label)
		}
		return buttonStyle.Render(label)
	}

	text := m.w.Display()
	style := fieldStyle
	switch {
	case !mutable:
		style = mutedFieldStyle
	case m.editing:
		text = m.buffer
		style = draftStyle
	}

	sep := " "
	if cfg.Mobile {
		sep = ""
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		button("[-]", st.DecreaseDisabled), sep,
		style.Render(text), sep,
		button("[+]", st.IncreaseDisabled),
	)

	var b strings.Builder
	if m.label != "" {
		b.WriteString(labelStyle.Render(m.label))
		b.WriteString("\n")
	}
	b.WriteString(row)
	if !cfg.Mobile {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}
