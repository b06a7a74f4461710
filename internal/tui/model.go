package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dealdesk/autotax/internal/rules"
)

// stateItem is one jurisdiction in the browser list.
type stateItem struct {
	code   string
	name   string
	scheme string
}

func (i stateItem) Title() string       { return i.code + " - " + i.name }
func (i stateItem) Description() string { return i.scheme }
func (i stateItem) FilterValue() string { return i.code + " " + i.name }

// keyMap holds the browser key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the jurisdiction rule browser: a state list on the left and the
// selected state's ruleset on the right. It reads the immutable registry
// and performs no calculation.
type Model struct {
	registry *rules.Registry
	list     list.Model
	detail   viewport.Model
	width    int
	height   int
	err      error
}

// NewModel creates the browser over a rule registry.
func NewModel(registry *rules.Registry) Model {
	items := make([]list.Item, 0, registry.Len())
	for _, code := range registry.StateCodes() {
		rule, err := registry.GetRulesForState(code)
		if err != nil {
			continue
		}
		items = append(items, stateItem{code: code, name: rule.Name, scheme: rule.Scheme.DisplayName()})
	}

	l := list.New(items, list.NewDefaultDelegate(), 40, 20)
	l.Title = "Jurisdictions"
	l.SetShowStatusBar(false)
	l.Styles.Title = titleStyle

	m := Model{
		registry: registry,
		list:     l,
		detail:   viewport.New(50, 20),
	}
	m.refreshDetail()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listWidth := msg.Width / 3
		m.list.SetSize(listWidth, msg.Height-2)
		m.detail.Width = msg.Width - listWidth - 6
		m.detail.Height = msg.Height - 4
		m.refreshDetail()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) && !m.list.SettingFilter() {
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.refreshDetail()
	m.detail, cmd = m.detail.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// refreshDetail re-renders the detail pane for the selected state.
func (m *Model) refreshDetail() {
	item, ok := m.list.SelectedItem().(stateItem)
	if !ok {
		m.detail.SetContent("")
		return
	}
	summary, err := m.registry.RuleSummary(item.code)
	if err != nil {
		m.err = err
		m.detail.SetContent(errorStyle.Render(err.Error()))
		return
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(item.code+" - "+item.name) + "\n\n")
	for _, row := range summary {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-22s", row[0]+":")), row[1]))
	}
	m.detail.SetContent(b.String())
}

// View implements tea.Model.
func (m Model) View() string {
	detail := detailBorderStyle.Render(m.detail.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), detail)
	help := helpStyle.Render("↑/↓ select • / filter • q quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}
