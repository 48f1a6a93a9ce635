package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/msgpack-codegen/catalog"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(9)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const pageSize = 20

type entry struct {
	kind       string
	name       string
	descriptor any
}

// catalogEntries flattens every catalogue into one browsable list, in
// catalogue order.
func catalogEntries(c *catalog.Catalog) []entry {
	var out []entry
	for _, o := range c.Objects {
		out = append(out, entry{"object", o.FullName, o})
	}
	for _, e := range c.Enums {
		out = append(out, entry{"enum", e.FullName, e})
	}
	for _, g := range c.Generics {
		out = append(out, entry{"generic", g.FullName, g})
	}
	for _, u := range c.Unions {
		out = append(out, entry{"union", u.FullName, u})
	}
	for _, o := range c.UnboundGenerics {
		out = append(out, entry{"unbound", o.FullName + o.TemplateParametersString(), o})
	}
	return out
}

func filterEntries(entries []entry, query string) []entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	var out []entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.name), query) || e.kind == query {
			out = append(out, e)
		}
	}
	return out
}

type browserState int

const (
	stateList browserState = iota
	stateDetail
)

type browserModel struct {
	err      error
	source   string
	entries  []entry
	visible  []entry
	filter   textinput.Model
	detail   string
	selected int
	state    browserState
}

func newBrowserModel(c *catalog.Catalog, source string) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "filter by name or kind"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()

	entries := catalogEntries(c)
	return &browserModel{
		source:  source,
		entries: entries,
		visible: entries,
		filter:  ti,
		state:   stateList,
	}
}

func (m *browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "up":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}
			return m, nil

		case "down":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}
			return m, nil

		case "enter":
			if m.state == stateList && len(m.visible) > 0 {
				m.showDetail()
			}
			return m, nil

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
				m.detail = ""
				m.err = nil
				return m, nil
			}
			return m, tea.Quit
		}
	}

	if m.state != stateList {
		return m, nil
	}
	var cmd tea.Cmd
	prev := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prev {
		m.visible = filterEntries(m.entries, m.filter.Value())
		m.selected = 0
	}
	return m, cmd
}

func (m *browserModel) showDetail() {
	data, err := yaml.Marshal(m.visible[m.selected].descriptor)
	m.detail = string(data)
	m.err = err
	m.state = stateDetail
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MessagePack catalogue"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")

	switch m.state {
	case stateList:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matching descriptors"))
			b.WriteString("\n")
		}
		start := 0
		if m.selected >= pageSize {
			start = m.selected - pageSize + 1
		}
		end := min(start+pageSize, len(m.visible))
		for i := start; i < end; i++ {
			e := m.visible[i]
			if i == m.selected {
				b.WriteString(selectedStyle.Render(fmt.Sprintf("> %-9s%s", e.kind, e.name)))
			} else {
				b.WriteString("  " + kindStyle.Render(e.kind) + nameStyle.Render(e.name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d of %d • ↑/↓ select • enter details • esc quit", len(m.visible), len(m.entries))))

	case stateDetail:
		e := m.visible[m.selected]
		b.WriteString(kindStyle.Render(e.kind))
		b.WriteString(nameStyle.Render(e.name))
		b.WriteString("\n\n")
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(detailStyle.Render(m.detail))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • ctrl+c quit"))
	}

	return b.String()
}

func runInteractive(c *catalog.Catalog, source string) error {
	p := tea.NewProgram(newBrowserModel(c, source), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
