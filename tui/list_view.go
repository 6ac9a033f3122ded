// ABOUTME: Section list view for TUI
// ABOUTME: Tabs over every section with navigation, add, reorder, save and load keys
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/propkit/importer"
	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
)

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("PROPKIT"))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	s.WriteString(m.renderTable())
	s.WriteString("\n")

	if line := m.renderFooter(); line != "" {
		s.WriteString(line)
		s.WriteString("\n")
	}
	if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}

	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, tab := range m.tabs() {
		if i == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) tableHeight() int {
	if h := m.height - 12; h > 3 {
		return h
	}
	return 3
}

func (m Model) renderTable() string {
	var (
		columns []table.Column
		rows    []table.Row
	)

	switch m.currentTab() {
	case TabSummary:
		columns = []table.Column{{Title: "Field", Width: 16}, {Title: "Value", Width: 56}}
		summary := m.ws.Summary.Get()
		for i, field := range section.SummaryFields {
			rows = append(rows, table.Row{field, summaryValues(summary)[i]})
		}
	case TabOutput:
		columns = []table.Column{{Title: "Section", Width: 18}, {Title: "#", Width: 4}, {Title: "Record", Width: 50}}
		for _, r := range outputRows(m.view.Assemble()) {
			rows = append(rows, table.Row{r.Section, fmt.Sprint(r.Index + 1), r.Label})
		}
	default:
		e, _ := m.editor()
		columns = append(columns, table.Column{Title: "#", Width: 4})
		for _, c := range e.Columns() {
			columns = append(columns, table.Column{Title: c, Width: columnWidth(c)})
		}
		for i, row := range e.Rows() {
			rows = append(rows, append(table.Row{fmt.Sprint(i + 1)}, row[1:]...))
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func columnWidth(name string) int {
	switch name {
	case "title", "name", "factor", "text", "description", "comment":
		return 28
	}
	return 12
}

func (m Model) renderFooter() string {
	e, ok := m.editor()
	if !ok {
		return ""
	}
	if e.HasTotal() {
		return "Total: " + section.FormatNumber(e.Total())
	}
	return fmt.Sprintf("Total: %d record(s)", e.Len())
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Tab: Switch tabs",
		"Enter: Edit",
		"n: New",
		"d: Delete",
		"s: Save",
		"l: Load",
		"i: Import CSV",
		"K/J: Move",
	}
	if m.client != nil {
		help = append(help, "y: Sync")
	}
	help = append(help, "q: Quit")
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) rowCount() int {
	switch m.currentTab() {
	case TabSummary:
		return len(section.SummaryFields)
	case TabOutput:
		return len(outputRows(m.view.Assemble()))
	}
	e, _ := m.editor()
	return e.Len()
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.rowCount()-1 {
			m.selectedRow++
		}
	case "tab", "right":
		m.tab = (m.tab + 1) % len(m.tabs())
		m.selectedRow = 0
	case "shift+tab", "left":
		m.tab = (m.tab + len(m.tabs()) - 1) % len(m.tabs())
		m.selectedRow = 0
	case "enter":
		m.openEdit()
	case "n":
		m.addRecord()
	case "d":
		m.openDelete()
	case "s":
		m.setResult(m.save())
	case "l":
		m.setResult(m.load())
	case "i":
		m.openImport()
	case "K":
		m.move(-1)
	case "J":
		m.move(1)
	case "y":
		if m.client != nil {
			m.viewMode = ViewSync
		}
	}

	return m, nil
}

// addRecord appends a default record and opens it for editing.
func (m *Model) addRecord() {
	e, ok := m.editor()
	if !ok {
		return
	}
	id, err := m.ws.AddRecord(e.Name(), nil, prompt.AutoConfirm(false))
	m.setResult(err)
	if err != nil {
		return
	}
	m.selectedRow = e.Len() - 1
	m.editID = id
	m.initFormInputs(e)
	m.viewMode = ViewEdit
}

func (m *Model) save() error {
	switch m.currentTab() {
	case TabSummary:
		return m.ws.Summary.Save()
	case TabOutput:
		return nil
	}
	e, _ := m.editor()
	return e.Save()
}

func (m *Model) load() error {
	switch m.currentTab() {
	case TabSummary:
		if err := m.ws.Summary.Load(); err != nil && !errors.Is(err, persist.ErrNoData) {
			return err
		}
		return nil
	case TabOutput:
		return nil
	}
	e, _ := m.editor()
	if _, err := e.Load(); err != nil && !errors.Is(err, persist.ErrNoData) {
		return err
	}
	m.selectedRow = 0
	return nil
}

// move shifts the selected record by delta and persists the new order.
func (m *Model) move(delta int) {
	e, ok := m.editor()
	if !ok {
		return
	}
	to := m.selectedRow + delta
	if to < 0 || to >= e.Len() {
		return
	}
	err := e.Reorder(m.selectedRow, to)
	if err == nil {
		err = section.Commit(e)
		m.selectedRow = to
	}
	m.setResult(err)
}

func (m *Model) openImport() {
	e, ok := m.editor()
	if !ok {
		return
	}
	supported := false
	for _, name := range importer.Sections() {
		if name == e.Name() {
			supported = true
		}
	}
	if !supported {
		m.setResult(fmt.Errorf("%w: %s", importer.ErrUnsupported, e.Name()))
		return
	}
	m.initPathInput()
	m.viewMode = ViewImport
}

func summaryValues(s models.Summary) []string {
	return []string{s.Background, s.Objective, s.Strategy, s.ExpectedEffect}
}
