// ABOUTME: Delete confirmation view for TUI
// ABOUTME: Confirms removal of a section record or a displayed output record
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/propkit/prompt"
)

var (
	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(1, 2).
			Width(60).
			Align(lipgloss.Center)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	confirmButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("9")).
				Padding(0, 2).
				MarginRight(2)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("8")).
				Padding(0, 2)
)

// openDelete asks before removing the selected record. The summary tab
// clears every field instead.
func (m *Model) openDelete() {
	switch m.currentTab() {
	case TabSummary:
		m.deleteLabel = "요약 내용 전체"
	case TabOutput:
		rows := outputRows(m.view.Assemble())
		if m.selectedRow >= len(rows) {
			return
		}
		r := rows[m.selectedRow]
		m.deleteLabel = fmt.Sprintf("%s: %s", r.Section, r.Label)
	default:
		e, _ := m.editor()
		rows := e.Rows()
		if m.selectedRow >= len(rows) {
			return
		}
		m.deleteLabel = fmt.Sprintf("%s #%d", e.Name(), m.selectedRow+1)
	}
	m.viewMode = ViewConfirmDelete
}

func (m Model) renderConfirmDeleteView() string {
	title := warningStyle.Render("⚠  DELETE CONFIRMATION  ⚠")
	message := "정말 삭제하시겠습니까?"
	info := "\n" + m.deleteLabel + "\n"

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		confirmButtonStyle.Render("Yes, Delete (y)"),
		cancelButtonStyle.Render("Cancel (n/esc)"),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		message,
		info,
		"",
		buttons,
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		confirmBoxStyle.Render(content),
	)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		err := m.performDelete()
		m.setResult(err)
		if err == nil && m.status == "" {
			m.status = "Successfully deleted"
		}
		m.viewMode = ViewList
		if n := m.rowCount(); m.selectedRow >= n && n > 0 {
			m.selectedRow = n - 1
		}
	case "n", "N", "esc":
		m.viewMode = ViewList
	}

	return m, nil
}

// performDelete runs after the dialog, so every path is already confirmed.
func (m Model) performDelete() error {
	yes := prompt.AutoConfirm(true)
	switch m.currentTab() {
	case TabSummary:
		_, err := m.ws.Summary.Clear(yes)
		return err
	case TabOutput:
		r := outputRows(m.view.Assemble())[m.selectedRow]
		if err := m.view.Delete(r.Section, r.Index, yes); err != nil {
			return err
		}
		// The output view edits storage directly.
		m.ws.Open()
		return nil
	}

	e, _ := m.editor()
	id, ok := e.IDAt(m.selectedRow)
	if !ok {
		return fmt.Errorf("no record at row %d", m.selectedRow+1)
	}
	return m.ws.RemoveRecord(e.Name(), id)
}
