// ABOUTME: CSV import view for TUI
// ABOUTME: Prompts for a file path and applies it to the current section
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/propkit/section"
)

func (m *Model) initPathInput() {
	m.pathInput = textinput.New()
	m.pathInput.Placeholder = "path/to/file.csv"
	m.pathInput.CharLimit = 1024
	m.pathInput.Focus()
}

func (m Model) renderImportView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("IMPORT " + strings.ToUpper(m.currentTab())))
	s.WriteString("\n\n")
	s.WriteString(m.pathInput.View())
	s.WriteString("\n\n")
	if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("Enter: Import • Esc: Cancel"))

	return s.String()
}

func (m Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		return m, nil
	case "enter":
		err := m.importFile(strings.TrimSpace(m.pathInput.Value()))
		m.setResult(err)
		if err == nil {
			m.viewMode = ViewList
			m.selectedRow = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) importFile(path string) error {
	if path == "" {
		return fmt.Errorf("a file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	e, _ := m.editor()
	if _, err := m.importer.Import(e.Name(), f); err != nil {
		return err
	}
	return section.Commit(e)
}
