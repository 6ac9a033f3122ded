// ABOUTME: Edit form for section records and the summary
// ABOUTME: Prefills inputs from the selected row and saves through the workspace
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/propkit/section"
)

func (m Model) renderEditView() string {
	var s strings.Builder

	if m.currentTab() == TabSummary {
		s.WriteString(titleStyle.Render("EDIT SUMMARY"))
	} else {
		s.WriteString(titleStyle.Render("EDIT " + strings.ToUpper(m.currentTab())))
	}
	s.WriteString("\n\n")

	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(m.formFields[i])
		s.WriteString(": ")
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}

	s.WriteString(m.renderEditHelp())

	return s.String()
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab: Next field",
		"Enter: Save",
		"Esc: Cancel",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.formInputs) - 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "enter":
		err := m.saveForm()
		m.setResult(err)
		if err == nil {
			m.viewMode = ViewList
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

// openEdit opens the form for the selected record or, on the summary tab,
// for the whole summary.
func (m *Model) openEdit() {
	switch m.currentTab() {
	case TabSummary:
		m.editID = ""
		m.formFields = append([]string(nil), section.SummaryFields...)
		m.formInputs = newInputs(m.formFields, summaryValues(m.ws.Summary.Get()))
		m.focusIndex = m.summaryFocus()
		m.updateFormFocus()
		m.viewMode = ViewEdit
	case TabOutput:
		return
	default:
		e, _ := m.editor()
		id, ok := e.IDAt(m.selectedRow)
		if !ok {
			return
		}
		m.editID = id
		m.initFormInputs(e)
		m.viewMode = ViewEdit
	}
}

func (m Model) summaryFocus() int {
	if m.selectedRow < len(section.SummaryFields) {
		return m.selectedRow
	}
	return 0
}

// initFormInputs builds one input per editable field of the record m.editID,
// filled from its displayed cells.
func (m *Model) initFormInputs(e section.Editor) {
	cells := map[string]string{}
	for _, row := range e.Rows() {
		if row[0] != m.editID {
			continue
		}
		for i, c := range e.Columns() {
			cells[c] = row[i+1]
		}
	}

	m.formFields = e.Fields()
	values := make([]string, len(m.formFields))
	for i, f := range m.formFields {
		values[i] = cells[f]
	}
	m.formInputs = newInputs(m.formFields, values)
	m.focusIndex = 0
	m.updateFormFocus()
}

func newInputs(fields, values []string) []textinput.Model {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = f
		inputs[i].CharLimit = 500
		inputs[i].SetValue(values[i])
	}
	return inputs
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) formValues() map[string]string {
	values := make(map[string]string, len(m.formFields))
	for i, f := range m.formFields {
		values[f] = m.formInputs[i].Value()
	}
	return values
}

func (m Model) saveForm() error {
	values := m.formValues()
	if m.currentTab() == TabSummary {
		for _, f := range m.formFields {
			if err := m.ws.Summary.Set(f, values[f]); err != nil {
				return err
			}
		}
		return m.ws.Summary.Save()
	}
	return m.ws.UpdateRecord(m.currentTab(), m.editID, values)
}
