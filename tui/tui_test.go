// ABOUTME: Tests for the TUI model
// ABOUTME: Drives key messages through Update and checks what reaches storage
package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/charm"
	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/storage"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func openTab(t *testing.T, m Model, name string) Model {
	t.Helper()
	for i, tab := range m.tabs() {
		if tab == name {
			m.tab = i
			m.selectedRow = 0
			return m
		}
	}
	t.Fatalf("no tab %s", name)
	return m
}

func TestTabsCoverEverySection(t *testing.T) {
	m := NewModel(storage.NewMemory(), nil)

	tabs := m.tabs()
	assert.Equal(t, section.NameTree, tabs[0])
	assert.Equal(t, TabSummary, tabs[len(tabs)-2])
	assert.Equal(t, TabOutput, tabs[len(tabs)-1])

	m = press(t, m, "tab")
	assert.Equal(t, section.NameBudget, m.currentTab())
	assert.Contains(t, m.View(), "budget")
}

func TestAddAndEditBudget(t *testing.T) {
	kv := storage.NewMemory()
	m := openTab(t, NewModel(kv, nil), section.NameBudget)

	m = press(t, m, "n")
	require.Equal(t, ViewEdit, m.viewMode)
	assert.Equal(t, []string{"category", "name", "unit", "amount"}, m.formFields)
	assert.Equal(t, "항목명", m.formInputs[1].Value())

	m.formInputs[3].SetValue("1500")
	m = press(t, m, "enter")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, 1500.0, m.ws.Budget.Total())

	raw, err := kv.Get(models.KeyBudget)
	require.NoError(t, err)
	assert.Contains(t, raw, `"amount":1500`)
	assert.Contains(t, m.View(), "Total: 1500")
}

func TestEditRejectsInvalidValue(t *testing.T) {
	m := openTab(t, NewModel(storage.NewMemory(), nil), section.NameDepartments)

	m = press(t, m, "n")
	require.Equal(t, ViewEdit, m.viewMode)
	m.formInputs[1].SetValue("observer")
	m = press(t, m, "enter")

	assert.Equal(t, ViewEdit, m.viewMode)
	assert.Contains(t, m.status, "Error")
}

func TestDeleteRisk(t *testing.T) {
	kv := storage.NewMemory()
	m := openTab(t, NewModel(kv, nil), section.NameRisks)

	m = press(t, m, "n", "esc")
	require.Equal(t, 1, m.ws.Risks.Len())

	m = press(t, m, "d")
	require.Equal(t, ViewConfirmDelete, m.viewMode)
	m = press(t, m, "n")
	assert.Equal(t, 1, m.ws.Risks.Len())

	m = press(t, m, "d", "y")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, 0, m.ws.Risks.Len())

	raw, err := kv.Get(models.KeyRisks)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestMoveTreeNode(t *testing.T) {
	kv := storage.NewMemory()
	m := NewModel(kv, nil)
	require.Equal(t, 1, m.ws.Tree.Len())

	m = press(t, m, "n")
	m.formInputs[0].SetValue("둘째")
	m = press(t, m, "enter")
	require.Equal(t, 1, m.selectedRow)

	m = press(t, m, "K")
	assert.Equal(t, 0, m.selectedRow)
	assert.Equal(t, "둘째", m.ws.Tree.Items()[0].Title)

	raw, err := kv.Get(models.KeyTree)
	require.NoError(t, err)
	assert.Contains(t, raw, "둘째")

	m = openTab(t, m, section.NameBudget)
	m = press(t, m, "n", "esc", "n", "esc")
	m.selectedRow = 1
	m = press(t, m, "K")
	assert.Contains(t, m.status, section.ErrNotReorderable.Error())
}

func TestImportFromPath(t *testing.T) {
	kv := storage.NewMemory()
	path := filepath.Join(t.TempDir(), "budget.csv")
	require.NoError(t, os.WriteFile(path, []byte("category,name,unit,amount\n운영비,회의,회,250\n"), 0o600))

	m := openTab(t, NewModel(kv, nil), section.NameBudget)
	m = press(t, m, "i")
	require.Equal(t, ViewImport, m.viewMode)

	m.pathInput.SetValue(path)
	m = press(t, m, "enter")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, "CSV 업로드 완료", m.status)

	raw, err := kv.Get(models.KeyBudget)
	require.NoError(t, err)
	assert.Contains(t, raw, "회의")
}

func TestImportMissingFileStaysOpen(t *testing.T) {
	m := openTab(t, NewModel(storage.NewMemory(), nil), section.NameBudget)
	m = press(t, m, "i")
	m.pathInput.SetValue(filepath.Join(t.TempDir(), "missing.csv"))
	m = press(t, m, "enter")

	assert.Equal(t, ViewImport, m.viewMode)
	assert.Contains(t, m.status, "Error")
}

func TestImportUnsupportedSection(t *testing.T) {
	m := press(t, NewModel(storage.NewMemory(), nil), "i")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Contains(t, m.status, "does not support import")
}

func TestSummaryEditAndClear(t *testing.T) {
	kv := storage.NewMemory()
	m := openTab(t, NewModel(kv, nil), TabSummary)

	m.selectedRow = 1
	m = press(t, m, "enter")
	require.Equal(t, ViewEdit, m.viewMode)
	assert.Equal(t, 1, m.focusIndex)

	m.formInputs[1].SetValue("목표 문장")
	m = press(t, m, "enter")
	assert.Equal(t, "목표 문장", m.ws.Summary.Get().Objective)

	raw, err := kv.Get(models.KeySummary)
	require.NoError(t, err)
	assert.Contains(t, raw, "목표 문장")

	m = press(t, m, "d", "y")
	assert.Equal(t, models.Summary{}, m.ws.Summary.Get())
}

func TestOutputDelete(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(models.KeyEffects, `[{"id":"e1","text":"첫째"},{"id":"e2","text":"둘째"}]`))

	m := openTab(t, NewModel(kv, nil), TabOutput)
	rows := outputRows(m.view.Assemble())
	require.NotEmpty(t, rows)

	for i, r := range rows {
		if r.Section == "effects" && r.Label == "첫째" {
			m.selectedRow = i
		}
	}
	m = press(t, m, "d", "y")
	assert.NotContains(t, m.status, "Error")

	raw, err := kv.Get(models.KeyEffects)
	require.NoError(t, err)
	assert.NotContains(t, raw, "첫째")
	assert.Equal(t, 1, m.ws.Effects.Len())
}

func TestSaveShowsNotification(t *testing.T) {
	m := openTab(t, NewModel(storage.NewMemory(), nil), section.NameBudget)
	m = press(t, m, "s")
	assert.Equal(t, "저장되었습니다.", m.status)
}

func TestSyncView(t *testing.T) {
	m := press(t, NewModel(storage.NewMemory(), nil), "y")
	assert.Equal(t, ViewList, m.viewMode)

	m = NewModel(charm.NewTestClient(t), nil)
	m = press(t, m, "y")
	require.Equal(t, ViewSync, m.viewMode)
	assert.Contains(t, m.View(), "local driver")

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.syncInProgress)

	next, _ = m.Update(cmd())
	m = next.(Model)
	assert.False(t, m.syncInProgress)
	require.Len(t, m.syncMessages, 2)
	assert.Contains(t, m.syncMessages[1], "sync completed")

	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}
