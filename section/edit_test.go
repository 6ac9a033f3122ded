// ABOUTME: Tests for by-name record edits used by the CLI and MCP surfaces
// ABOUTME: Checks field validation, rollback on bad values and persistence

package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/prompt"
)

func TestAddRecordPersists(t *testing.T) {
	f := newFixture(t)
	ws := NewWorkspace(f.adapter)

	id, err := ws.AddRecord(NameBudget, map[string]string{"name": "회의", "amount": "12"}, prompt.AutoConfirm(true))
	require.NoError(t, err)

	b, ok := ws.Budget.Get(id)
	require.True(t, ok)
	assert.Equal(t, "회의", b.Name)
	assert.Equal(t, 12.0, b.Amount)

	stored, err := f.kv.Get(models.KeyBudget)
	require.NoError(t, err)
	assert.Contains(t, stored, id)
}

func TestAddRecordValidation(t *testing.T) {
	f := newFixture(t)
	ws := NewWorkspace(f.adapter)

	_, err := ws.AddRecord(NameRisks, map[string]string{"colour": "red"}, prompt.AutoConfirm(true))
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, 0, ws.Risks.Len())

	_, err = ws.AddRecord(NameDepartments, map[string]string{"name": "교육부", "role": "observer"}, prompt.AutoConfirm(true))
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 0, ws.Departments.Len())

	_, err = ws.AddRecord(NameEffects, map[string]string{"text": "   "}, prompt.AutoConfirm(true))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = ws.AddRecord(NameSummary, nil, prompt.AutoConfirm(true))
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestAddRecordDuplicateDepartmentRollsBack(t *testing.T) {
	f := newFixture(t)
	ws := NewWorkspace(f.adapter)

	_, err := ws.AddRecord(NameDepartments, map[string]string{"name": "교육부", "role": "주관"}, prompt.AutoConfirm(true))
	require.NoError(t, err)
	_, err = ws.AddRecord(NameDepartments, map[string]string{"name": "교육부", "role": "주관"}, prompt.AutoConfirm(true))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, ws.Departments.Len())
}

func TestUpdateAndRemoveRecord(t *testing.T) {
	f := newFixture(t)
	ws := NewWorkspace(f.adapter)

	id, err := ws.AddRecord(NameEffects, map[string]string{"text": "효과"}, prompt.AutoConfirm(true))
	require.NoError(t, err)

	require.NoError(t, ws.UpdateRecord(NameEffects, id, map[string]string{"text": "바뀐 효과"}))
	e, _ := ws.Effects.Get(id)
	assert.Equal(t, "바뀐 효과", e.Text)

	assert.ErrorIs(t, ws.UpdateRecord(NameEffects, "missing", map[string]string{"text": "x"}), ErrNoRecord)
	require.NoError(t, ws.RemoveRecord(NameEffects, id))
	assert.ErrorIs(t, ws.RemoveRecord(NameEffects, id), ErrNoRecord)

	stored, err := f.kv.Get(models.KeyEffects)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stored)
}
