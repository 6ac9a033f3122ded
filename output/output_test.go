// ABOUTME: Tests for the aggregate output view
// ABOUTME: Covers tolerant assembly of both indicator shapes and index-mapped deletion

package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/storage"
)

const quantList = `[{"id":"q1","name":"참여자","unit":"명","baseline":10,"target":20}]`

func setup(t *testing.T) (*View, *storage.Memory, *persist.Adapter) {
	t.Helper()
	kv := storage.NewMemory()
	adapter := persist.New(kv)
	return New(adapter), kv, adapter
}

func TestAssembleEmpty(t *testing.T) {
	v, _, _ := setup(t)

	snap := v.Assemble()
	assert.Empty(t, snap.Tree)
	assert.NotNil(t, snap.Budget)
	assert.Nil(t, snap.Summary)
	assert.Empty(t, snap.Effects)
	assert.Empty(t, snap.Warnings)
	assert.Equal(t, models.KeyDepartment, snap.DepartmentKey)
}

func TestAssembleIndicatorShapesAgree(t *testing.T) {
	objView, objKV, _ := setup(t)
	require.NoError(t, objKV.Set(models.KeyIndicator, `{"mode":"quant","quantIndicators":`+quantList+`,"qualitativeText":"정성"}`))

	arrView, arrKV, _ := setup(t)
	require.NoError(t, arrKV.Set(models.KeyIndicator, quantList))

	obj := objView.Assemble()
	arr := arrView.Assemble()
	require.Len(t, obj.Indicators, 1)
	assert.Equal(t, obj.Indicators, arr.Indicators)
	assert.Equal(t, "정성", obj.QualitativeText)
	assert.Equal(t, models.ModeQuant, obj.IndicatorMode)
}

func TestAssembleSplitsSimpleIndicators(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyIndicator, `[
		{"id":"i1","description":"만족도","amount":80,"type":"정성"},
		{"id":"q1","name":"참여자","unit":"명","baseline":10,"target":20},
		7
	]`))

	snap := v.Assemble()
	require.Len(t, snap.SimpleIndicators, 1)
	require.Len(t, snap.Indicators, 1)
	assert.Equal(t, "i1", snap.SimpleIndicators[0].ID)
	assert.Len(t, snap.Warnings, 1)
}

func TestAssembleToleratesBadSections(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyTree, `{not json`))
	require.NoError(t, kv.Set(models.KeyBudget, `[
		{"id":"b1","category":"운영비","name":"회의","unit":"회","amount":100},
		{"id":"b2","category":"기타","name":"비품","unit":"개","amount":50.5}
	]`))
	require.NoError(t, kv.Set(models.KeyRisks, `{"factor":"not a list"}`))
	require.NoError(t, kv.Set(models.KeyEffects, `["bare", {"id":"e1","text":"record"}, {"id":"e2"}]`))
	require.NoError(t, kv.Set(models.KeySummary, `{"background":"bg"}`))

	snap := v.Assemble()
	assert.Empty(t, snap.Tree)
	assert.Equal(t, 150.5, snap.BudgetTotal)
	assert.Empty(t, snap.Risks)
	assert.Equal(t, []string{"bare", "record"}, snap.Effects)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, "bg", snap.Summary.Background)
	assert.Len(t, snap.Warnings, 3)
}

func TestAssembleDepartmentsLegacyKey(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyDepartmentLegacy, `[{"name":"교육부","role":"협력"}]`))

	snap := v.Assemble()
	assert.Equal(t, models.KeyDepartmentLegacy, snap.DepartmentKey)
	require.Len(t, snap.Departments, 1)
	assert.Equal(t, "교육부", snap.Departments[0].Name)

	require.NoError(t, kv.Set(models.KeyDepartment, `[{"id":"d1","name":"환경부","role":"주관"}]`))
	snap = v.Assemble()
	assert.Equal(t, models.KeyDepartment, snap.DepartmentKey)
	assert.Equal(t, "환경부", snap.Departments[0].Name)
}

func TestAssembleTreeAndRisks(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyTree, `[{"id":"a","title":"목표","level":0},{"id":"b","title":"세부","level":1,"category":"효과"}]`))
	require.NoError(t, kv.Set(models.KeyRisks, `[{"id":"r1","factor":"지연","impact":3,"likelihood":4}]`))

	snap := v.Assemble()
	require.Len(t, snap.Tree, 2)
	assert.Equal(t, "1", snap.Tree[0].Number)
	assert.Equal(t, "2.1", snap.Tree[1].Number)
	require.Len(t, snap.Risks, 1)
	assert.Equal(t, 12, snap.Risks[0].Severity)
}

func TestDeleteReflectedInIndependentLoad(t *testing.T) {
	v, _, adapter := setup(t)

	store := section.NewStore(section.BudgetSchema(), adapter)
	a, _ := store.Add()
	b, _ := store.Add()
	require.NoError(t, store.Save())

	require.NoError(t, v.Delete(SectionBudget, 0, prompt.AutoConfirm(true)))

	fresh := section.NewStore(section.BudgetSchema(), adapter)
	_, err := fresh.Open()
	require.NoError(t, err)
	require.Len(t, fresh.Items(), 1)
	assert.Equal(t, b.ID, fresh.Items()[0].ID)
	assert.NotEqual(t, a.ID, fresh.Items()[0].ID)
}

func TestDeleteMapsDisplayIndexPastInvalidElements(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyEffects, `[{"id":"x"}, "first", "second"]`))

	require.NoError(t, v.Delete(SectionEffects, 1, prompt.AutoConfirm(true)))

	text, err := kv.Get(models.KeyEffects)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"x"}, "first"]`, text)
}

func TestDeleteInsideIndicatorDocument(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyIndicator, `{"mode":"qual","quantIndicators":`+quantList+`,"qualitativeText":"keep"}`))

	require.NoError(t, v.Delete(SectionIndicators, 0, prompt.AutoConfirm(true)))

	text, err := kv.Get(models.KeyIndicator)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"qual","quantIndicators":[],"qualitativeText":"keep"}`, text)
}

func TestDeleteGuards(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyRisks, `[{"id":"r1","factor":"지연","impact":3,"likelihood":4}]`))

	assert.ErrorIs(t, v.Delete(SectionRisks, 0, prompt.AutoConfirm(false)), section.ErrCancelled)
	assert.ErrorIs(t, v.Delete(SectionRisks, 1, prompt.AutoConfirm(true)), section.ErrInvalidIndex)
	assert.ErrorIs(t, v.Delete(SectionTree, 0, prompt.AutoConfirm(true)), section.ErrInvalidIndex)
	assert.ErrorIs(t, v.Delete("summary", 0, prompt.AutoConfirm(true)), ErrUnknownSection)

	text, _ := kv.Get(models.KeyRisks)
	assert.Contains(t, text, "r1")
}

func TestDeleteLegacyDepartments(t *testing.T) {
	v, kv, _ := setup(t)
	require.NoError(t, kv.Set(models.KeyDepartmentLegacy, `[{"name":"교육부","role":"협력"},{"name":"환경부","role":"주관"}]`))

	require.NoError(t, v.Delete(SectionDepartments, 0, prompt.AutoConfirm(true)))

	text, err := kv.Get(models.KeyDepartmentLegacy)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"환경부","role":"주관"}]`, text)
	_, err = kv.Get(models.KeyDepartment)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
