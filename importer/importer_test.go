// ABOUTME: Tests for CSV parsing and section import
// ABOUTME: Covers all-or-nothing batches, per-row filtering, replace vs append

package importer

import (
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/storage"
)

func setup(t *testing.T) (*Importer, *section.Workspace, *storage.Memory, *prompt.Recorder) {
	t.Helper()
	kv := storage.NewMemory()
	notes := &prompt.Recorder{}
	ws := section.NewWorkspace(persist.New(kv, persist.WithNotifier(notes)))
	return New(ws), ws, kv, notes
}

func TestParseCSV(t *testing.T) {
	input := "\ufeff Name , unit,amount\n\n  회의비 , 회 ,12\n,,\nshort\n"
	rows, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	v, ok := rows[0].Get("name")
	assert.True(t, ok)
	assert.Equal(t, "회의비", v)
	assert.Equal(t, 3, rows[0].Line)

	_, ok = rows[1].Get("unit")
	assert.False(t, ok, "ragged rows leave missing cells absent")
}

func TestParseCSVEmpty(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestBudgetImportReplaces(t *testing.T) {
	im, ws, _, notes := setup(t)
	_, err := ws.Budget.Add()
	require.NoError(t, err)

	res, err := im.Import(section.NameBudget, strings.NewReader(
		"category,name,unit,amount\n운영비,회의,회,100\ntravel,,,50.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Accepted)
	assert.NotEqual(t, ulid.ULID{}, res.BatchID)

	items := ws.Budget.Items()
	require.Len(t, items, 2)
	assert.Equal(t, models.CategoryOperations, items[0].Category)
	assert.Equal(t, models.CategoryOther, items[1].Category)
	assert.Equal(t, "항목명", items[1].Name)
	assert.Equal(t, "원", items[1].Unit)
	assert.Equal(t, 150.5, ws.Budget.Total())
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Contains(t, notes.Infos(), "CSV 업로드 완료")
}

func TestBudgetImportMissingAmountAborts(t *testing.T) {
	im, ws, _, notes := setup(t)
	existing, err := ws.Budget.Add()
	require.NoError(t, err)

	_, err = im.Import(section.NameBudget, strings.NewReader(
		"category,name,unit,amount\n운영비,회의,회,100\n기타,비품,개,\n"))
	var ie *ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, BudgetColumns, ie.Columns)
	assert.Equal(t, 3, ie.Line)
	assert.Contains(t, ie.Error(), "category, name, unit, amount")

	assert.Equal(t, []models.BudgetItem{existing}, ws.Budget.Items())
	assert.Len(t, notes.Warnings(), 1)
}

func TestBudgetImportMissingColumn(t *testing.T) {
	im, _, _, _ := setup(t)
	_, err := im.Budget(strings.NewReader("name,unit,amount\n회의,회,1\n"))
	var ie *ImportError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Reason, "category")
}

func TestImportNoRows(t *testing.T) {
	im, ws, _, _ := setup(t)
	_, err := ws.Budget.Add()
	require.NoError(t, err)

	_, err = im.Import(section.NameBudget, strings.NewReader("category,name,unit,amount\n"))
	assert.ErrorIs(t, err, ErrNoRows)
	assert.Equal(t, 1, ws.Budget.Len())

	_, err = im.Import(section.NameEffects, strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestIndicatorImport(t *testing.T) {
	im, ws, _, _ := setup(t)

	_, err := im.Import(section.NameIndicators, strings.NewReader(
		"description,amount,type\n만족도,80,정성\n참여자,120,quantitative\n"))
	require.NoError(t, err)
	items := ws.Indicators.Items()
	require.Len(t, items, 2)
	assert.Equal(t, models.IndicatorQualitative, items[0].Type)
	assert.Equal(t, models.IndicatorQuantitative, items[1].Type)

	_, err = im.Import(section.NameIndicators, strings.NewReader(
		"description,amount,type\n만족도,80,mixed\n"))
	assert.Error(t, err)
	assert.Len(t, ws.Indicators.Items(), 2)
}

func TestIndicatorImportBlankDescriptionAborts(t *testing.T) {
	im, ws, _, _ := setup(t)
	existing, err := ws.Indicators.Add()
	require.NoError(t, err)

	_, err = im.Import(section.NameIndicators, strings.NewReader(
		"description,amount,type\n참여자,10,정량\n,5,정량\n"))
	var ie *ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Line)
	assert.Contains(t, ie.Reason, "description")
	assert.Equal(t, []models.IndicatorItem{existing}, ws.Indicators.Items())
}

func TestQuantImport(t *testing.T) {
	im, ws, _, _ := setup(t)

	_, err := im.Import(section.NameQuant, strings.NewReader(
		"name,unit,baseline,target\n참여자,명,10,20\n"))
	require.NoError(t, err)
	require.Equal(t, 1, ws.Indicator.Quant.Len())

	_, err = im.Import(section.NameQuant, strings.NewReader(
		"name,unit,baseline,target\n참여자,,10,20\n"))
	assert.Error(t, err)
	assert.Equal(t, 1, ws.Indicator.Quant.Len())
}

func TestRiskImportAppendsAndAutosaves(t *testing.T) {
	im, ws, kv, _ := setup(t)
	_, err := ws.Risks.Add()
	require.NoError(t, err)

	res, err := im.Import(section.NameRisks, strings.NewReader(
		"factor,impact,likelihood\n지연,3,4\n예산 초과,7,0.6\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Accepted)

	items := ws.Risks.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 12, items[1].Severity())
	assert.Equal(t, 5, items[2].Impact)
	assert.Equal(t, 1, items[2].Likelihood)

	fresh := section.NewStore(section.RiskSchema(), ws.Adapter)
	_, err = fresh.Open()
	require.NoError(t, err)
	assert.Equal(t, items, fresh.Items())

	_, err = im.Import(section.NameRisks, strings.NewReader("factor,impact,likelihood\n지연,high,4\n"))
	assert.Error(t, err)
	assert.Len(t, ws.Risks.Items(), 3)
	_, err = kv.Get(models.KeyRisks)
	assert.NoError(t, err)
}

func TestEffectImportFiltersRows(t *testing.T) {
	im, ws, _, _ := setup(t)
	_, _, err := section.AddEffect(ws.Effects, "old")
	require.NoError(t, err)

	res, err := im.Import(section.NameEffects, strings.NewReader(" ,ignored\n지역 경제 활성화\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Accepted)
	assert.Equal(t, 1, res.Dropped)

	items := ws.Effects.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "지역 경제 활성화", items[0].Text)
}

func TestEffectLinesSkipsHeader(t *testing.T) {
	items, dropped := EffectLines([][]string{{"Text"}, {"a"}, {""}, {"b", "extra"}})
	assert.Equal(t, 1, dropped)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Text)
	assert.Equal(t, "b", items[1].Text)
}

func TestImportUnsupportedSection(t *testing.T) {
	im, _, _, _ := setup(t)
	_, err := im.Import(section.NameTree, strings.NewReader("title\nx\n"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestBatchIDsAreOrdered(t *testing.T) {
	im, _, _, _ := setup(t)
	a := im.result("x", 0, 0)
	b := im.result("x", 0, 0)
	assert.Equal(t, -1, a.BatchID.Compare(b.BatchID))
}
