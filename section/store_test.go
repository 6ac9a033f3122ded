// ABOUTME: Tests for section stores
// ABOUTME: Covers defaults, coercion on edit, save policies, reordering and load policies

package section

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/storage"
)

type fixture struct {
	kv      *storage.Memory
	adapter *persist.Adapter
	notes   *prompt.Recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	kv := storage.NewMemory()
	notes := &prompt.Recorder{}
	return fixture{kv: kv, adapter: persist.New(kv, persist.WithNotifier(notes)), notes: notes}
}

type brokenKV struct{ *storage.Memory }

func (brokenKV) Set(string, string) error { return errors.New("quota exceeded") }

// failingKV fails writes only while fail is set.
type failingKV struct {
	*storage.Memory
	fail bool
}

func (f *failingKV) Set(key, value string) error {
	if f.fail {
		return errors.New("quota exceeded")
	}
	return f.Memory.Set(key, value)
}

func TestBudgetAddDefaults(t *testing.T) {
	f := newFixture(t)
	s := NewStore(BudgetSchema(), f.adapter)

	b, err := s.Add()
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.CategoryLabor, b.Category)
	assert.Equal(t, "항목명", b.Name)
	assert.Equal(t, "원", b.Unit)
	assert.Equal(t, 0.0, b.Amount)

	_, err = f.kv.Get(models.KeyBudget)
	assert.ErrorIs(t, err, storage.ErrNotFound, "budget is saved explicitly")
}

func TestRoundTripEverySection(t *testing.T) {
	f := newFixture(t)
	w := NewWorkspace(f.adapter)

	for _, e := range w.Editors() {
		if e.Name() == NameIndicators {
			continue // shares indicator-data with the quant editor
		}
		t.Run(e.Name(), func(t *testing.T) {
			_, err := e.AddDefault()
			require.NoError(t, err)
			before := e.Rows()

			require.NoError(t, e.Save())
			_, err = e.Load()
			require.NoError(t, err)
			assert.Equal(t, before, e.Rows())
		})
	}

	simple := NewStore(IndicatorSchema(), persist.New(storage.NewMemory()))
	_, err := simple.Add()
	require.NoError(t, err)
	before := simple.Items()
	require.NoError(t, simple.Save())
	_, err = simple.Load()
	require.NoError(t, err)
	assert.Equal(t, before, simple.Items())
}

func TestUpdateCoercesAndIgnoresStaleIDs(t *testing.T) {
	f := newFixture(t)
	s := NewStore(BudgetSchema(), f.adapter)
	b, err := s.Add()
	require.NoError(t, err)

	require.NoError(t, s.Update(b.ID, "amount", "abc"))
	got, _ := s.Get(b.ID)
	assert.Equal(t, 0.0, got.Amount)

	require.NoError(t, s.Update(b.ID, "amount", "1200.5"))
	assert.Equal(t, 1200.5, s.Total())

	before := s.Items()
	require.NoError(t, s.Update("missing", "amount", "99"))
	assert.Equal(t, before, s.Items())

	assert.ErrorIs(t, s.Update(b.ID, "colour", "red"), ErrUnknownField)
	removed, err := s.Remove("missing")
	require.NoError(t, err)
	assert.False(t, removed)
	removed, err = s.Remove(b.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, s.Len())
}

func TestTotal(t *testing.T) {
	f := newFixture(t)
	s := NewStore(IndicatorSchema(), f.adapter)
	require.NoError(t, s.Replace([]models.IndicatorItem{
		{ID: "a", Description: "x", Amount: 10, Type: models.IndicatorQuantitative},
		{ID: "b", Description: "y", Amount: 2.5, Type: models.IndicatorQualitative},
	}))
	assert.Equal(t, 12.5, s.Total())
	assert.True(t, s.HasTotal())

	risks := NewStore(RiskSchema(), f.adapter)
	assert.False(t, risks.HasTotal())
	assert.Equal(t, 0.0, risks.Total())
}

func TestRiskAutosaves(t *testing.T) {
	f := newFixture(t)
	s := NewStore(RiskSchema(), f.adapter)

	r, err := s.Add()
	require.NoError(t, err)
	require.NoError(t, s.Update(r.ID, "impact", "4"))
	require.NoError(t, s.Update(r.ID, "likelihood", "3"))

	fresh := NewStore(RiskSchema(), f.adapter)
	_, err = fresh.Open()
	require.NoError(t, err)
	require.Len(t, fresh.Items(), 1)
	assert.Equal(t, 12, fresh.Items()[0].Severity())
	assert.Empty(t, f.notes.Infos(), "autosave is silent")
}

func TestSaveFailureKeepsState(t *testing.T) {
	notes := &prompt.Recorder{}
	adapter := persist.New(brokenKV{storage.NewMemory()}, persist.WithNotifier(notes))
	s := NewStore(RiskSchema(), adapter)

	r, err := s.Add()
	assert.ErrorIs(t, err, persist.ErrSaveFailed)
	assert.Equal(t, []models.Risk{r}, s.Items())
	assert.NotEmpty(t, notes.Warnings())
}

func TestRemoveReportsAutosaveFailure(t *testing.T) {
	kv := &failingKV{Memory: storage.NewMemory()}
	ws := NewWorkspace(persist.New(kv))
	r, err := ws.Risks.Add()
	require.NoError(t, err)

	kv.fail = true
	removed, err := ws.Risks.Remove(r.ID)
	assert.True(t, removed)
	assert.ErrorIs(t, err, persist.ErrSaveFailed)
	assert.Equal(t, 0, ws.Risks.Len())

	raw, getErr := kv.Get(models.KeyRisks)
	require.NoError(t, getErr)
	assert.Contains(t, raw, r.ID, "stored document still holds the record")

	kv.fail = false
	other, err := ws.Risks.Add()
	require.NoError(t, err)
	kv.fail = true
	assert.ErrorIs(t, ws.RemoveRecord(NameRisks, other.ID), persist.ErrSaveFailed)
}

func TestTreeSeedAndReorder(t *testing.T) {
	f := newFixture(t)
	s := NewStore(TreeSchema(), f.adapter)

	require.Len(t, s.Items(), 1)
	assert.Equal(t, "초기 항목", s.Items()[0].Title)

	b, _ := s.Add()
	c, _ := s.Add()
	first := s.Items()[0]
	require.NoError(t, s.Reorder(2, 0))
	ids := []string{}
	for _, n := range s.Items() {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{c.ID, first.ID, b.ID}, ids)

	require.NoError(t, s.Reorder(0, 2))
	assert.Equal(t, c.ID, s.Items()[2].ID)

	assert.ErrorIs(t, s.Reorder(0, 3), ErrInvalidIndex)
	assert.ErrorIs(t, s.Reorder(-1, 0), ErrInvalidIndex)

	budget := NewStore(BudgetSchema(), f.adapter)
	assert.ErrorIs(t, budget.Reorder(0, 0), ErrNotReorderable)
}

func TestTreeLoadIsWholeOrNothing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.kv.Set(models.KeyTree, `[{"id":"a","title":"ok","level":0},{"id":"b","level":1}]`))

	s := NewStore(TreeSchema(), f.adapter)
	before := s.Items()
	_, err := s.Load()
	assert.ErrorIs(t, err, persist.ErrCorrupt)
	assert.Equal(t, before, s.Items())
	assert.Contains(t, f.notes.Warnings(), msgLoadError)
}

func TestFilterLoadDropsInvalid(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.kv.Set(models.KeyBudget, `[
		{"id":"a","category":"운영비","name":"회의","unit":"회","amount":3},
		{"id":"b","category":"운영비","name":"회의","unit":"회"},
		"junk"
	]`))

	s := NewStore(BudgetSchema(), f.adapter)
	report, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 2, report.Dropped)
	assert.Equal(t, "a", s.Items()[0].ID)
}

func TestLoadNonArrayLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	s := NewStore(EffectSchema(), f.adapter)
	_, _, err := AddEffect(s, "keep me")
	require.NoError(t, err)
	require.NoError(t, f.kv.Set(models.KeyEffects, `{"text":"not a list"}`))

	_, err = s.Load()
	assert.ErrorIs(t, err, persist.ErrCorrupt)
	require.Len(t, s.Items(), 1)
	assert.Equal(t, "keep me", s.Items()[0].Text)
}

func TestLoadWithNothingSaved(t *testing.T) {
	f := newFixture(t)
	s := NewStore(BudgetSchema(), f.adapter)

	_, err := s.Load()
	assert.ErrorIs(t, err, persist.ErrNoData)
	assert.Contains(t, f.notes.Infos(), msgNoData)
}
