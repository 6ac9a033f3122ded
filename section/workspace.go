// ABOUTME: Every section store of one proposal behind a single handle
// ABOUTME: Editor gives surfaces type-erased access to collections by name

package section

import (
	"errors"
	"fmt"
	"sort"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
)

// Editor is the collection API shared by every list section, used by
// surfaces that pick a section by name.
type Editor interface {
	Name() string
	Key() string
	Fields() []string
	Columns() []string
	Rows() [][]string
	Len() int
	IDAt(index int) (string, bool)
	AddDefault() (string, error)
	Update(id, field, value string) error
	Remove(id string) (bool, error)
	Reorder(from, to int) error
	Reorderable() bool
	Autosave() bool
	HasTotal() bool
	Total() float64
	Save() error
	Load() (persist.LoadReport, error)
	Open() (persist.LoadReport, error)
}

var ErrUnknownSection = errors.New("unknown section")

// Workspace owns one store per section over a shared adapter.
type Workspace struct {
	Adapter     *persist.Adapter
	Tree        *Store[models.TreeNode]
	Budget      *Store[models.BudgetItem]
	Indicators  *Store[models.IndicatorItem]
	Indicator   *IndicatorStore
	Departments *Store[models.Department]
	Risks       *Store[models.Risk]
	Effects     *Store[models.Effect]
	Summary     *SummaryStore
}

func NewWorkspace(adapter *persist.Adapter) *Workspace {
	return &Workspace{
		Adapter:     adapter,
		Tree:        NewStore(TreeSchema(), adapter),
		Budget:      NewStore(BudgetSchema(), adapter),
		Indicators:  NewStore(IndicatorSchema(), adapter),
		Indicator:   NewIndicatorStore(adapter),
		Departments: NewStore(DepartmentSchema(), adapter),
		Risks:       NewStore(RiskSchema(), adapter),
		Effects:     NewStore(EffectSchema(), adapter),
		Summary:     NewSummaryStore(adapter),
	}
}

// Open restores every section from storage. Absent sections keep their
// initial content. indicator-data holds one of two shapes, so only the
// matching editor is restored.
func (w *Workspace) Open() {
	logger := w.Adapter.Logger()
	for _, e := range w.Editors() {
		if _, err := e.Open(); err != nil && !errors.Is(err, persist.ErrNoData) {
			if e.Key() == models.KeyIndicator && errors.Is(err, persist.ErrCorrupt) {
				logger.Debug("indicator-data has the other shape", "section", e.Name())
				continue
			}
			logger.Warn("section not restored", "section", e.Name(), "err", err)
		}
	}
	if err := w.Summary.Open(); err != nil && !errors.Is(err, persist.ErrNoData) {
		logger.Warn("section not restored", "section", NameSummary, "err", err)
	}
}

// Editors returns the list sections in navigation order.
func (w *Workspace) Editors() []Editor {
	return []Editor{w.Tree, w.Budget, w.Departments, w.Indicators, w.Indicator.Quant, w.Risks, w.Effects}
}

// Editor returns the list section called name.
func (w *Workspace) Editor(name string) (Editor, error) {
	for _, e := range w.Editors() {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (known: %v)", ErrUnknownSection, name, Names())
}

// Names lists every section name, summary included.
func Names() []string {
	names := []string{NameTree, NameBudget, NameDepartments, NameIndicators, NameQuant, NameRisks, NameEffects, NameSummary}
	sort.Strings(names)
	return names
}
