// ABOUTME: Read-only aggregate of every persisted proposal section
// ABOUTME: Tolerant assembly with warnings plus deletion straight from storage

package output

import (
	"errors"
	"fmt"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/validate"
)

// Sections whose displayed records can be deleted.
const (
	SectionTree             = section.NameTree
	SectionBudget           = section.NameBudget
	SectionIndicators       = "indicators"
	SectionSimpleIndicators = "simple-indicators"
	SectionDepartments      = section.NameDepartments
	SectionRisks            = section.NameRisks
	SectionEffects          = section.NameEffects
)

// DeletableSections lists the sections Delete accepts.
var DeletableSections = []string{
	SectionTree, SectionBudget, SectionIndicators, SectionSimpleIndicators,
	SectionDepartments, SectionRisks, SectionEffects,
}

var ErrUnknownSection = errors.New("unknown output section")

type TreeRow struct {
	Number string          `json:"number"`
	Node   models.TreeNode `json:"node"`
}

type RiskRow struct {
	ID         string `json:"id"`
	Factor     string `json:"factor"`
	Impact     int    `json:"impact"`
	Likelihood int    `json:"likelihood"`
	Severity   int    `json:"severity"`
}

// Snapshot is everything the output page shows.
type Snapshot struct {
	Tree             []TreeRow               `json:"tree"`
	Budget           []models.BudgetItem     `json:"budget"`
	BudgetTotal      float64                 `json:"budgetTotal"`
	IndicatorMode    string                  `json:"indicatorMode,omitempty"`
	Indicators       []models.QuantIndicator `json:"indicators"`
	QualitativeText  string                  `json:"qualitativeText"`
	SimpleIndicators []models.IndicatorItem  `json:"simpleIndicators"`
	Summary          *models.Summary         `json:"summary"`
	Departments      []models.Department     `json:"departments"`
	DepartmentKey    string                  `json:"departmentKey,omitempty"`
	Risks            []RiskRow               `json:"risks"`
	Effects          []string                `json:"effects"`
	Warnings         []string                `json:"warnings,omitempty"`
}

// View reads persisted state only; it never consults a live store.
type View struct {
	adapter *persist.Adapter
}

func New(adapter *persist.Adapter) *View {
	return &View{adapter: adapter}
}

// collect decodes every element it can and remembers where each came from.
func collect[T any](elems []interface{}, decode func(interface{}) (T, error)) ([]T, []int) {
	items := make([]T, 0, len(elems))
	positions := make([]int, 0, len(elems))
	for i, elem := range elems {
		v, err := decode(elem)
		if err != nil {
			continue
		}
		items = append(items, v)
		positions = append(positions, i)
	}
	return items, positions
}

type assembler struct {
	adapter  *persist.Adapter
	warnings []string
}

func (a *assembler) warn(key, format string, args ...interface{}) {
	a.warnings = append(a.warnings, models.SectionLabel(key)+": "+fmt.Sprintf(format, args...))
}

// read returns the raw document, or nil with a warning when it is unreadable.
func (a *assembler) read(key string) interface{} {
	raw, err := a.adapter.Read(key)
	if err == nil {
		return raw
	}
	if !errors.Is(err, persist.ErrNoData) {
		a.warn(key, "저장 형식이 올바르지 않습니다")
	}
	return nil
}

func (a *assembler) array(key string, raw interface{}) []interface{} {
	if raw == nil {
		return nil
	}
	elems, ok := raw.([]interface{})
	if !ok {
		a.warn(key, "목록 형식이 아닙니다")
		return nil
	}
	return elems
}

func (a *assembler) dropped(key string, total, shown int) {
	if total > shown {
		a.warn(key, "%d개 항목을 표시하지 못했습니다", total-shown)
	}
}

func list[T any](a *assembler, key string, decode func(interface{}) (T, error)) []T {
	elems := a.array(key, a.read(key))
	items, _ := collect(elems, decode)
	a.dropped(key, len(elems), len(items))
	return items
}

// Assemble builds the snapshot. Missing or malformed sections come back
// empty with a warning; it never fails.
func (v *View) Assemble() Snapshot {
	a := &assembler{adapter: v.adapter}
	var snap Snapshot

	for i, n := range list(a, models.KeyTree, validate.TreeNode) {
		snap.Tree = append(snap.Tree, TreeRow{Number: models.NodeNumber(i, n.Level), Node: n})
	}

	snap.Budget = list(a, models.KeyBudget, validate.Budget)
	for _, b := range snap.Budget {
		snap.BudgetTotal += validate.Finite(b.Amount)
	}

	v.indicators(a, &snap)

	if raw := a.read(models.KeySummary); raw != nil {
		if s, err := validate.Summary(raw); err == nil {
			snap.Summary = &s
		} else {
			a.warn(models.KeySummary, "저장 형식이 올바르지 않습니다")
		}
	}

	snap.DepartmentKey = v.departmentKey()
	snap.Departments = list(a, snap.DepartmentKey, validate.Department)

	for _, r := range list(a, models.KeyRisks, validate.Risk) {
		snap.Risks = append(snap.Risks, RiskRow{
			ID: r.ID, Factor: r.Factor, Impact: r.Impact, Likelihood: r.Likelihood, Severity: r.Severity(),
		})
	}

	snap.Effects = list(a, models.KeyEffects, validate.EffectText)

	snap.Warnings = a.warnings
	normalize(&snap)
	return snap
}

// indicators accepts both shapes of indicator-data.
func (v *View) indicators(a *assembler, snap *Snapshot) {
	raw := a.read(models.KeyIndicator)
	switch doc := raw.(type) {
	case nil:
	case map[string]interface{}:
		if m, ok := doc["mode"].(string); ok {
			snap.IndicatorMode, _ = models.ParseMode(m)
		}
		if t, ok := doc["qualitativeText"].(string); ok {
			snap.QualitativeText = t
		}
		elems := a.array(models.KeyIndicator, doc["quantIndicators"])
		snap.Indicators, _ = collect(elems, validate.QuantIndicator)
		a.dropped(models.KeyIndicator, len(elems), len(snap.Indicators))
	case []interface{}:
		quant, quantAt := collect(doc, validate.QuantIndicator)
		simple, simpleAt := collect(doc, simpleIndicator)
		snap.Indicators = quant
		snap.SimpleIndicators = simple
		a.dropped(models.KeyIndicator, len(doc), len(quantAt)+len(simpleAt))
	default:
		a.warn(models.KeyIndicator, "저장 형식이 올바르지 않습니다")
	}
}

// simpleIndicator decodes simple-page elements that are not quant-shaped.
func simpleIndicator(raw interface{}) (models.IndicatorItem, error) {
	if _, err := validate.QuantIndicator(raw); err == nil {
		return models.IndicatorItem{}, errors.New("quantitative indicator")
	}
	return validate.IndicatorItem(raw)
}

// departmentKey is department-data unless only the legacy key holds data.
func (v *View) departmentKey() string {
	if _, err := v.adapter.Read(models.KeyDepartment); errors.Is(err, persist.ErrNoData) {
		if _, err := v.adapter.Read(models.KeyDepartmentLegacy); !errors.Is(err, persist.ErrNoData) {
			return models.KeyDepartmentLegacy
		}
	}
	return models.KeyDepartment
}

// normalize replaces nil slices so JSON output always has arrays.
func normalize(s *Snapshot) {
	if s.Tree == nil {
		s.Tree = []TreeRow{}
	}
	if s.Budget == nil {
		s.Budget = []models.BudgetItem{}
	}
	if s.Indicators == nil {
		s.Indicators = []models.QuantIndicator{}
	}
	if s.SimpleIndicators == nil {
		s.SimpleIndicators = []models.IndicatorItem{}
	}
	if s.Departments == nil {
		s.Departments = []models.Department{}
	}
	if s.Risks == nil {
		s.Risks = []RiskRow{}
	}
	if s.Effects == nil {
		s.Effects = []string{}
	}
}
