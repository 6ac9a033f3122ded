// ABOUTME: Schema definitions for each proposal section
// ABOUTME: Defaults, field setters, display rows and save policy per section

package section

import (
	"strconv"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/validate"
)

// Section names used by every surface.
const (
	NameTree        = "tree"
	NameBudget      = "budget"
	NameIndicators  = "indicators"
	NameQuant       = "quant"
	NameDepartments = "departments"
	NameRisks       = "risks"
	NameEffects     = "effects"
	NameSummary     = "summary"
)

// FormatNumber renders amounts without trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func BudgetSchema() Schema[models.BudgetItem] {
	return Schema[models.BudgetItem]{
		Name: NameBudget,
		Key:  models.KeyBudget,
		New: func([]models.BudgetItem) models.BudgetItem {
			return models.BudgetItem{
				ID:       models.NewID(),
				Category: models.CategoryLabor,
				Name:     "항목명",
				Unit:     "원",
			}
		},
		WithID: func(b models.BudgetItem, id string) models.BudgetItem { b.ID = id; return b },
		Set:    validate.SetBudgetField,
		Decode: validate.Budget,
		Fields: []string{"category", "name", "unit", "amount"},
		Row: func(b models.BudgetItem) []string {
			return []string{b.Category, b.Name, b.Unit, FormatNumber(b.Amount)}
		},
		Amount: func(b models.BudgetItem) float64 { return b.Amount },
		Policy: persist.FilterInvalid,
	}
}

// IndicatorSchema is the simple indicator page: a bare array at indicator-data.
func IndicatorSchema() Schema[models.IndicatorItem] {
	return Schema[models.IndicatorItem]{
		Name: NameIndicators,
		Key:  models.KeyIndicator,
		New: func([]models.IndicatorItem) models.IndicatorItem {
			return models.IndicatorItem{
				ID:          models.NewID(),
				Description: "지표 설명",
				Type:        models.IndicatorQuantitative,
			}
		},
		WithID: func(i models.IndicatorItem, id string) models.IndicatorItem { i.ID = id; return i },
		Set:    validate.SetIndicatorItemField,
		Decode: validate.IndicatorItem,
		Fields: []string{"description", "amount", "type"},
		Row: func(i models.IndicatorItem) []string {
			return []string{i.Description, FormatNumber(i.Amount), i.Type}
		},
		Amount: func(i models.IndicatorItem) float64 { return i.Amount },
		Policy: persist.FilterInvalid,
	}
}

// QuantSchema is the quantitative list embedded in the indicator document.
func QuantSchema() Schema[models.QuantIndicator] {
	return Schema[models.QuantIndicator]{
		Name: NameQuant,
		Key:  models.KeyIndicator,
		New: func([]models.QuantIndicator) models.QuantIndicator {
			return models.QuantIndicator{ID: models.NewID()}
		},
		WithID: func(q models.QuantIndicator, id string) models.QuantIndicator { q.ID = id; return q },
		Set:    validate.SetQuantIndicatorField,
		Decode: validate.QuantIndicator,
		Fields: []string{"name", "unit", "baseline", "target"},
		Row: func(q models.QuantIndicator) []string {
			return []string{q.Name, q.Unit, FormatNumber(q.Baseline), FormatNumber(q.Target)}
		},
		Policy: persist.WholeOrNothing,
	}
}

var roles = []string{models.RoleLead, models.RolePartner}

func sameDepartment(a, b models.Department) bool {
	return a.Name == b.Name && a.Role == b.Role
}

// DepartmentSchema reads the legacy departments key when department-data is empty.
func DepartmentSchema() Schema[models.Department] {
	return Schema[models.Department]{
		Name:         NameDepartments,
		Key:          models.KeyDepartment,
		FallbackKeys: []string{models.KeyDepartmentLegacy},
		// The default is the first reference pair not yet registered.
		New: func(existing []models.Department) models.Department {
			for _, name := range models.KnownDepartments {
				for _, role := range roles {
					d := models.Department{ID: models.NewID(), Name: name, Role: role}
					taken := false
					for _, e := range existing {
						if sameDepartment(d, e) {
							taken = true
							break
						}
					}
					if !taken {
						return d
					}
				}
			}
			return models.Department{ID: models.NewID(), Name: models.KnownDepartments[0], Role: models.RoleLead}
		},
		WithID: func(d models.Department, id string) models.Department { d.ID = id; return d },
		Set:    validate.SetDepartmentField,
		Decode: validate.Department,
		Fields: []string{"name", "role"},
		Row: func(d models.Department) []string {
			return []string{d.Name, d.Role}
		},
		Same:   sameDepartment,
		Policy: persist.FilterInvalid,
	}
}

// RiskSchema persists on every mutation.
func RiskSchema() Schema[models.Risk] {
	return Schema[models.Risk]{
		Name: NameRisks,
		Key:  models.KeyRisks,
		New: func([]models.Risk) models.Risk {
			return models.Risk{ID: models.NewID(), Impact: models.ScoreMin, Likelihood: models.ScoreMin}
		},
		WithID:  func(r models.Risk, id string) models.Risk { r.ID = id; return r },
		Set:     validate.SetRiskField,
		Decode:  validate.Risk,
		Fields:  []string{"factor", "impact", "likelihood"},
		Columns: []string{"factor", "impact", "likelihood", "severity"},
		Row: func(r models.Risk) []string {
			return []string{r.Factor, strconv.Itoa(r.Impact), strconv.Itoa(r.Likelihood), strconv.Itoa(r.Severity())}
		},
		Autosave: true,
		Policy:   persist.FilterInvalid,
	}
}

// EffectSchema persists on every mutation.
func EffectSchema() Schema[models.Effect] {
	return Schema[models.Effect]{
		Name: NameEffects,
		Key:  models.KeyEffects,
		New: func([]models.Effect) models.Effect {
			return models.Effect{ID: models.NewID(), Text: "기대 효과"}
		},
		WithID: func(e models.Effect, id string) models.Effect { e.ID = id; return e },
		Set:    validate.SetEffectField,
		Decode: validate.Effect,
		Fields: []string{"text"},
		Row: func(e models.Effect) []string {
			return []string{e.Text}
		},
		Autosave: true,
		Policy:   persist.FilterInvalid,
	}
}

// TreeSchema is the only reorderable section. A fresh tree has one node.
func TreeSchema() Schema[models.TreeNode] {
	return Schema[models.TreeNode]{
		Name: NameTree,
		Key:  models.KeyTree,
		New: func([]models.TreeNode) models.TreeNode {
			return models.TreeNode{ID: models.NewID(), Title: "새 항목"}
		},
		WithID: func(n models.TreeNode, id string) models.TreeNode { n.ID = id; return n },
		Set:    validate.SetTreeField,
		Decode: validate.TreeNode,
		Fields: []string{"title", "level", "category", "comment"},
		Row: func(n models.TreeNode) []string {
			return []string{n.Title, strconv.Itoa(n.Level), n.Category, n.Comment}
		},
		Reorderable: true,
		Policy:      persist.WholeOrNothing,
		Seed: func() []models.TreeNode {
			return []models.TreeNode{{ID: models.NewID(), Title: "초기 항목"}}
		},
	}
}
