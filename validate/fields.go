// ABOUTME: Field setters used when a single record field is edited
// ABOUTME: Values arrive as text and are coerced per schema before assignment
package validate

import (
	"fmt"
	"strings"

	"github.com/harperreed/propkit/models"
)

func unknown(schema, field string) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownField, field, schema)
}

func SetBudgetField(b *models.BudgetItem, field, value string) error {
	switch field {
	case "category":
		b.Category = BudgetCategory(value)
	case "name":
		b.Name = value
	case "unit":
		b.Unit = value
	case "amount":
		b.Amount = Number(value)
	default:
		return unknown("budget", field)
	}
	return nil
}

func SetQuantIndicatorField(q *models.QuantIndicator, field, value string) error {
	switch field {
	case "name":
		q.Name = value
	case "unit":
		q.Unit = value
	case "baseline":
		q.Baseline = Number(value)
	case "target":
		q.Target = Number(value)
	default:
		return unknown("indicator", field)
	}
	return nil
}

func SetIndicatorItemField(i *models.IndicatorItem, field, value string) error {
	switch field {
	case "description":
		i.Description = value
	case "amount":
		i.Amount = Number(value)
	case "type":
		i.Type = IndicatorType(value)
	default:
		return unknown("indicator", field)
	}
	return nil
}

// SetDepartmentField rejects blank names and unknown roles instead of coercing them.
func SetDepartmentField(d *models.Department, field, value string) error {
	switch field {
	case "name":
		name := strings.TrimSpace(value)
		if name == "" {
			return fmt.Errorf("%w: department name is required", ErrInvalidValue)
		}
		d.Name = name
	case "role":
		role, ok := models.ParseRole(value)
		if !ok {
			return fmt.Errorf("%w: role %q", ErrInvalidValue, value)
		}
		d.Role = role
	default:
		return unknown("department", field)
	}
	return nil
}

func SetRiskField(r *models.Risk, field, value string) error {
	switch field {
	case "factor":
		r.Factor = value
	case "impact":
		r.Impact = Score(value)
	case "likelihood":
		r.Likelihood = Score(value)
	default:
		return unknown("risk", field)
	}
	return nil
}

func SetEffectField(e *models.Effect, field, value string) error {
	if field != "text" {
		return unknown("effect", field)
	}
	e.Text = value
	return nil
}

func SetTreeField(n *models.TreeNode, field, value string) error {
	switch field {
	case "title":
		n.Title = value
	case "level":
		n.Level = Level(value)
	case "category":
		n.Category = TreeCategory(value)
	case "comment":
		n.Comment = value
	default:
		return unknown("tree", field)
	}
	return nil
}

func SetSummaryField(s *models.Summary, field, value string) error {
	switch field {
	case "background":
		s.Background = value
	case "objective":
		s.Objective = value
	case "strategy":
		s.Strategy = value
	case "expectedEffect", "expected_effect", "expected-effect":
		s.ExpectedEffect = value
	default:
		return unknown("summary", field)
	}
	return nil
}
