// ABOUTME: Deletion of a displayed output record from its persisted document
// ABOUTME: Maps display positions back to raw array positions under the key lock

package output

import (
	"errors"
	"fmt"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/validate"
)

// locator finds the displayed elements inside a raw document and can put an
// edited element list back into it.
type locator struct {
	key    string
	locate func(raw interface{}) (elems []interface{}, positions []int, rebuild func([]interface{}) interface{}, err error)
}

func plain(raw interface{}) ([]interface{}, func([]interface{}) interface{}, error) {
	elems, ok := raw.([]interface{})
	if !ok {
		return nil, nil, fmt.Errorf("%w: not an array", persist.ErrCorrupt)
	}
	return elems, func(next []interface{}) interface{} { return next }, nil
}

func arrayOf[T any](decode func(interface{}) (T, error)) func(interface{}) ([]interface{}, []int, func([]interface{}) interface{}, error) {
	return func(raw interface{}) ([]interface{}, []int, func([]interface{}) interface{}, error) {
		elems, rebuild, err := plain(raw)
		if err != nil {
			return nil, nil, nil, err
		}
		_, positions := collect(elems, decode)
		return elems, positions, rebuild, nil
	}
}

func quantIndicators(raw interface{}) ([]interface{}, []int, func([]interface{}) interface{}, error) {
	if doc, ok := raw.(map[string]interface{}); ok {
		elems, ok := doc["quantIndicators"].([]interface{})
		if !ok {
			return nil, nil, nil, fmt.Errorf("%w: quantIndicators is not an array", persist.ErrCorrupt)
		}
		_, positions := collect(elems, validate.QuantIndicator)
		return elems, positions, func(next []interface{}) interface{} {
			doc["quantIndicators"] = next
			return doc
		}, nil
	}
	return arrayOf(validate.QuantIndicator)(raw)
}

func (v *View) locator(name string) (locator, error) {
	switch name {
	case SectionTree:
		return locator{models.KeyTree, arrayOf(validate.TreeNode)}, nil
	case SectionBudget:
		return locator{models.KeyBudget, arrayOf(validate.Budget)}, nil
	case SectionIndicators:
		return locator{models.KeyIndicator, quantIndicators}, nil
	case SectionSimpleIndicators:
		return locator{models.KeyIndicator, arrayOf(simpleIndicator)}, nil
	case SectionDepartments:
		return locator{v.departmentKey(), arrayOf(validate.Department)}, nil
	case SectionRisks:
		return locator{models.KeyRisks, arrayOf(validate.Risk)}, nil
	case SectionEffects:
		return locator{models.KeyEffects, arrayOf(validate.EffectText)}, nil
	}
	return locator{}, fmt.Errorf("%w: %s (known: %v)", ErrUnknownSection, name, DeletableSections)
}

// Delete removes the record displayed at index in the named section from
// that section's persisted document, after confirmation. Elements the view
// could not display are left untouched.
func (v *View) Delete(name string, index int, confirm prompt.Confirmer) error {
	loc, err := v.locator(name)
	if err != nil {
		return err
	}

	raw, err := v.adapter.Read(loc.key)
	if err != nil {
		if errors.Is(err, persist.ErrNoData) {
			return fmt.Errorf("%w: %s has no records", section.ErrInvalidIndex, name)
		}
		return err
	}
	_, positions, _, err := loc.locate(raw)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(positions) {
		return fmt.Errorf("%w: %d of %d", section.ErrInvalidIndex, index, len(positions))
	}

	if !confirm.Confirm("정말 삭제하시겠습니까?") {
		return section.ErrCancelled
	}

	// Re-map under the key lock in case the document changed while asking.
	return v.adapter.Mutate(loc.key, func(raw interface{}) (interface{}, error) {
		elems, positions, rebuild, err := loc.locate(raw)
		if err != nil {
			return nil, err
		}
		if index >= len(positions) {
			return nil, fmt.Errorf("%w: %d of %d", section.ErrInvalidIndex, index, len(positions))
		}
		at := positions[index]
		next := make([]interface{}, 0, len(elems)-1)
		next = append(next, elems[:at]...)
		next = append(next, elems[at+1:]...)
		return rebuild(next), nil
	})
}
