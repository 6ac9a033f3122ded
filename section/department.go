// ABOUTME: Input-driven adds for departments and effects
// ABOUTME: Name checks, reference-list confirmation and blank-text handling

package section

import (
	"fmt"
	"strings"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/prompt"
)

// AddDepartment registers name with role. Names missing from the reference
// list need confirmation; a repeated (name, role) pair is rejected.
func AddDepartment(s *Store[models.Department], name, role string, confirm prompt.Confirmer) (models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Department{}, ErrNameRequired
	}
	normalized, ok := models.ParseRole(role)
	if !ok {
		return models.Department{}, fmt.Errorf("%w: role %q", ErrInvalidValue, role)
	}
	if !models.IsKnownDepartment(name) {
		question := fmt.Sprintf("%q는 목록에 없는 부처입니다. 계속 추가할까요?", name)
		if !confirm.Confirm(question) {
			return models.Department{}, ErrCancelled
		}
	}
	return s.Insert(models.Department{Name: name, Role: normalized})
}

// AddEffect appends trimmed text. Blank text adds nothing and reports false.
func AddEffect(s *Store[models.Effect], text string) (models.Effect, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Effect{}, false, nil
	}
	e, err := s.Insert(models.Effect{Text: text})
	return e, true, err
}
