// ABOUTME: Whole-record edits by section name for surfaces without a live session
// ABOUTME: Each call validates its fields, applies them and persists the section

package section

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/prompt"
)

var ErrNoRecord = errors.New("no such record")

// Commit persists e unless it already saved itself on mutation.
func Commit(e Editor) error {
	if e.Autosave() {
		return nil
	}
	return e.Save()
}

func checkFields(e Editor, fields map[string]string) error {
	for field := range fields {
		if !contains(e.Fields(), field) {
			return fmt.Errorf("%w %q for %s (fields: %s)", ErrUnknownField, field, e.Name(), strings.Join(e.Fields(), ", "))
		}
	}
	return nil
}

func hasID(e Editor, id string) bool {
	for _, row := range e.Rows() {
		if row[0] == id {
			return true
		}
	}
	return false
}

// AddRecord appends a record to the named section with fields applied and
// returns its id. Departments and effects use their validated add paths.
func (w *Workspace) AddRecord(name string, fields map[string]string, confirm prompt.Confirmer) (string, error) {
	e, err := w.Editor(name)
	if err != nil {
		return "", err
	}
	if err := checkFields(e, fields); err != nil {
		return "", err
	}

	rest := make(map[string]string, len(fields))
	for k, v := range fields {
		rest[k] = v
	}

	var id string
	switch name {
	case NameDepartments:
		if dept, ok := rest["name"]; ok {
			role := rest["role"]
			if role == "" {
				role = models.RoleLead
			}
			d, err := AddDepartment(w.Departments, dept, role, confirm)
			if err != nil {
				return "", err
			}
			delete(rest, "name")
			delete(rest, "role")
			id = d.ID
		}
	case NameEffects:
		if text, ok := rest["text"]; ok {
			eff, added, err := AddEffect(w.Effects, text)
			if err != nil {
				return "", err
			}
			if !added {
				return "", fmt.Errorf("%w: effect text is empty", ErrInvalidValue)
			}
			return eff.ID, nil
		}
	}

	if id == "" {
		if id, err = e.AddDefault(); err != nil {
			return "", err
		}
	}
	if err := applyFields(e, id, rest); err != nil {
		_, _ = e.Remove(id)
		return "", err
	}
	return id, Commit(e)
}

// UpdateRecord sets fields on an existing record and persists the section.
func (w *Workspace) UpdateRecord(name, id string, fields map[string]string) error {
	e, err := w.Editor(name)
	if err != nil {
		return err
	}
	if err := checkFields(e, fields); err != nil {
		return err
	}
	if !hasID(e, id) {
		return fmt.Errorf("%w: %s %s", ErrNoRecord, name, id)
	}
	if err := applyFields(e, id, fields); err != nil {
		return err
	}
	return Commit(e)
}

// RemoveRecord deletes a record and persists the section.
func (w *Workspace) RemoveRecord(name, id string) error {
	e, err := w.Editor(name)
	if err != nil {
		return err
	}
	removed, err := e.Remove(id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s %s", ErrNoRecord, name, id)
	}
	return Commit(e)
}

// applyFields sets fields in display order so results do not depend on map order.
func applyFields(e Editor, id string, fields map[string]string) error {
	for _, field := range e.Fields() {
		value, ok := fields[field]
		if !ok {
			continue
		}
		if err := e.Update(id, field, value); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
