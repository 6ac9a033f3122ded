// ABOUTME: Summary and indicator document CLI commands
// ABOUTME: Edits the singleton summary and the indicator editor's mode and text
package cli

import (
	"fmt"
	"strings"

	"github.com/harperreed/propkit/section"
)

// SummaryCommand handles `propkit summary <show|set|clear>`.
func SummaryCommand(app *App, args []string) error {
	action := "show"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}
	store := app.Workspace.Summary

	switch action {
	case "show":
		s := store.Get()
		values := []string{s.Background, s.Objective, s.Strategy, s.ExpectedEffect}
		rows := make([][]string, len(section.SummaryFields))
		for i, field := range section.SummaryFields {
			rows[i] = []string{field, values[i]}
		}
		app.table([]string{"field", "value"}, rows)
		return nil
	case "set":
		if len(args) == 0 {
			return fmt.Errorf("usage: propkit summary set field=value ...")
		}
		for _, arg := range args {
			field, value, err := fieldValue(arg)
			if err != nil {
				return err
			}
			if err := store.Set(field, value); err != nil {
				return fmt.Errorf("failed to set %s: %w", field, err)
			}
		}
		if err := store.Save(); err != nil {
			return err
		}
		app.printf("✓ Summary saved\n")
		return nil
	case "clear":
		cleared, err := store.Clear(app.Confirm)
		if err != nil {
			return err
		}
		if !cleared {
			app.printf("Summary unchanged\n")
			return nil
		}
		app.printf("✓ Summary cleared\n")
		return nil
	default:
		return fmt.Errorf("unknown summary action: %s (want show, set or clear)", action)
	}
}

// IndicatorCommand handles `propkit indicator <show|mode|text>`.
func IndicatorCommand(app *App, args []string) error {
	action := "show"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}
	doc := app.Workspace.Indicator

	switch action {
	case "show":
		app.printf("Mode: %s\n", doc.Mode())
		app.printf("Qualitative: %s\n\n", doc.Text())
		return listSection(app, doc.Quant)
	case "mode":
		if len(args) != 1 {
			return fmt.Errorf("usage: propkit indicator mode <quant|qual>")
		}
		if !doc.SetMode(args[0]) {
			return fmt.Errorf("%w: mode %q", section.ErrInvalidValue, args[0])
		}
	case "text":
		doc.SetText(strings.Join(args, " "))
	default:
		return fmt.Errorf("unknown indicator action: %s (want show, mode or text)", action)
	}

	if err := doc.Save(); err != nil {
		return err
	}
	app.printf("✓ Indicator document saved (mode: %s)\n", doc.Mode())
	return nil
}
