// ABOUTME: Section CLI commands
// ABOUTME: list, add, set, rm, move, import and total for every list section
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/section"
)

// SectionCommand dispatches `propkit <section> <action> ...`.
func SectionCommand(app *App, name string, args []string) error {
	e, err := app.Workspace.Editor(name)
	if err != nil {
		return err
	}

	action := "list"
	if len(args) > 0 {
		action, args = args[0], args[1:]
	}

	switch action {
	case "list", "ls":
		return listSection(app, e)
	case "add":
		return addRecord(app, e, args)
	case "set":
		return setField(app, e, args)
	case "rm", "remove":
		return removeRecord(app, e, args)
	case "move":
		return moveRecord(app, e, args)
	case "import":
		if err := importFile(app, name, args); err != nil {
			return err
		}
		return section.Commit(e)
	case "total":
		return printTotal(app, e)
	case "load":
		if _, err := e.Load(); err != nil && !errors.Is(err, persist.ErrNoData) {
			return err
		}
		return listSection(app, e)
	default:
		return fmt.Errorf("unknown %s action: %s (want list, add, set, rm, move, import, total or load)", name, action)
	}
}

func listSection(app *App, e section.Editor) error {
	rows := e.Rows()
	if len(rows) == 0 {
		app.printf("No %s records\n", e.Name())
		return nil
	}

	header := append([]string{"#"}, e.Columns()...)
	header = append(header, "id")
	out := make([][]string, 0, len(rows))
	for i, row := range rows {
		cells := append([]string{fmt.Sprint(i + 1)}, row[1:]...)
		out = append(out, append(cells, shortID(row[0])))
	}
	app.table(header, out)

	if e.HasTotal() {
		app.printf("\nTotal: %s\n", section.FormatNumber(e.Total()))
	} else {
		app.printf("\nTotal: %d record(s)\n", len(rows))
	}
	return nil
}

// parseFields reads field=value arguments.
func parseFields(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		field, value, err := fieldValue(arg)
		if err != nil {
			return nil, err
		}
		fields[field] = value
	}
	return fields, nil
}

func addRecord(app *App, e section.Editor, args []string) error {
	fields, err := parseFields(args)
	if err != nil {
		return err
	}
	id, err := app.Workspace.AddRecord(e.Name(), fields, app.Confirm)
	if err != nil {
		return fmt.Errorf("failed to add %s record: %w", e.Name(), err)
	}
	app.printf("✓ %s record added (ID: %s)\n", e.Name(), shortID(id))
	return nil
}

func setField(app *App, e section.Editor, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: propkit %s set <row|id> field=value ...", e.Name())
	}
	id, err := resolve(e, args[0])
	if err != nil {
		return err
	}
	fields, err := parseFields(args[1:])
	if err != nil {
		return err
	}
	if err := app.Workspace.UpdateRecord(e.Name(), id, fields); err != nil {
		return fmt.Errorf("failed to update %s record: %w", e.Name(), err)
	}
	app.printf("✓ %s record updated (ID: %s)\n", e.Name(), shortID(id))
	return nil
}

func removeRecord(app *App, e section.Editor, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: propkit %s rm <row|id>", e.Name())
	}
	id, err := resolve(e, args[0])
	if err != nil {
		return err
	}
	if err := app.Workspace.RemoveRecord(e.Name(), id); err != nil {
		return err
	}
	app.printf("✓ %s record removed\n", e.Name())
	return nil
}

func moveRecord(app *App, e section.Editor, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: propkit %s move <from> <to>", e.Name())
	}
	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	if err := e.Reorder(from, to); err != nil {
		return err
	}
	if err := section.Commit(e); err != nil {
		return err
	}
	app.printf("✓ Moved row %d to %d\n", from+1, to+1)
	return nil
}

func importFile(app *App, name string, args []string) error {
	fs := flag.NewFlagSet(name+" import", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: propkit %s import <file.csv>", name)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", fs.Arg(0), err)
	}
	defer func() { _ = f.Close() }()

	res, err := app.Importer.Import(name, f)
	if err != nil {
		return err
	}
	app.printf("✓ Imported %d %s record(s) (batch %s)\n", res.Accepted, name, res.BatchID)
	if res.Dropped > 0 {
		app.printf("  Skipped %d row(s)\n", res.Dropped)
	}
	return nil
}

func printTotal(app *App, e section.Editor) error {
	if !e.HasTotal() {
		return fmt.Errorf("%s has no total", e.Name())
	}
	app.printf("%s\n", section.FormatNumber(e.Total()))
	return nil
}
