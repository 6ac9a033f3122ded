// ABOUTME: Output CLI commands
// ABOUTME: Prints the aggregate snapshot as tables or JSON and deletes displayed records
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"

	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/section"
)

// OutputCommand handles `propkit output [--json]` and `propkit output rm`.
func OutputCommand(app *App, args []string) error {
	if len(args) > 0 && args[0] == "rm" {
		return outputRemove(app, args[1:])
	}

	fs := flag.NewFlagSet("output", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Print the snapshot as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	snap := app.Output.Assemble()
	if *asJSON {
		enc := json.NewEncoder(app.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	printSnapshot(app, snap)
	return nil
}

func outputRemove(app *App, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: propkit output rm <section> <row>")
	}
	index, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	if err := app.Output.Delete(args[0], index, app.Confirm); err != nil {
		return err
	}
	app.printf("✓ Deleted %s row %d\n", args[0], index+1)
	return nil
}

func heading(app *App, title string, n int) bool {
	app.printf("\n== %s ==\n", title)
	if n == 0 {
		app.printf("(empty)\n")
		return false
	}
	return true
}

func printSnapshot(app *App, snap output.Snapshot) {
	if heading(app, "문제해결 트리", len(snap.Tree)) {
		rows := make([][]string, len(snap.Tree))
		for i, r := range snap.Tree {
			rows[i] = []string{r.Number, r.Node.Title, r.Node.Category, r.Node.Comment}
		}
		app.table([]string{"no", "title", "category", "comment"}, rows)
	}

	if heading(app, "예산", len(snap.Budget)) {
		rows := make([][]string, len(snap.Budget))
		for i, b := range snap.Budget {
			rows[i] = []string{strconv.Itoa(i + 1), b.Category, b.Name, b.Unit, section.FormatNumber(b.Amount)}
		}
		app.table([]string{"#", "category", "name", "unit", "amount"}, rows)
		app.printf("Total: %s\n", section.FormatNumber(snap.BudgetTotal))
	}

	if heading(app, "성과지표", len(snap.Indicators)+len(snap.SimpleIndicators)) {
		if len(snap.Indicators) > 0 {
			rows := make([][]string, len(snap.Indicators))
			for i, q := range snap.Indicators {
				rows[i] = []string{strconv.Itoa(i + 1), q.Name, q.Unit, section.FormatNumber(q.Baseline), section.FormatNumber(q.Target)}
			}
			app.table([]string{"#", "name", "unit", "baseline", "target"}, rows)
		}
		if len(snap.SimpleIndicators) > 0 {
			rows := make([][]string, len(snap.SimpleIndicators))
			for i, s := range snap.SimpleIndicators {
				rows[i] = []string{strconv.Itoa(i + 1), s.Description, section.FormatNumber(s.Amount), s.Type}
			}
			app.table([]string{"#", "description", "amount", "type"}, rows)
		}
	}
	if snap.QualitativeText != "" {
		app.printf("정성 지표: %s\n", snap.QualitativeText)
	}

	if snap.Summary != nil {
		app.printf("\n== 요약 ==\n")
		app.table([]string{"field", "value"}, [][]string{
			{"background", snap.Summary.Background},
			{"objective", snap.Summary.Objective},
			{"strategy", snap.Summary.Strategy},
			{"expectedEffect", snap.Summary.ExpectedEffect},
		})
	}

	if heading(app, "주관·협력부처", len(snap.Departments)) {
		rows := make([][]string, len(snap.Departments))
		for i, d := range snap.Departments {
			rows[i] = []string{strconv.Itoa(i + 1), d.Name, d.Role}
		}
		app.table([]string{"#", "name", "role"}, rows)
	}

	if heading(app, "리스크 분석", len(snap.Risks)) {
		rows := make([][]string, len(snap.Risks))
		for i, r := range snap.Risks {
			rows[i] = []string{strconv.Itoa(i + 1), r.Factor, strconv.Itoa(r.Impact), strconv.Itoa(r.Likelihood), strconv.Itoa(r.Severity)}
		}
		app.table([]string{"#", "factor", "impact", "likelihood", "severity"}, rows)
	}

	if heading(app, "기대효과", len(snap.Effects)) {
		rows := make([][]string, len(snap.Effects))
		for i, e := range snap.Effects {
			rows[i] = []string{strconv.Itoa(i + 1), e}
		}
		app.table([]string{"#", "effect"}, rows)
	}

	for _, w := range snap.Warnings {
		app.printf("! %s\n", w)
	}
}
