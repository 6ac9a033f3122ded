// ABOUTME: Output tab rows for TUI
// ABOUTME: Flattens the assembled snapshot into deletable display rows
package tui

import (
	"fmt"

	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/section"
)

// outputRow is one record as the output view displays it.
type outputRow struct {
	Section string
	Index   int
	Label   string
}

func outputRows(snap output.Snapshot) []outputRow {
	var rows []outputRow
	add := func(name string, i int, label string) {
		rows = append(rows, outputRow{Section: name, Index: i, Label: label})
	}

	for i, r := range snap.Tree {
		add(output.SectionTree, i, r.Number+" "+r.Node.Title)
	}
	for i, b := range snap.Budget {
		add(output.SectionBudget, i, fmt.Sprintf("%s %s %s%s", b.Category, b.Name, section.FormatNumber(b.Amount), b.Unit))
	}
	for i, q := range snap.Indicators {
		add(output.SectionIndicators, i, fmt.Sprintf("%s %s → %s%s", q.Name, section.FormatNumber(q.Baseline), section.FormatNumber(q.Target), q.Unit))
	}
	for i, s := range snap.SimpleIndicators {
		add(output.SectionSimpleIndicators, i, fmt.Sprintf("%s %s (%s)", s.Description, section.FormatNumber(s.Amount), s.Type))
	}
	for i, d := range snap.Departments {
		add(output.SectionDepartments, i, d.Name+" ("+d.Role+")")
	}
	for i, r := range snap.Risks {
		add(output.SectionRisks, i, fmt.Sprintf("%s %d×%d=%d", r.Factor, r.Impact, r.Likelihood, r.Severity))
	}
	for i, e := range snap.Effects {
		add(output.SectionEffects, i, e)
	}
	return rows
}
