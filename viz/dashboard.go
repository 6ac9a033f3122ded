// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII overview of the saved proposal
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/section"
)

type DashboardStats struct {
	// Budget share per category
	BudgetByCategory map[string]float64
	BudgetTotal      float64

	// Section counts
	TreeNodes   int
	Indicators  int
	Departments int
	Risks       int
	Effects     int
	HasSummary  bool

	// Needs attention
	HighRisks []output.RiskRow
	Warnings  []string
}

// HighRiskSeverity is the severity from which a risk is flagged.
const HighRiskSeverity = 15

func GenerateDashboardStats(snap output.Snapshot) *DashboardStats {
	stats := &DashboardStats{
		BudgetByCategory: make(map[string]float64),
		BudgetTotal:      snap.BudgetTotal,
		TreeNodes:        len(snap.Tree),
		Indicators:       len(snap.Indicators) + len(snap.SimpleIndicators),
		Departments:      len(snap.Departments),
		Risks:            len(snap.Risks),
		Effects:          len(snap.Effects),
		HasSummary:       snap.Summary != nil && !snap.Summary.IsEmpty(),
		Warnings:         snap.Warnings,
	}

	for _, b := range snap.Budget {
		stats.BudgetByCategory[b.Category] += b.Amount
	}

	for _, r := range snap.Risks {
		if r.Severity >= HighRiskSeverity {
			stats.HighRisks = append(stats.HighRisks, r)
		}
	}
	sort.SliceStable(stats.HighRisks, func(i, j int) bool {
		return stats.HighRisks[i].Severity > stats.HighRisks[j].Severity
	})

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  PROPKIT PROPOSAL DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("BUDGET\n")
	renderBudget(&out, stats.BudgetByCategory, stats.BudgetTotal)
	out.WriteString("\n")

	out.WriteString("SECTIONS\n")
	summary := "missing"
	if stats.HasSummary {
		summary = "written"
	}
	out.WriteString(fmt.Sprintf("  tree %d  indicators %d  departments %d  risks %d  effects %d  summary %s\n\n",
		stats.TreeNodes, stats.Indicators, stats.Departments, stats.Risks, stats.Effects, summary))

	if len(stats.HighRisks) > 0 || len(stats.Warnings) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		for _, r := range stats.HighRisks {
			out.WriteString(fmt.Sprintf("  ⚠️  %s (severity %d)\n", r.Factor, r.Severity))
		}
		for _, w := range stats.Warnings {
			out.WriteString(fmt.Sprintf("  ⚠️  %s\n", w))
		}
	}

	return out.String()
}

func renderBudget(out *strings.Builder, byCategory map[string]float64, total float64) {
	categories := []string{models.CategoryLabor, models.CategoryOperations, models.CategoryOther}

	if total <= 0 {
		out.WriteString("  (no budget)\n")
		return
	}

	for _, category := range categories {
		amount, exists := byCategory[category]
		if !exists {
			continue
		}

		// Calculate bar length (0-10 blocks)
		barLength := int(amount * 10 / total)
		if barLength < 0 {
			barLength = 0
		}
		if barLength > 10 {
			barLength = 10
		}

		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-6s %s  %s\n", category, bar, section.FormatNumber(amount)))
	}
	out.WriteString(fmt.Sprintf("  total  %s\n", section.FormatNumber(total)))
}
