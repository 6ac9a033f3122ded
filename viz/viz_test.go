// ABOUTME: Tests for tree graph structure and dashboard rendering
// ABOUTME: Graph rendering itself runs through the embedded graphviz build
package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/storage"
)

func row(title string, level int) output.TreeRow {
	return output.TreeRow{Node: models.TreeNode{Title: title, Level: level}}
}

func TestParents(t *testing.T) {
	rows := []output.TreeRow{row("a", 0), row("b", 1), row("c", 2), row("d", 1), row("e", 0)}
	assert.Equal(t, []int{-1, 0, 1, 0, -1}, Parents(rows))
}

func TestGenerateTreeGraph(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(models.KeyTree, `[{"id":"a","title":"목표","level":0},{"id":"b","title":"세부","level":1,"category":"효과"}]`))
	g := NewGraphGenerator(output.New(persist.New(kv)))

	dot, err := g.GenerateTreeGraph(FormatDOT)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "node_0")
	assert.Contains(t, string(dot), "node_1")
	assert.Contains(t, string(dot), "lightyellow")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("svg")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	_, err = ParseFormat("png")
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	snap := output.Snapshot{
		Budget: []models.BudgetItem{
			{ID: "1", Category: models.CategoryLabor, Amount: 300},
			{ID: "2", Category: models.CategoryOther, Amount: 100},
		},
		BudgetTotal: 400,
		Risks: []output.RiskRow{
			{Factor: "지연", Severity: 4},
			{Factor: "예산 초과", Severity: 20},
		},
		Effects: []string{"x"},
	}

	stats := GenerateDashboardStats(snap)
	assert.Equal(t, 300.0, stats.BudgetByCategory[models.CategoryLabor])
	require.Len(t, stats.HighRisks, 1)
	assert.False(t, stats.HasSummary)

	out := RenderDashboard(stats)
	assert.Contains(t, out, "███████░░░")
	assert.Contains(t, out, "예산 초과 (severity 20)")
	assert.Contains(t, out, "summary missing")
}
