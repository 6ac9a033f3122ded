// ABOUTME: Problem-solving tree graph generation with graphviz
// ABOUTME: Links each node to the nearest earlier node with a smaller level
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/output"
)

// Format is a graph output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatSVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format %q (want dot or svg)", s)
}

// GraphGenerator draws graphs from persisted proposal data.
type GraphGenerator struct {
	view *output.View
}

func NewGraphGenerator(view *output.View) *GraphGenerator {
	return &GraphGenerator{view: view}
}

var categoryColors = map[string]string{
	models.TreeEffect:  "lightyellow",
	models.TreeOutcome: "lightgreen",
	models.TreeOutput:  "lightblue",
}

// Parents returns, for every row, the index of its parent row or -1.
func Parents(rows []output.TreeRow) []int {
	parents := make([]int, len(rows))
	for i, r := range rows {
		parents[i] = -1
		for j := i - 1; j >= 0; j-- {
			if rows[j].Node.Level < r.Node.Level {
				parents[i] = j
				break
			}
		}
	}
	return parents
}

// GenerateTreeGraph renders the saved problem-solving tree.
func (g *GraphGenerator) GenerateTreeGraph(format Format) ([]byte, error) {
	rows := g.view.Assemble().Tree

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return nil, fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("문제해결 트리")
	graph.SetRankDir(cgraph.LRRank)

	nodes := make([]*cgraph.Node, len(rows))
	for i, r := range rows {
		node, err := graph.CreateNodeByName(fmt.Sprintf("node_%d", i))
		if err != nil {
			return nil, fmt.Errorf("failed to create tree node: %w", err)
		}
		label := fmt.Sprintf("%s %s", r.Number, r.Node.Title)
		if r.Node.Category != "" {
			label += fmt.Sprintf("\n(%s)", r.Node.Category)
		}
		node.SetLabel(label)
		node.SetShape("box")
		if color, ok := categoryColors[r.Node.Category]; ok {
			node.SetStyle("filled")
			node.SetFillColor(color)
		}
		if r.Node.Comment != "" {
			node.SetTooltip(r.Node.Comment)
		}
		nodes[i] = node
	}

	for i, parent := range Parents(rows) {
		if parent < 0 {
			continue
		}
		if _, err := graph.CreateEdgeByName(fmt.Sprintf("edge_%d", i), nodes[parent], nodes[i]); err != nil {
			return nil, fmt.Errorf("failed to create edge: %w", err)
		}
	}

	gvFormat := graphviz.XDOT
	if format == FormatSVG {
		gvFormat = graphviz.SVG
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.Bytes(), nil
}
