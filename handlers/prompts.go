// ABOUTME: MCP prompt handlers for reusable proposal review templates
// ABOUTME: Builds review prompts from the persisted output snapshot
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/section"
)

type PromptHandlers struct {
	view *output.View
}

func NewPromptHandlers(view *output.View) *PromptHandlers {
	return &PromptHandlers{view: view}
}

// Prompts lists the templates GetPrompt serves.
func Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{Name: "proposal-review", Description: "Review the whole proposal for gaps and inconsistencies"},
		{Name: "budget-check", Description: "Check budget items against the indicators and risks"},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	snap := h.view.Assemble()
	switch request.Params.Name {
	case "proposal-review":
		return promptResult("Proposal review", proposalReviewText(snap)), nil
	case "budget-check":
		return promptResult("Budget check", budgetCheckText(snap)), nil
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}

func proposalReviewText(snap output.Snapshot) string {
	var b strings.Builder
	b.WriteString("Please review this project proposal. Point out missing sections, ")
	b.WriteString("indicators without matching budget, and risks without mitigation.\n\n")

	if snap.Summary != nil {
		fmt.Fprintf(&b, "Background: %s\nObjective: %s\nStrategy: %s\nExpected effect: %s\n\n",
			snap.Summary.Background, snap.Summary.Objective, snap.Summary.Strategy, snap.Summary.ExpectedEffect)
	} else {
		b.WriteString("Summary: (not written)\n\n")
	}

	b.WriteString("Problem-solving tree:\n")
	for _, r := range snap.Tree {
		fmt.Fprintf(&b, "  %s %s", r.Number, r.Node.Title)
		if r.Node.Category != "" {
			fmt.Fprintf(&b, " [%s]", r.Node.Category)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nIndicators:\n")
	for _, q := range snap.Indicators {
		fmt.Fprintf(&b, "  %s: %s -> %s %s\n", q.Name, section.FormatNumber(q.Baseline), section.FormatNumber(q.Target), q.Unit)
	}
	for _, s := range snap.SimpleIndicators {
		fmt.Fprintf(&b, "  %s (%s): %s\n", s.Description, s.Type, section.FormatNumber(s.Amount))
	}
	if snap.QualitativeText != "" {
		fmt.Fprintf(&b, "  Qualitative: %s\n", snap.QualitativeText)
	}

	b.WriteString("\nDepartments:\n")
	for _, d := range snap.Departments {
		fmt.Fprintf(&b, "  %s (%s)\n", d.Name, d.Role)
	}

	b.WriteString("\nRisks:\n")
	for _, r := range snap.Risks {
		fmt.Fprintf(&b, "  %s: impact %d, likelihood %d, severity %d\n", r.Factor, r.Impact, r.Likelihood, r.Severity)
	}

	b.WriteString("\nExpected effects:\n")
	for _, e := range snap.Effects {
		fmt.Fprintf(&b, "  - %s\n", e)
	}
	return b.String()
}

func budgetCheckText(snap output.Snapshot) string {
	var b strings.Builder
	b.WriteString("Check whether this budget is plausible for the indicators and risks below.\n\n")
	for _, item := range snap.Budget {
		fmt.Fprintf(&b, "  [%s] %s: %s %s\n", item.Category, item.Name, section.FormatNumber(item.Amount), item.Unit)
	}
	fmt.Fprintf(&b, "Total: %s\n\n", section.FormatNumber(snap.BudgetTotal))
	fmt.Fprintf(&b, "Indicators: %d, risks: %d\n", len(snap.Indicators)+len(snap.SimpleIndicators), len(snap.Risks))
	return b.String()
}
