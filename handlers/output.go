// ABOUTME: Output MCP tool handlers
// ABOUTME: Implements get_output and delete_output_record over persisted data
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/prompt"
)

type OutputHandlers struct {
	view *output.View
}

func NewOutputHandlers(view *output.View) *OutputHandlers {
	return &OutputHandlers{view: view}
}

type GetOutputInput struct{}

func (h *OutputHandlers) GetOutput(_ context.Context, _ *mcp.CallToolRequest, _ GetOutputInput) (*mcp.CallToolResult, output.Snapshot, error) {
	return nil, h.view.Assemble(), nil
}

type DeleteOutputRecordInput struct {
	Section string `json:"section" jsonschema:"Output section (tree, budget, indicators, simple-indicators, departments, risks, effects)"`
	Index   int    `json:"index" jsonschema:"Zero-based position of the record as shown by get_output"`
	Confirm bool   `json:"confirm" jsonschema:"Must be true to delete"`
}

type DeleteOutputRecordOutput struct {
	Deleted bool   `json:"deleted"`
	Section string `json:"section"`
	Index   int    `json:"index"`
}

func (h *OutputHandlers) DeleteOutputRecord(_ context.Context, _ *mcp.CallToolRequest, input DeleteOutputRecordInput) (*mcp.CallToolResult, DeleteOutputRecordOutput, error) {
	if err := h.view.Delete(input.Section, input.Index, prompt.AutoConfirm(input.Confirm)); err != nil {
		return nil, DeleteOutputRecordOutput{}, fmt.Errorf("failed to delete: %w", err)
	}
	return nil, DeleteOutputRecordOutput{Deleted: true, Section: input.Section, Index: input.Index}, nil
}
