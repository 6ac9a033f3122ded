// ABOUTME: Section MCP tool handlers
// ABOUTME: Implements list_section, add_record, update_record, delete_record and import_csv
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/propkit/importer"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
)

type SectionHandlers struct {
	ws       *section.Workspace
	importer *importer.Importer
}

func NewSectionHandlers(ws *section.Workspace, im *importer.Importer) *SectionHandlers {
	return &SectionHandlers{ws: ws, importer: im}
}

type RecordOutput struct {
	ID     string            `json:"id,omitempty"`
	Fields map[string]string `json:"fields"`
}

type ListSectionInput struct {
	Section string `json:"section" jsonschema:"Section name (tree, budget, departments, indicators, quant, risks, effects, summary)"`
}

type ListSectionOutput struct {
	Section string         `json:"section"`
	Records []RecordOutput `json:"records"`
	Total   *float64       `json:"total,omitempty"`
	Mode    string         `json:"mode,omitempty"`
	Text    string         `json:"qualitative_text,omitempty"`
}

func (h *SectionHandlers) ListSection(_ context.Context, _ *mcp.CallToolRequest, input ListSectionInput) (*mcp.CallToolResult, ListSectionOutput, error) {
	if input.Section == section.NameSummary {
		s := h.ws.Summary.Get()
		return nil, ListSectionOutput{
			Section: input.Section,
			Records: []RecordOutput{{Fields: map[string]string{
				"background":     s.Background,
				"objective":      s.Objective,
				"strategy":       s.Strategy,
				"expectedEffect": s.ExpectedEffect,
			}}},
		}, nil
	}

	e, err := h.ws.Editor(input.Section)
	if err != nil {
		return nil, ListSectionOutput{}, err
	}

	out := ListSectionOutput{Section: e.Name(), Records: recordsOf(e)}
	if e.HasTotal() {
		total := e.Total()
		out.Total = &total
	}
	if e.Name() == section.NameQuant {
		out.Mode = h.ws.Indicator.Mode()
		out.Text = h.ws.Indicator.Text()
	}
	return nil, out, nil
}

func recordsOf(e section.Editor) []RecordOutput {
	columns := e.Columns()
	rows := e.Rows()
	records := make([]RecordOutput, len(rows))
	for i, row := range rows {
		fields := make(map[string]string, len(columns))
		for j, col := range columns {
			if j+1 < len(row) {
				fields[col] = row[j+1]
			}
		}
		records[i] = RecordOutput{ID: row[0], Fields: fields}
	}
	return records
}

func recordOf(e section.Editor, id string) RecordOutput {
	for _, r := range recordsOf(e) {
		if r.ID == id {
			return r
		}
	}
	return RecordOutput{ID: id}
}

type AddRecordInput struct {
	Section string            `json:"section" jsonschema:"List section name"`
	Fields  map[string]string `json:"fields,omitempty" jsonschema:"Field values; omitted fields take their defaults"`
	Confirm bool              `json:"confirm,omitempty" jsonschema:"Allow a department name that is not on the known list"`
}

func (h *SectionHandlers) AddRecord(_ context.Context, _ *mcp.CallToolRequest, input AddRecordInput) (*mcp.CallToolResult, RecordOutput, error) {
	id, err := h.ws.AddRecord(input.Section, input.Fields, prompt.AutoConfirm(input.Confirm))
	if err != nil {
		return nil, RecordOutput{}, fmt.Errorf("failed to add record: %w", err)
	}
	e, _ := h.ws.Editor(input.Section)
	return nil, recordOf(e, id), nil
}

type UpdateRecordInput struct {
	Section string            `json:"section" jsonschema:"Section name, summary included"`
	ID      string            `json:"id,omitempty" jsonschema:"Record id (not used for summary)"`
	Fields  map[string]string `json:"fields" jsonschema:"Field values to set"`
}

func (h *SectionHandlers) UpdateRecord(_ context.Context, _ *mcp.CallToolRequest, input UpdateRecordInput) (*mcp.CallToolResult, RecordOutput, error) {
	if len(input.Fields) == 0 {
		return nil, RecordOutput{}, fmt.Errorf("fields are required")
	}

	if input.Section == section.NameSummary {
		for field, value := range input.Fields {
			if err := h.ws.Summary.Set(field, value); err != nil {
				return nil, RecordOutput{}, fmt.Errorf("failed to set %s: %w", field, err)
			}
		}
		if err := h.ws.Summary.Save(); err != nil {
			return nil, RecordOutput{}, err
		}
		s := h.ws.Summary.Get()
		return nil, RecordOutput{Fields: map[string]string{
			"background": s.Background, "objective": s.Objective,
			"strategy": s.Strategy, "expectedEffect": s.ExpectedEffect,
		}}, nil
	}

	if input.ID == "" {
		return nil, RecordOutput{}, fmt.Errorf("id is required")
	}
	if err := h.ws.UpdateRecord(input.Section, input.ID, input.Fields); err != nil {
		return nil, RecordOutput{}, fmt.Errorf("failed to update record: %w", err)
	}
	e, _ := h.ws.Editor(input.Section)
	return nil, recordOf(e, input.ID), nil
}

type DeleteRecordInput struct {
	Section string `json:"section" jsonschema:"List section name"`
	ID      string `json:"id" jsonschema:"Record id"`
}

type DeleteRecordOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (h *SectionHandlers) DeleteRecord(_ context.Context, _ *mcp.CallToolRequest, input DeleteRecordInput) (*mcp.CallToolResult, DeleteRecordOutput, error) {
	if err := h.ws.RemoveRecord(input.Section, input.ID); err != nil {
		return nil, DeleteRecordOutput{}, err
	}
	return nil, DeleteRecordOutput{Deleted: true, ID: input.ID}, nil
}

type ImportCSVInput struct {
	Section string `json:"section" jsonschema:"Section to import into (budget, indicators, quant, risks, effects)"`
	CSV     string `json:"csv" jsonschema:"CSV text with a header row (effects takes one line per effect)"`
}

type ImportCSVOutput struct {
	Section  string `json:"section"`
	BatchID  string `json:"batch_id"`
	Accepted int    `json:"accepted"`
	Dropped  int    `json:"dropped"`
}

func (h *SectionHandlers) ImportCSV(_ context.Context, _ *mcp.CallToolRequest, input ImportCSVInput) (*mcp.CallToolResult, ImportCSVOutput, error) {
	res, err := h.importer.Import(input.Section, strings.NewReader(input.CSV))
	if err != nil {
		return nil, ImportCSVOutput{}, importFailure(err)
	}
	e, err := h.ws.Editor(input.Section)
	if err != nil {
		return nil, ImportCSVOutput{}, err
	}
	if err := section.Commit(e); err != nil {
		return nil, ImportCSVOutput{}, err
	}
	return nil, ImportCSVOutput{
		Section:  res.Section,
		BatchID:  res.BatchID.String(),
		Accepted: res.Accepted,
		Dropped:  res.Dropped,
	}, nil
}

// importFailure surfaces the user-facing message next to the cause.
func importFailure(err error) error {
	var ie *importer.ImportError
	if errors.As(err, &ie) {
		return fmt.Errorf("%s: %w", ie.Message(), err)
	}
	return fmt.Errorf("import failed: %w", err)
}
