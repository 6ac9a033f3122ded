// ABOUTME: MCP resource handlers for exposing proposal data
// ABOUTME: Provides read-only JSON for the output snapshot and each raw section document
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/propkit/models"
	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/persist"
)

const resourceScheme = "propkit://"

// ResourceKeys are the storage keys readable as propkit://keys/<key>.
var ResourceKeys = []string{
	models.KeyTree, models.KeyBudget, models.KeyIndicator, models.KeyDepartment,
	models.KeyDepartmentLegacy, models.KeyRisks, models.KeyEffects, models.KeySummary,
}

type ResourceHandlers struct {
	adapter *persist.Adapter
	view    *output.View
}

func NewResourceHandlers(adapter *persist.Adapter, view *output.View) *ResourceHandlers {
	return &ResourceHandlers{adapter: adapter, view: view}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	path := strings.TrimPrefix(uri, resourceScheme)
	parts := strings.SplitN(path, "/", 2)

	switch parts[0] {
	case "output":
		return jsonResource(uri, h.view.Assemble())
	case "keys":
		if len(parts) == 1 {
			return jsonResource(uri, ResourceKeys)
		}
		return h.readKey(uri, parts[1])
	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func (h *ResourceHandlers) readKey(uri, key string) (*mcp.ReadResourceResult, error) {
	known := false
	for _, k := range ResourceKeys {
		if k == key {
			known = true
		}
	}
	if !known {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	raw, err := h.adapter.Read(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return jsonResource(uri, raw)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
