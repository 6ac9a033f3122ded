// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/propkit/handlers"
)

// NewMCPServer registers every propkit tool, resource and prompt.
func NewMCPServer(app *App, version string) *mcp.Server {
	sectionHandlers := handlers.NewSectionHandlers(app.Workspace, app.Importer)
	outputHandlers := handlers.NewOutputHandlers(app.Output)
	resourceHandlers := handlers.NewResourceHandlers(app.Adapter, app.Output)
	promptHandlers := handlers.NewPromptHandlers(app.Output)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "propkit",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_section",
		Description: "List the records of one proposal section with their ids and fields",
	}, sectionHandlers.ListSection)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_record",
		Description: "Add a record to a list section; omitted fields take their defaults",
	}, sectionHandlers.AddRecord)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_record",
		Description: "Set fields on a record, or on the summary",
	}, sectionHandlers.UpdateRecord)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_record",
		Description: "Delete a record from a list section by id",
	}, sectionHandlers.DeleteRecord)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_csv",
		Description: "Bulk import CSV text into budget, indicators, quant, risks or effects",
	}, sectionHandlers.ImportCSV)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_output",
		Description: "Assemble every saved section into the read-only output snapshot",
	}, outputHandlers.GetOutput)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_output_record",
		Description: "Delete a record shown in the output snapshot from its saved section",
	}, outputHandlers.DeleteOutputRecord)

	server.AddResource(&mcp.Resource{
		URI:      "propkit://output",
		Name:     "output",
		MIMEType: "application/json",
	}, resourceHandlers.ReadResource)
	server.AddResource(&mcp.Resource{
		URI:      "propkit://keys",
		Name:     "keys",
		MIMEType: "application/json",
	}, resourceHandlers.ReadResource)
	for _, key := range handlers.ResourceKeys {
		server.AddResource(&mcp.Resource{
			URI:      "propkit://keys/" + key,
			Name:     key,
			MIMEType: "application/json",
		}, resourceHandlers.ReadResource)
	}

	for _, p := range handlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(app *App, version string) error {
	app.Logger.Info("Starting propkit MCP server")
	return NewMCPServer(app, version).Run(context.Background(), &mcp.StdioTransport{})
}
