// ABOUTME: Visualization CLI commands
// ABOUTME: Handles the proposal dashboard and tree graph generation commands
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/propkit/viz"
)

// VizCommand handles `propkit viz <tree|dashboard>`.
func VizCommand(app *App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("viz requires a subcommand: tree or dashboard")
	}
	switch args[0] {
	case "tree":
		return VizTreeCommand(app, args[1:])
	case "dashboard":
		app.printf("%s", viz.RenderDashboard(viz.GenerateDashboardStats(app.Output.Assemble())))
		return nil
	default:
		return fmt.Errorf("unknown viz command: %s", args[0])
	}
}

// VizTreeCommand renders the problem-solving tree.
func VizTreeCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("viz tree", flag.ContinueOnError)
	format := fs.String("format", "dot", "Output format (dot or svg)")
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := viz.ParseFormat(*format)
	if err != nil {
		return err
	}

	graph, err := viz.NewGraphGenerator(app.Output).GenerateTreeGraph(f)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, graph, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", *output, err)
		}
		app.printf("✓ Tree graph written to %s\n", *output)
		return nil
	}

	_, err = app.Out.Write(graph)
	return err
}
