// ABOUTME: Entry point for the propkit CLI, TUI, web UI and MCP server
// ABOUTME: Routes to section commands or a surface based on arguments
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/harperreed/propkit/cli"
	"github.com/harperreed/propkit/config"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/storage"
	"github.com/harperreed/propkit/tui"
	"github.com/harperreed/propkit/web"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	driver := flag.String("driver", "", "Storage driver: memory, sqlite, local or charm")
	dbPath := flag.String("db-path", "", "SQLite database path (default: ~/.local/share/propkit/propkit.db)")
	yes := flag.Bool("yes", false, "Answer yes to every confirmation")
	verbose := flag.Bool("verbose", false, "Log debug output")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("propkit version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}
	command, commandArgs := args[0], args[1:]

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "propkit"})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		logger.Fatal("Failed to load config", "err", err)
	}
	if *driver != "" {
		d, err := config.ParseDriver(*driver)
		if err != nil {
			logger.Fatal("Invalid driver", "err", err)
		}
		cfg.Driver = d
	}
	if *dbPath != "" {
		cfg.SQLitePath = *dbPath
	}

	// config works without opening storage
	if command == "config" {
		if err := cli.ConfigCommand(cfg, os.Stdout, commandArgs); err != nil {
			logger.Fatal("Error", "err", err)
		}
		return
	}

	backend, err := config.OpenBackend(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "driver", cfg.Driver, "err", err)
	}
	defer func() { _ = backend.Close() }()
	logger.Debug("storage opened", "driver", cfg.Driver)

	if err := run(command, commandArgs, cfg, backend, logger, *yes); err != nil {
		_ = backend.Close()
		logger.Fatal("Error", "err", err)
	}
}

func run(command string, args []string, cfg *config.Config, backend storage.Backend, logger *log.Logger, yes bool) error {
	if command == "tui" {
		return tui.Run(backend, logger)
	}

	var confirm prompt.Confirmer = prompt.NewTerminal()
	if yes {
		confirm = prompt.AutoConfirm(true)
	}
	app := cli.NewApp(backend, logger, confirm)

	switch command {
	case section.NameTree, section.NameBudget, section.NameIndicators, section.NameQuant,
		section.NameDepartments, section.NameRisks, section.NameEffects:
		return cli.SectionCommand(app, command, args)
	case section.NameSummary:
		return cli.SummaryCommand(app, args)
	case "indicator":
		return cli.IndicatorCommand(app, args)
	case "output":
		return cli.OutputCommand(app, args)
	case "viz":
		return cli.VizCommand(app, args)
	case "sync":
		return cli.SyncCommand(app, cfg, args)
	case "mcp":
		return cli.MCPCommand(app, version)
	case "web":
		fs := flag.NewFlagSet("web", flag.ExitOnError)
		port := fs.Int("port", 8080, "Port to listen on")
		_ = fs.Parse(args)

		server, err := web.NewServer(app.Output, logger)
		if err != nil {
			return err
		}
		return server.Start(*port)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage() {
	fmt.Printf(`propkit v%s - proposal document workspace

USAGE:
  propkit [global flags] <command> [subcommand] [args]

GLOBAL FLAGS:
  --version              Show version and exit
  --driver <name>        Storage driver: memory, sqlite, local, charm (default: config)
  --db-path <path>       SQLite database path (default: ~/.local/share/propkit/propkit.db)
  --yes                  Answer yes to every confirmation
  --verbose              Log debug output

SECTIONS:
  tree | budget | indicators | quant | departments | risks | effects

  propkit <section> list                 List records (default)
  propkit <section> add [field=value...] Add a record
  propkit <section> set <row|id> field=value...
  propkit <section> rm <row|id>          Remove a record
  propkit <section> move <from> <to>     Reorder (tree only)
  propkit <section> import <file.csv>    Replace from CSV (budget, indicators, quant, risks, effects)
  propkit <section> total                Show the section total
  propkit <section> load                 Reload from storage and list

  propkit summary [show | set field=value... | clear]
  propkit indicator [show | mode <quant|qual> | text <words...>]

OUTPUT:
  propkit output [--json]                Show the aggregated proposal
  propkit output rm <section> <row>      Delete a displayed record

SURFACES:
  propkit tui                            Full-screen editor
  propkit web [--port 8080]              Web output page
  propkit mcp                            MCP server over stdio
  propkit viz tree [--format dot|svg] [--output file]
  propkit viz dashboard

SETTINGS:
  propkit config [show | driver <name>]
  propkit sync <status|now|link|unlink|wipe|auto on|off>

Data: ~/.local/share/propkit/
`, version)
}
