// ABOUTME: Sync CLI commands for the charm-backed drivers
// ABOUTME: Routes sync subcommands and persists the auto-sync preference
package cli

import (
	"fmt"

	"github.com/harperreed/propkit/charm"
	"github.com/harperreed/propkit/config"
)

// SyncCommand handles `propkit sync <status|now|link|unlink|wipe|auto>`.
func SyncCommand(app *App, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("sync requires a subcommand: status, now, link, unlink, wipe or auto")
	}
	action, rest := args[0], args[1:]

	if action == "unlink" {
		return charm.SyncUnlinkCommand(rest)
	}
	if action == "auto" {
		return syncAuto(app, cfg, rest)
	}

	client, ok := app.Backend.(*charm.Client)
	if !ok {
		return fmt.Errorf("sync needs the local or charm driver (current: %s)", cfg.Driver)
	}

	switch action {
	case "status":
		return charm.SyncStatusCommand(client, rest)
	case "now":
		return charm.SyncNowCommand(client, rest)
	case "link":
		return charm.SyncLinkCommand(client, rest)
	case "wipe":
		return charm.SyncWipeCommand(client, rest)
	default:
		return fmt.Errorf("unknown sync command: %s", action)
	}
}

func syncAuto(app *App, cfg *config.Config, args []string) error {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return fmt.Errorf("usage: propkit sync auto <on|off>")
	}
	if err := cfg.SetAutoSync(args[0] == "on"); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	app.printf("✓ Auto-sync: %s (%s)\n", args[0], cfg.Path())
	return nil
}
