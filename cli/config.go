// ABOUTME: Config CLI command
// ABOUTME: Shows the effective storage settings and persists the default driver
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/harperreed/propkit/config"
)

// ConfigCommand handles `propkit config [show | driver <name>]`.
func ConfigCommand(cfg *config.Config, out io.Writer, args []string) error {
	action := "show"
	if len(args) > 0 {
		action = args[0]
	}

	switch action {
	case "show":
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "config\t%s\n", cfg.Path())
		fmt.Fprintf(w, "driver\t%s\n", cfg.Driver)
		fmt.Fprintf(w, "sqlite_path\t%s\n", cfg.SQLitePath)
		fmt.Fprintf(w, "local_dir\t%s\n", cfg.LocalDir)
		fmt.Fprintf(w, "charm_host\t%s\n", cfg.Charm.Host)
		fmt.Fprintf(w, "auto_sync\t%v\n", cfg.Charm.AutoSync)
		return w.Flush()
	case "driver":
		if len(args) != 2 {
			return fmt.Errorf("usage: propkit config driver <%v>", config.Drivers)
		}
		if err := cfg.SetDriver(args[1]); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Storage driver: %s (%s)\n", cfg.Driver, cfg.Path())
		return nil
	default:
		return fmt.Errorf("unknown config command: %s", action)
	}
}
