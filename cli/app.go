// ABOUTME: Shared wiring for every CLI command
// ABOUTME: Opens the workspace over a backend and formats tables with tabwriter
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/harperreed/propkit/importer"
	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/storage"
)

// App is the state one CLI invocation works on.
type App struct {
	Backend   storage.Backend
	Adapter   *persist.Adapter
	Workspace *section.Workspace
	Importer  *importer.Importer
	Output    *output.View
	Confirm   prompt.Confirmer
	Logger    *log.Logger
	Out       io.Writer
}

// NewApp restores every section from backend. Notifications go to logger.
func NewApp(backend storage.Backend, logger *log.Logger, confirm prompt.Confirmer) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	notify := prompt.LogNotifier{Logger: logger}
	adapter := persist.New(backend, persist.WithNotifier(notify), persist.WithLogger(logger))
	ws := section.NewWorkspace(adapter)
	ws.Open()

	return &App{
		Backend:   backend,
		Adapter:   adapter,
		Workspace: ws,
		Importer:  importer.New(ws, importer.WithNotifier(notify), importer.WithLogger(logger)),
		Output:    output.New(adapter),
		Confirm:   confirm,
		Logger:    logger,
		Out:       os.Stdout,
	}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}

// table prints header plus rows, one tab-separated line each.
func (a *App) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	upper := make([]string, len(header))
	rule := make([]string, len(header))
	for i, h := range header {
		upper[i] = strings.ToUpper(h)
		rule[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(upper, "\t"))
	fmt.Fprintln(w, strings.Join(rule, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if c == "" {
				c = "-"
			}
			cells[i] = c
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

// shortID keeps listings narrow the way the id column always has.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parsePosition reads a 1-based row number.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid row number %q", s)
	}
	return n - 1, nil
}

// resolve turns a row number or an id prefix into a record id.
func resolve(e section.Editor, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		id, ok := e.IDAt(n - 1)
		if !ok {
			return "", fmt.Errorf("%w: row %d of %d", section.ErrInvalidIndex, n, e.Len())
		}
		return id, nil
	}

	var match string
	for _, row := range e.Rows() {
		if strings.HasPrefix(row[0], ref) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", ref)
			}
			match = row[0]
		}
	}
	if match == "" {
		return "", fmt.Errorf("no %s record with id %q", e.Name(), ref)
	}
	return match, nil
}

// fieldValue splits a field=value argument.
func fieldValue(arg string) (string, string, error) {
	field, value, ok := strings.Cut(arg, "=")
	if !ok || field == "" {
		return "", "", fmt.Errorf("expected field=value, got %q", arg)
	}
	return field, value, nil
}
