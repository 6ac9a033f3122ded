// ABOUTME: User notification and confirmation ports
// ABOUTME: Logger-backed notifier, terminal confirmer and fixed answers for scripts

package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Notifier shows non-blocking messages to the user.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// LogNotifier routes messages to a leveled logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Info(msg string) { n.Logger.Info(msg) }
func (n LogNotifier) Warn(msg string) { n.Logger.Warn(msg) }

// Discard drops every message.
type Discard struct{}

func (Discard) Info(string) {}
func (Discard) Warn(string) {}

// AutoConfirm answers every question with its own value (--yes / --no).
type AutoConfirm bool

func (a AutoConfirm) Confirm(string) bool { return bool(a) }

// Terminal asks on an interactive terminal and declines otherwise.
type Terminal struct {
	In  io.Reader
	Out io.Writer
	// IsTTY overrides terminal detection; nil means inspect stdin.
	IsTTY func() bool
}

// NewTerminal returns a confirmer bound to the process stdin and stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

func (t *Terminal) interactive() bool {
	if t.IsTTY != nil {
		return t.IsTTY()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (t *Terminal) Confirm(question string) bool {
	if !t.interactive() {
		return false
	}
	fmt.Fprintf(t.Out, "%s [y/N]: ", question)
	line, err := bufio.NewReader(t.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "예", "네":
		return true
	}
	return false
}

// Recorder keeps every message, for tests and for surfaces that render
// notifications later (the TUI status line).
type Recorder struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (r *Recorder) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}

func (r *Recorder) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, msg)
}

func (r *Recorder) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...)
}

func (r *Recorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warns...)
}

// Drain returns and clears every recorded message, warnings first.
func (r *Recorder) Drain() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append(append([]string(nil), r.warns...), r.infos...)
	r.infos, r.warns = nil, nil
	return out
}
