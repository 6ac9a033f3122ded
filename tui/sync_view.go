// ABOUTME: TUI view for charm sync status and controls
// ABOUTME: Shows the sync server and key count and triggers a manual sync
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	syncHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Underline(true)

	syncLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(12)

	syncIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	syncSyncingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)

	syncMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)
)

// SyncCompleteMsg is sent when a sync operation completes.
type SyncCompleteMsg struct {
	Error error
}

func (m Model) renderSyncView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Charm Sync"))
	s.WriteString("\n\n")

	if m.client == nil {
		s.WriteString(syncMessageStyle.Render("This storage driver does not sync."))
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render("Esc: Back"))
		return s.String()
	}

	s.WriteString(syncHeaderStyle.Render("Status"))
	s.WriteString("\n\n")

	server := m.client.Config().Host
	if m.client.IsLocal() {
		server = "none (local driver)"
	}
	s.WriteString(syncLabelStyle.Render("Server") + server + "\n")
	s.WriteString(syncLabelStyle.Render("Auto-sync") + fmt.Sprint(m.client.Config().AutoSync) + "\n")
	if keys, err := m.client.Keys(); err == nil {
		s.WriteString(syncLabelStyle.Render("Keys") + fmt.Sprint(len(keys)) + "\n")
	}
	if m.syncInProgress {
		s.WriteString(syncSyncingStyle.Render("⟳ Syncing..."))
	} else {
		s.WriteString(syncIdleStyle.Render("✓ Idle"))
	}
	s.WriteString("\n\n")

	if len(m.syncMessages) > 0 {
		s.WriteString(syncHeaderStyle.Render("Recent Activity"))
		s.WriteString("\n\n")
		start := 0
		if len(m.syncMessages) > 5 {
			start = len(m.syncMessages) - 5
		}
		for _, msg := range m.syncMessages[start:] {
			s.WriteString(syncMessageStyle.Render("  " + msg))
			s.WriteString("\n")
		}
		s.WriteString("\n")
	}

	s.WriteString(m.renderSyncHelp())

	return s.String()
}

func (m Model) renderSyncHelp() string {
	help := []string{
		"Enter: Sync now",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleSyncKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.client == nil || m.syncInProgress {
			return m, nil
		}
		m.syncInProgress = true
		m.addSyncMessage("Starting sync...")
		return m, m.syncNow()
	case "esc":
		m.viewMode = ViewList
	}

	return m, nil
}

// syncNow runs the sync off the update loop.
func (m Model) syncNow() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return SyncCompleteMsg{Error: client.Sync()}
	}
}

func (m *Model) addSyncMessage(msg string) {
	timestamp := time.Now().Format("15:04:05")
	m.syncMessages = append(m.syncMessages, fmt.Sprintf("[%s] %s", timestamp, msg))
}

// handleSyncComplete reloads every section, since a sync can bring in
// documents written on another device.
func (m *Model) handleSyncComplete(msg SyncCompleteMsg) {
	m.syncInProgress = false
	if msg.Error != nil {
		m.addSyncMessage(fmt.Sprintf("✗ sync failed: %v", msg.Error))
		return
	}
	m.addSyncMessage("✓ sync completed")
	m.ws.Open()
}
