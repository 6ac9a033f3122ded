// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Full-screen editor over every proposal section plus the output view
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/harperreed/propkit/charm"
	"github.com/harperreed/propkit/importer"
	"github.com/harperreed/propkit/output"
	"github.com/harperreed/propkit/persist"
	"github.com/harperreed/propkit/prompt"
	"github.com/harperreed/propkit/section"
	"github.com/harperreed/propkit/storage"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewEdit
	ViewImport
	ViewConfirmDelete
	ViewSync
)

// Tabs after the list sections.
const (
	TabSummary = "summary"
	TabOutput  = "output"
)

// Model is the main bubbletea model
type Model struct {
	ws       *section.Workspace
	importer *importer.Importer
	view     *output.View
	notes    *prompt.Recorder
	client   *charm.Client

	viewMode ViewMode
	tab      int

	// List view state
	selectedRow int

	// Edit view state
	editID     string
	formFields []string
	formInputs []textinput.Model
	focusIndex int

	// Import view state
	pathInput textinput.Model

	// Delete confirmation state
	deleteLabel string

	// Sync view state
	syncInProgress bool
	syncMessages   []string

	// UI state
	status string
	width  int
	height int
}

// NewModel restores every section from backend. Notifications are kept for
// the status line instead of being logged.
func NewModel(backend storage.Backend, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	notes := &prompt.Recorder{}
	adapter := persist.New(backend, persist.WithNotifier(notes), persist.WithLogger(logger))
	ws := section.NewWorkspace(adapter)
	ws.Open()

	client, _ := backend.(*charm.Client)
	return Model{
		ws:       ws,
		importer: importer.New(ws, importer.WithNotifier(notes), importer.WithLogger(logger)),
		view:     output.New(adapter),
		notes:    notes,
		client:   client,
		viewMode: ViewList,
		width:    80,
		height:   24,
	}
}

// Run starts the full-screen program.
func Run(backend storage.Backend, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(backend, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case SyncCompleteMsg:
		m.handleSyncComplete(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewEdit:
		return m.renderEditView()
	case ViewImport:
		return m.renderImportView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	case ViewSync:
		return m.renderSyncView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Text inputs own every other key while they are open.
	if msg.String() == "q" && (m.viewMode == ViewList || m.viewMode == ViewSync) {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewImport:
		return m.handleImportKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ViewSync:
		return m.handleSyncKeys(msg)
	}

	return m, nil
}

// tabs lists the list sections in navigation order, then summary and output.
func (m Model) tabs() []string {
	var names []string
	for _, e := range m.ws.Editors() {
		names = append(names, e.Name())
	}
	return append(names, TabSummary, TabOutput)
}

func (m Model) currentTab() string {
	return m.tabs()[m.tab]
}

// editor returns the list section under the current tab, if it is one.
func (m Model) editor() (section.Editor, bool) {
	e, err := m.ws.Editor(m.currentTab())
	return e, err == nil
}

// setResult turns err, or the notifications raised by the last action, into
// the status line.
func (m *Model) setResult(err error) {
	msgs := m.notes.Drain()
	switch {
	case err != nil:
		m.status = "Error: " + err.Error()
	case len(msgs) > 0:
		m.status = msgs[0]
	default:
		m.status = ""
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)
