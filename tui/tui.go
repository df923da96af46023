// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Add, search, copy and delete directory numbers from one full-screen view
package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/models"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Directory is the backend the TUI drives.
type Directory interface {
	States(ctx context.Context) []string
	Add(ctx context.Context, req models.AddRequest) (*client.AddResult, error)
	Search(ctx context.Context, f models.SearchFilter) ([]models.Contact, error)
	Delete(ctx context.Context, number string) error
}

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewMain ViewMode = iota
	ViewConfirmDelete
)

// AddMode selects which add form is shown.
type AddMode int

const (
	AddStructured AddMode = iota
	AddFreeText
)

// Model is the main bubbletea model. It owns all view state; network
// completions arrive as messages and are applied in Update.
type Model struct {
	dir      Directory
	logger   *zap.Logger
	viewMode ViewMode
	addMode  AddMode

	states []string

	// Form state
	inputs         [fieldCount]textinput.Model
	addStateIdx    int
	searchStateIdx int
	focus          field

	// Results state
	results     *models.ResultSet
	lastFilter  models.SearchFilter
	selectedRow int

	// Delete confirmation state
	pendingDelete string

	// Copy confirmation state
	copyStatus string
	copySeq    int

	// UI state
	busy    bool
	message string
	width   int
	height  int
}

// NewModel creates a new TUI model
func NewModel(dir Directory, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		dir:            dir,
		logger:         logger,
		viewMode:       ViewMain,
		addMode:        AddStructured,
		addStateIdx:    -1,
		searchStateIdx: -1,
		width:          80,
		height:         24,
	}
	m.initInputs()
	m.focus = fieldAddNumber
	m.updateFocus()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadStates())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case StatesLoadedMsg:
		m.states = msg.States
		return m, nil
	case AddDoneMsg:
		return m.handleAddDone(msg)
	case SearchDoneMsg:
		return m.handleSearchDone(msg)
	case DeleteDoneMsg:
		return m.handleDeleteDone(msg)
	case CopyDoneMsg:
		return m.handleCopyDone(msg)
	case copyExpiredMsg:
		if msg.seq == m.copySeq {
			m.copyStatus = ""
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewMain:
		return m.renderMainView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewMain:
		return m.handleMainKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

// Busy reports whether a request is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Message returns the status line currently shown.
func (m Model) Message() string {
	return m.message
}

// Results returns the rows on screen, or nil if no search has run.
func (m Model) Results() *models.ResultSet {
	return m.results
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	selectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
