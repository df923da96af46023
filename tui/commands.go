package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/models"
)

// copyStatusTTL is how long the copy confirmation stays on screen.
const copyStatusTTL = 2 * time.Second

// StatesLoadedMsg carries the state list, already resolved to the fallback on failure.
type StatesLoadedMsg struct {
	States []string
}

// AddDoneMsg is sent when an add request completes.
type AddDoneMsg struct {
	Result *client.AddResult
	Err    error
}

// SearchDoneMsg is sent when a search completes.
type SearchDoneMsg struct {
	Filter   models.SearchFilter
	Contacts []models.Contact
	Err      error
}

// DeleteDoneMsg is sent when a delete completes.
type DeleteDoneMsg struct {
	Number string
	Err    error
}

// CopyDoneMsg is sent when a clipboard write completes.
type CopyDoneMsg struct {
	Number string
	Err    error
}

type copyExpiredMsg struct {
	seq int
}

func (m Model) loadStates() tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		return StatesLoadedMsg{States: dir.States(context.Background())}
	}
}

func (m Model) addCmd(req models.AddRequest) tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		result, err := dir.Add(context.Background(), req)
		return AddDoneMsg{Result: result, Err: err}
	}
}

func (m Model) searchCmd(f models.SearchFilter) tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		contacts, err := dir.Search(context.Background(), f)
		return SearchDoneMsg{Filter: f, Contacts: contacts, Err: err}
	}
}

func (m Model) deleteCmd(number string) tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		return DeleteDoneMsg{Number: number, Err: dir.Delete(context.Background(), number)}
	}
}

func copyCmd(number string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{Number: number, Err: clipboardWriteAll(number)}
	}
}

func expireCopyStatus(seq int) tea.Cmd {
	return tea.Tick(copyStatusTTL, func(time.Time) tea.Msg {
		return copyExpiredMsg{seq: seq}
	})
}

func (m Model) handleAddDone(msg AddDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if msg.Err != nil {
		m.logger.Info("add failed", zap.Error(msg.Err))
		m.message = client.UserMessage(msg.Err, models.MsgAddFailed)
		return m, nil
	}

	m.message = models.MsgAdded
	m.resetAddForm()
	return m, m.updateFocus()
}

func (m Model) handleSearchDone(msg SearchDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if msg.Err != nil {
		m.logger.Info("search failed", zap.Error(msg.Err))
		m.message = client.UserMessage(msg.Err, models.MsgSearchFailed)
		return m, nil
	}

	m.results = &models.ResultSet{Filter: msg.Filter, Contacts: msg.Contacts}
	if m.selectedRow >= len(msg.Contacts) {
		m.selectedRow = 0
	}
	if len(msg.Contacts) == 0 {
		m.message = models.MsgNoResults
	}
	if m.focus == fieldResults && len(msg.Contacts) == 0 {
		m.focus = fieldSearchPlace
		return m, m.updateFocus()
	}
	return m, nil
}

func (m Model) handleDeleteDone(msg DeleteDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if msg.Err != nil {
		m.logger.Info("delete failed", zap.String("number", msg.Number), zap.Error(msg.Err))
		m.message = client.UserMessage(msg.Err, models.MsgDeleteFailed)
		return m, nil
	}

	m.message = models.MsgDeleted
	if m.results.Len() == 0 {
		return m, nil
	}

	// Refresh the rows on screen with the search that produced them.
	m.busy = true
	return m, m.searchCmd(m.lastFilter)
}

func (m Model) handleCopyDone(msg CopyDoneMsg) (tea.Model, tea.Cmd) {
	m.copySeq++

	if msg.Err != nil {
		m.logger.Info("copy failed", zap.Error(msg.Err))
		m.copyStatus = models.MsgCopyFailed
		return m, nil
	}

	m.copyStatus = models.MsgCopied
	return m, expireCopyStatus(m.copySeq)
}
