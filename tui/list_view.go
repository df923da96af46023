package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderResultsTable() string {
	columns := []table.Column{
		{Title: "Number", Width: 12},
		{Title: "Place", Width: 22},
		{Title: "District", Width: 20},
		{Title: "State", Width: 16},
	}

	var rows []table.Row
	for _, c := range m.results.Contacts {
		rows = append(rows, table.Row{c.Number, c.Place, c.District, c.State})
	}

	height := m.height - 22
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(m.focus == fieldResults),
		table.WithHeight(height),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) selectedNumber() string {
	if m.results == nil || m.selectedRow >= len(m.results.Contacts) {
		return ""
	}
	return m.results.Contacts[m.selectedRow].Number
}

func (m Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < m.results.Len()-1 {
			m.selectedRow++
		}
	case "c":
		if number := m.selectedNumber(); number != "" {
			return m, copyCmd(number)
		}
	case "d", "delete":
		if m.busy {
			return m, nil
		}
		if number := m.selectedNumber(); number != "" {
			m.pendingDelete = number
			m.viewMode = ViewConfirmDelete
		}
	case "q":
		return m, tea.Quit
	}

	return m, nil
}
