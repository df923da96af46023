package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/mobiledir/client"
	"github.com/harperreed/mobiledir/compose"
	"github.com/harperreed/mobiledir/models"
)

// field identifies one focusable control.
type field int

const (
	fieldAddNumber field = iota
	fieldAddPlace
	fieldAddDistrict
	fieldAddState
	fieldAddText
	fieldSearchPlace
	fieldSearchDistrict
	fieldSearchState
	fieldResults
	fieldCount
)

func (f field) isAdd() bool {
	return f <= fieldAddText
}

func (f field) isSearch() bool {
	return f >= fieldSearchPlace && f <= fieldSearchState
}

func (f field) isStateSelector() bool {
	return f == fieldAddState || f == fieldSearchState
}

func (f field) isText() bool {
	return f != fieldResults && !f.isStateSelector() && f < fieldCount
}

func (m *Model) initInputs() {
	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		return in
	}

	m.inputs[fieldAddNumber] = newInput("10-digit mobile number", 20)
	m.inputs[fieldAddPlace] = newInput("Place (e.g., Gandhipuram)", 100)
	m.inputs[fieldAddDistrict] = newInput("District (e.g., Coimbatore)", 100)
	m.inputs[fieldAddText] = newInput("Number and place (e.g., 9876543210 Gandhipuram)", 200)
	m.inputs[fieldSearchPlace] = newInput("Place", 100)
	m.inputs[fieldSearchDistrict] = newInput("District", 100)
}

// fields lists the focusable controls in tab order.
func (m Model) fields() []field {
	var fs []field
	if m.addMode == AddFreeText {
		fs = append(fs, fieldAddText)
	} else {
		fs = append(fs, fieldAddNumber, fieldAddPlace, fieldAddDistrict, fieldAddState)
	}
	fs = append(fs, fieldSearchPlace, fieldSearchDistrict, fieldSearchState)
	if m.results.Len() > 0 {
		fs = append(fs, fieldResults)
	}
	return fs
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	fs := m.fields()
	idx := 0
	for i, f := range fs {
		if f == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(fs)) % len(fs)
	m.focus = fs[idx]
	return m.updateFocus()
}

func (m *Model) updateFocus() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if field(i) == m.focus && field(i).isText() {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.viewMode != ViewMain || !m.focus.isText() {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) selectedState(idx int) string {
	if idx < 0 || idx >= len(m.states) {
		return ""
	}
	return m.states[idx]
}

// cycleState steps a selector through "none" and every loaded state.
func (m Model) cycleState(idx, delta int) int {
	n := len(m.states) + 1
	pos := (idx + 1 + delta + n) % n
	return pos - 1
}

func (m *Model) resetAddForm() {
	m.inputs[fieldAddNumber].Reset()
	m.inputs[fieldAddPlace].Reset()
	m.inputs[fieldAddDistrict].Reset()
	m.inputs[fieldAddText].Reset()
	m.addStateIdx = -1
}

func (m *Model) resetSearchForm() {
	m.inputs[fieldSearchPlace].Reset()
	m.inputs[fieldSearchDistrict].Reset()
	m.searchStateIdx = -1
}

func (m Model) searchFilter() models.SearchFilter {
	return models.SearchFilter{
		Place:    m.inputs[fieldSearchPlace].Value(),
		District: m.inputs[fieldSearchDistrict].Value(),
		State:    m.selectedState(m.searchStateIdx),
	}
}

func (m Model) composeAdd() (models.AddRequest, error) {
	if m.addMode == AddFreeText {
		return compose.FreeText(m.inputs[fieldAddText].Value())
	}
	return compose.Entry(
		m.inputs[fieldAddNumber].Value(),
		m.inputs[fieldAddPlace].Value(),
		m.inputs[fieldAddDistrict].Value(),
		m.selectedState(m.addStateIdx),
	)
}

func (m Model) submitAdd() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.message = ""

	req, err := m.composeAdd()
	if err != nil {
		m.message = client.UserMessage(err, models.MsgAddFailed)
		return m, nil
	}

	m.busy = true
	return m, m.addCmd(req)
}

func (m Model) submitSearch(f models.SearchFilter) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.message = ""
	m.busy = true
	m.lastFilter = f
	return m, m.searchCmd(f)
}

// showAll clears every filter and lists the whole directory.
func (m Model) showAll() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.resetSearchForm()
	return m.submitSearch(models.SearchFilter{})
}

func (m Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		cmd := m.moveFocus(1)
		return m, cmd
	case "shift+tab":
		cmd := m.moveFocus(-1)
		return m, cmd
	case "ctrl+t":
		if m.addMode == AddStructured {
			m.addMode = AddFreeText
			m.focus = fieldAddText
		} else {
			m.addMode = AddStructured
			m.focus = fieldAddNumber
		}
		return m, m.updateFocus()
	case "ctrl+a":
		return m.showAll()
	case "enter":
		switch {
		case m.focus.isAdd():
			return m.submitAdd()
		case m.focus.isSearch():
			return m.submitSearch(m.searchFilter())
		}
		return m, nil
	}

	switch {
	case m.focus.isStateSelector():
		return m.handleStateKeys(msg)
	case m.focus == fieldResults:
		return m.handleResultsKeys(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleStateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	delta := 0
	switch msg.String() {
	case "right", "l", " ":
		delta = 1
	case "left", "h":
		delta = -1
	default:
		return m, nil
	}

	if m.focus == fieldAddState {
		m.addStateIdx = m.cycleState(m.addStateIdx, delta)
	} else {
		m.searchStateIdx = m.cycleState(m.searchStateIdx, delta)
	}
	return m, nil
}

func (m Model) renderMainView() string {
	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("MOBILE DIRECTORY"))
	s.WriteString("\n")

	// Add form
	s.WriteString(sectionStyle.Render("Add mobile number"))
	if m.addMode == AddFreeText {
		s.WriteString(dimStyle.Render("  (free text • ctrl+t: separate fields)"))
	} else {
		s.WriteString(dimStyle.Render("  (ctrl+t: free text)"))
	}
	s.WriteString("\n")
	if m.addMode == AddFreeText {
		s.WriteString(m.renderInput(fieldAddText))
	} else {
		s.WriteString(m.renderInput(fieldAddNumber))
		s.WriteString(m.renderInput(fieldAddPlace))
		s.WriteString(m.renderInput(fieldAddDistrict))
		s.WriteString(m.renderSelector(fieldAddState, m.addStateIdx, models.MsgSelectState))
	}
	s.WriteString("\n")

	// Search form
	s.WriteString(sectionStyle.Render("Search by place, district, or state"))
	s.WriteString("\n")
	s.WriteString(m.renderInput(fieldSearchPlace))
	s.WriteString(m.renderInput(fieldSearchDistrict))
	s.WriteString(m.renderSelector(fieldSearchState, m.searchStateIdx, models.MsgAnyState))
	s.WriteString("\n")

	// Status
	if m.busy {
		s.WriteString(dimStyle.Render("Working..."))
		s.WriteString("\n")
	}
	if m.message != "" {
		s.WriteString(messageStyle.Render(m.message))
		s.WriteString("\n")
	}
	if m.copyStatus != "" {
		s.WriteString(successStyle.Render(m.copyStatus))
		s.WriteString("\n")
	}

	// Results
	if m.results.Len() > 0 {
		s.WriteString("\n")
		s.WriteString(m.renderResultsTable())
		s.WriteString("\n")
	}

	s.WriteString(m.renderMainHelp())

	return s.String()
}

func (m Model) cursor(f field) string {
	if f == m.focus {
		return "> "
	}
	return "  "
}

func (m Model) renderInput(f field) string {
	return m.cursor(f) + m.inputs[f].View() + "\n"
}

func (m Model) renderSelector(f field, idx int, none string) string {
	label := m.selectedState(idx)
	if label == "" {
		label = none
	}
	return m.cursor(f) + "State: " + selectorStyle.Render("‹ "+label+" ›") + "\n"
}

func (m Model) renderMainHelp() string {
	help := []string{
		"Tab: Next field",
		"Enter: Add/Search",
		"←/→: Pick state",
		"ctrl+a: Show all",
		"ctrl+c: Quit",
	}
	if m.focus == fieldResults {
		help = []string{
			"↑/↓: Navigate",
			"c: Copy",
			"d: Delete",
			"Tab: Next field",
			"q: Quit",
		}
	}
	return helpStyle.Render(strings.Join(help, " • "))
}
