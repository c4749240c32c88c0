package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pdxmph/user-manager-tui/internal/session"
)

// Form field indices
const (
	FieldFirstName = iota
	FieldLastName
	FieldEmail
	FieldCount // Total number of fields
)

var fieldLabels = []string{
	"First name: ",
	"Last name:  ",
	"Email:      ",
}

// Params configures a new Model
type Params struct {
	Session *session.Session
	Accent  string // lipgloss color for the selection bar
	Logger  *slog.Logger
}

// statusListener keeps the latest hub message for the status line
type statusListener struct {
	message string
}

func (l *statusListener) Notify(message string) {
	l.message = message
}

// Model represents the main application state
type Model struct {
	session *session.Session
	status  *statusListener
	logger  *slog.Logger

	selected int
	width    int
	height   int

	// Form mode
	formMode   bool
	formField  int
	formInputs []textinput.Model
	formErr    string

	// Search mode
	searchMode bool
	search     textinput.Model

	// Error log overlay
	errorsMode bool

	// notice is a one-shot line from the UI itself, cleared on the next key
	notice string

	selectedStyle lipgloss.Style
}

// Styles
var (
	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// New creates a new application model and subscribes it to the session hub
func New(p Params) Model {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	accent := p.Accent
	if accent == "" {
		accent = "62"
	}

	// Setup search input
	ti := textinput.New()
	ti.Placeholder = "Search by email..."
	ti.Width = 30
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.PromptStyle = mutedStyle
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// Setup form inputs
	formInputs := make([]textinput.Model, FieldCount)
	for i := range formInputs {
		formInputs[i] = textinput.New()
		formInputs[i].Width = 40
		formInputs[i].CharLimit = 200
		formInputs[i].Prompt = ""
	}
	formInputs[FieldFirstName].Placeholder = "First name"
	formInputs[FieldLastName].Placeholder = "Last name"
	formInputs[FieldEmail].Placeholder = "name@example.com"

	status := &statusListener{}
	p.Session.Hub().Subscribe(status)

	return Model{
		session:    p.Session,
		status:     status,
		logger:     logger,
		search:     ti,
		formInputs: formInputs,
		selectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color(accent)).
			Foreground(lipgloss.Color("230")),
	}
}

// Close detaches the model from the session hub
func (m Model) Close() {
	m.session.Hub().Unsubscribe(m.status)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Selected returns the index of the highlighted user
func (m Model) Selected() int { return m.selected }

// FormOpen reports whether the add form is showing
func (m Model) FormOpen() bool { return m.formMode }

// SearchOpen reports whether the search input has focus
func (m Model) SearchOpen() bool { return m.searchMode }

// ErrorsOpen reports whether the error log overlay is showing
func (m Model) ErrorsOpen() bool { return m.errorsMode }

// Status returns the text shown on the status line
func (m Model) Status() string {
	if m.notice != "" {
		return m.notice
	}
	return m.status.message
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.width > 0 {
			m.search.Width = m.width/3 - 6
		}
		return m, nil

	case tea.KeyMsg:
		m.notice = ""

		if m.errorsMode {
			return m.updateErrors(msg)
		}
		if m.formMode {
			return m.updateForm(msg)
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateErrors(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "E", "q", "enter":
		m.errorsMode = false
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Keep typed values so reopening the form resumes where we left off
		m.formMode = false
		m.formErr = ""
		m.formInputs[m.formField].Blur()
		return m, nil

	case "enter":
		m.syncFields()
		_, err := m.session.Submit()
		if err != nil {
			var verr *session.ValidationError
			if errors.As(err, &verr) {
				m.formErr = verr.Message
			} else {
				m.formErr = err.Error()
			}
			return m, nil
		}

		for i := range m.formInputs {
			m.formInputs[i].Reset()
			m.formInputs[i].Blur()
		}
		m.formMode = false
		m.formField = 0
		m.formErr = ""
		m.selected = len(m.session.Displayed()) - 1
		return m, nil

	case "tab", "down":
		if m.formField < FieldCount-1 {
			m.formInputs[m.formField].Blur()
			m.formField++
			m.formInputs[m.formField].Focus()
		}
		return m, textinput.Blink

	case "shift+tab", "up":
		if m.formField > 0 {
			m.formInputs[m.formField].Blur()
			m.formField--
			m.formInputs[m.formField].Focus()
		}
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.formInputs[m.formField], cmd = m.formInputs[m.formField].Update(msg)
	m.syncFields()
	return m, cmd
}

// syncFields copies the form inputs into the session's working fields
func (m Model) syncFields() {
	m.session.FirstName = m.formInputs[FieldFirstName].Value()
	m.session.LastName = m.formInputs[FieldLastName].Value()
	m.session.Email = m.formInputs[FieldEmail].Value()
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.search.Reset()
		m.search.Blur()
		m.session.Search("")
		m.selected = m.ensureValidSelection()
		return m, nil
	case "enter":
		m.searchMode = false
		m.search.Blur()
		m.session.Search(m.search.Value())
		m.selected = m.ensureValidSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selected < len(m.session.Displayed())-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "n":
		m.formMode = true
		m.formField = 0
		m.formErr = ""
		// Pick up whatever is left in the working fields from a previous attempt
		m.formInputs[FieldFirstName].SetValue(m.session.FirstName)
		m.formInputs[FieldLastName].SetValue(m.session.LastName)
		m.formInputs[FieldEmail].SetValue(m.session.Email)
		m.formInputs[FieldFirstName].Focus()
		return m, textinput.Blink

	case "/":
		m.searchMode = true
		m.search.Focus()
		return m, textinput.Blink

	case "esc":
		if m.search.Value() != "" {
			m.search.Reset()
			m.session.Search("")
			m.selected = m.ensureValidSelection()
		}

	case "a":
		m.session.Sort(true)
		m.selected = m.ensureValidSelection()

	case "d":
		m.session.Sort(false)
		m.selected = m.ensureValidSelection()

	case "E":
		m.session.ShowErrors()
		m.errorsMode = true

	case "y":
		displayed := m.session.Displayed()
		if len(displayed) > 0 && m.selected < len(displayed) {
			email := displayed[m.selected].Email()
			if err := clipboard.WriteAll(email); err != nil {
				m.logger.Warn("copy to clipboard failed", "error", err)
				m.notice = "Could not copy: " + err.Error()
			} else {
				m.notice = "Copied " + email
			}
		}
	}

	return m, nil
}

// ensureValidSelection ensures the current selection is within bounds
func (m Model) ensureValidSelection() int {
	n := len(m.session.Displayed())
	if n == 0 {
		return 0
	}
	if m.selected >= n {
		return n - 1
	}
	if m.selected < 0 {
		return 0
	}
	return m.selected
}

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.errorsMode {
		return m.renderErrors()
	}
	if m.formMode {
		return m.renderForm()
	}

	listWidth := m.width / 3
	detailWidth := m.width - listWidth - 3

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(listWidth).Height(m.height-4).Render(m.renderList(listWidth, m.height-4)),
		borderStyle.Width(detailWidth).Height(m.height-4).Render(m.renderDetail(detailWidth)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatus(), m.renderHelp())
}

// renderList renders the user list
func (m Model) renderList(width, height int) string {
	var lines []string

	if m.searchMode {
		lines = append(lines, m.search.View(), "")
		height -= 2
	}

	displayed := m.session.Displayed()
	total := len(m.session.Users())

	header := fmt.Sprintf("Users (%d)", len(displayed))
	if len(displayed) != total {
		header = fmt.Sprintf("Users (%d of %d)", len(displayed), total)
	}
	if q := m.search.Value(); q != "" && !m.searchMode {
		header += " [" + q + "]"
	}
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("─", max(width-2, 0)))

	visibleHeight := height - 2
	startIdx := 0
	if m.selected >= visibleHeight {
		startIdx = m.selected - visibleHeight + 1
	}

	for i := startIdx; i < len(displayed) && i < startIdx+visibleHeight; i++ {
		line := truncate.StringWithTail(displayed[i].String(), uint(max(width-4, 1)), "…")
		if i == m.selected {
			line = m.selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	if len(displayed) == 0 {
		lines = append(lines, mutedStyle.Render("No users. Press n to add one."))
	}

	return strings.Join(lines, "\n")
}

// renderDetail renders the selected user
func (m Model) renderDetail(width int) string {
	displayed := m.session.Displayed()
	if len(displayed) == 0 || m.selected >= len(displayed) {
		return "No user selected"
	}

	u := displayed[m.selected]
	lines := []string{
		u.FirstName() + " " + u.LastName(),
		strings.Repeat("─", max(width-2, 0)),
		"",
		fmt.Sprintf("First name: %s", u.FirstName()),
		fmt.Sprintf("Last name:  %s", u.LastName()),
		fmt.Sprintf("Email:      %s", u.Email()),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	status := m.Status()
	if status == session.MsgErrorOccurred {
		return " " + errorStyle.Render(status)
	}
	return " " + statusStyle.Render(status)
}

// renderHelp renders the help line
func (m Model) renderHelp() string {
	if m.searchMode {
		return " Type to search • Enter: search • Esc: clear"
	}

	help := " j/k: navigate • n: new • /: search • a/d: sort asc/desc • E: errors • y: copy email"
	if m.search.Value() != "" {
		help += " • Esc: clear search"
	}
	help += " • q: quit"
	return help
}

// renderForm renders the add-user overlay
func (m Model) renderForm() string {
	var lines []string
	lines = append(lines, "Add User")
	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, "")

	for i, label := range fieldLabels {
		var fieldView string
		if i == m.formField {
			fieldView = label + m.formInputs[i].View()
		} else {
			value := m.formInputs[i].Value()
			if value == "" {
				value = mutedStyle.Render(m.formInputs[i].Placeholder)
			}
			fieldView = label + value
		}
		lines = append(lines, fieldView, "")
	}

	if m.formErr != "" {
		lines = append(lines, errorStyle.Render(m.formErr), "")
	}

	lines = append(lines, "Tab/↓: next • Shift+Tab/↑: prev • Enter: save • Esc: cancel")

	return m.centered(borderStyle.
		Padding(1).
		Width(60).
		Background(lipgloss.Color("235")).
		Render(strings.Join(lines, "\n")))
}

// renderErrors renders the error log overlay
func (m Model) renderErrors() string {
	width := min(80, max(m.width-8, 20))

	var lines []string
	lines = append(lines, fmt.Sprintf("Error Log (%d)", len(m.session.Errors())))
	lines = append(lines, strings.Repeat("─", width-4))
	lines = append(lines, "")
	lines = append(lines, wordwrap.String(m.session.ErrorLog(), width-4))
	lines = append(lines, "")
	lines = append(lines, "Esc: close")

	return m.centered(borderStyle.
		Padding(1).
		Width(width).
		Background(lipgloss.Color("235")).
		Render(strings.Join(lines, "\n")))
}

func (m Model) centered(box string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}
