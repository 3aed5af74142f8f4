package calendarview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/assessment-calendar/internal/calendar"
	"github.com/nhle/assessment-calendar/internal/keys"
	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/internal/store"
	"github.com/nhle/assessment-calendar/internal/theme"
)

// NewOnDayMsg signals the parent to open the create form prefilled with a
// due date.
type NewOnDayMsg struct {
	DateKey string
}

// EditRequestMsg signals the parent to open the edit form for an assessment.
type EditRequestMsg struct {
	Assessment model.Assessment
}

type localDataLoadedMsg struct {
	notes map[int]string
	prefs map[int]model.NotificationPreference
}

type noteSavedMsg struct {
	assessmentID int
	notes        string
	err          error
}

type prefSavedMsg struct {
	pref model.NotificationPreference
	err  error
}

// weekdayLabels are the column headers, Sunday first to match the grid.
var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// cellWidth is the rendered width of one day cell, padding included.
const cellWidth = 5

// Model renders the rolling 77-day window as a week-aligned grid with a
// detail panel for the selected day. Assessment data is pushed in by the
// parent after each fetch; notes and notification preferences are read from
// the local store.
type Model struct {
	store store.Store
	keys  *keys.KeyMap

	days        []model.CalendarDay
	weeks       [][]*model.CalendarDay
	assessments []model.Assessment
	notes       map[int]string
	prefs       map[int]model.NotificationPreference

	cursor     int
	detailOpen bool
	detailIdx  int

	editingNotes bool
	noteInput    textinput.Model

	statusMsg string
	width     int
	height    int
}

// New creates a calendar view centered on today.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Notes for this assessment..."
	ti.CharLimit = 500

	m := Model{
		store:     s,
		keys:      k,
		notes:     map[int]string{},
		prefs:     map[int]model.NotificationPreference{},
		noteInput: ti,
		width:     width,
		height:    height,
	}
	m.rebuildWindow(time.Now())
	return m
}

// Init loads notes and preferences from the local store.
func (m Model) Init() tea.Cmd {
	return m.loadLocalData()
}

// rebuildWindow recomputes the 77-day window around today, keeping the
// cursor on the same date when it is still visible.
func (m *Model) rebuildWindow(today time.Time) {
	var prevKey string
	if m.cursor < len(m.days) {
		prevKey = calendar.LocalKey(m.days[m.cursor].Date)
	}

	m.days = calendar.Window(today)
	m.weeks = calendar.Weeks(m.days)

	m.cursor = calendar.DaysBack
	for i, d := range m.days {
		if calendar.LocalKey(d.Date) == prevKey {
			m.cursor = i
			break
		}
	}
}

// SetAssessments replaces the displayed data and refreshes the window so a
// client left running overnight rolls forward to the new today.
func (m *Model) SetAssessments(rows []model.Assessment) {
	m.assessments = rows
	m.rebuildWindow(time.Now())
	if m.detailIdx >= len(m.selectedDayAssessments()) {
		m.detailIdx = 0
	}
}

// ReloadLocalData re-reads notes and preferences, e.g. after the parent
// reconciled the local store against a fresh fetch.
func (m Model) ReloadLocalData() tea.Cmd {
	return m.loadLocalData()
}

// CapturingInput reports whether the notes editor owns the keyboard, so
// the parent keeps global shortcuts out of the way.
func (m Model) CapturingInput() bool {
	return m.editingNotes
}

// SelectedDay returns the day under the cursor.
func (m Model) SelectedDay() model.CalendarDay {
	return m.days[m.cursor]
}

func (m Model) selectedDayAssessments() []model.Assessment {
	return calendar.AssessmentsOn(m.assessments, m.days[m.cursor])
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case localDataLoadedMsg:
		m.notes = msg.notes
		m.prefs = msg.prefs
		return m, nil

	case noteSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving notes: %v", msg.err)
			return m, nil
		}
		if msg.notes == "" {
			delete(m.notes, msg.assessmentID)
		} else {
			m.notes[msg.assessmentID] = msg.notes
		}
		m.statusMsg = "Notes saved"
		return m, nil

	case prefSavedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving preference: %v", msg.err)
			return m, nil
		}
		m.prefs[msg.pref.AssessmentID] = msg.pref
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editingNotes {
		var cmd tea.Cmd
		m.noteInput, cmd = m.noteInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editingNotes {
		return m.handleNotesKey(msg)
	}
	if m.detailOpen {
		return m.handleDetailKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(m.days)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor-calendar.WeekWidth >= 0 {
			m.cursor -= calendar.WeekWidth
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor+calendar.WeekWidth < len(m.days) {
			m.cursor += calendar.WeekWidth
		}
	case key.Matches(msg, m.keys.Select):
		m.detailOpen = true
		m.detailIdx = 0
		m.statusMsg = ""
	case key.Matches(msg, m.keys.New):
		day := m.days[m.cursor]
		return m, func() tea.Msg { return NewOnDayMsg{DateKey: calendar.LocalKey(day.Date)} }
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	due := m.selectedDayAssessments()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.detailOpen = false
		m.statusMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if len(due) > 0 {
			m.detailIdx = (m.detailIdx + 1) % len(due)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(due) > 0 {
			m.detailIdx--
			if m.detailIdx < 0 {
				m.detailIdx = len(due) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		day := m.days[m.cursor]
		return m, func() tea.Msg { return NewOnDayMsg{DateKey: calendar.LocalKey(day.Date)} }

	case key.Matches(msg, m.keys.Edit):
		if m.detailIdx < len(due) {
			a := due[m.detailIdx]
			return m, func() tea.Msg { return EditRequestMsg{Assessment: a} }
		}
		return m, nil

	case key.Matches(msg, m.keys.EditNotes):
		if m.detailIdx < len(due) {
			m.editingNotes = true
			m.noteInput.SetValue(m.notes[due[m.detailIdx].ID])
			m.noteInput.Focus()
			return m, textinput.Blink
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleNotify):
		if m.detailIdx < len(due) {
			pref := m.prefFor(due[m.detailIdx].ID)
			pref.Enabled = !pref.Enabled
			return m, m.savePref(pref)
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleDays):
		if m.detailIdx < len(due) {
			pref := m.prefFor(due[m.detailIdx].ID)
			pref.DaysBefore = model.NextDaysBefore(pref.DaysBefore)
			return m, m.savePref(pref)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editingNotes = false
		m.noteInput.Blur()
		due := m.selectedDayAssessments()
		if m.detailIdx < len(due) {
			return m, m.saveNote(due[m.detailIdx].ID, strings.TrimSpace(m.noteInput.Value()))
		}
		return m, nil

	case "esc":
		m.editingNotes = false
		m.noteInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// prefFor returns the stored preference for an assessment, or the default
// when the toggle has never been touched.
func (m Model) prefFor(assessmentID int) model.NotificationPreference {
	if p, ok := m.prefs[assessmentID]; ok {
		return p
	}
	return model.DefaultPreference(assessmentID)
}

// View renders the grid with the detail panel underneath when open.
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render(m.monthLabel()))
	b.WriteString("\n\n")

	b.WriteString(m.renderWeekHeader())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())

	if m.detailOpen {
		b.WriteString("\n")
		b.WriteString(m.renderDetail())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// monthLabel names the month and year of the day under the cursor.
func (m Model) monthLabel() string {
	d := m.days[m.cursor]
	return fmt.Sprintf("%s %d", d.Month.String(), d.Year)
}

func (m Model) renderWeekHeader() string {
	cells := make([]string, len(weekdayLabels))
	for i, l := range weekdayLabels {
		cells[i] = theme.WeekHeaderStyle.Width(cellWidth).Align(lipgloss.Center).Render(l)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) renderGrid() string {
	var rows []string
	idx := 0

	for _, week := range m.weeks {
		cells := make([]string, len(week))
		for col, day := range week {
			if day == nil {
				cells[col] = theme.EmptyCellStyle.Width(cellWidth).Render(" ")
				continue
			}

			label := fmt.Sprintf("%2d", day.Day)
			if due := calendar.AssessmentsOn(m.assessments, *day); len(due) > 0 {
				label += theme.Dot(due[0].Color)
			} else {
				label += " "
			}

			style := theme.DayCellStyle
			switch {
			case idx == m.cursor:
				style = theme.SelectedDayStyle
			case day.IsToday:
				style = theme.TodayStyle
			}
			cells[col] = style.Width(cellWidth).Render(label)
			idx++
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderDetail() string {
	day := m.days[m.cursor]
	due := m.selectedDayAssessments()

	var b strings.Builder

	dateStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	b.WriteString(dateStyle.Render(calendar.DisplayKey(calendar.LocalKey(day.Date))))
	b.WriteString("\n\n")

	if len(due) == 0 {
		b.WriteString(theme.HelpStyle.Render("Nothing due on this day. Press 'a' to add an assessment."))
	}

	now := time.Now()
	for i, a := range due {
		header := fmt.Sprintf("%s %s", theme.Dot(a.Color), a.Name)
		if i == m.detailIdx {
			b.WriteString(theme.SelectedItemStyle.Render(header))
		} else {
			b.WriteString(theme.ListItemStyle.Render(header))
		}
		b.WriteString("\n")

		if a.Description != "" {
			b.WriteString(theme.ListItemStyle.Render(a.Description))
			b.WriteString("\n")
		}

		if i == m.detailIdx && m.editingNotes {
			b.WriteString(theme.ListItemStyle.Render("Notes: " + m.noteInput.View()))
			b.WriteString("\n")
		} else if n := m.notes[a.ID]; n != "" {
			b.WriteString(theme.ListItemStyle.Render("Notes: " + n))
			b.WriteString("\n")
		}

		pref := m.prefFor(a.ID)
		if pref.Enabled {
			line := fmt.Sprintf("Reminder on (%dd before): %s",
				pref.DaysBefore, calendar.TimingMessage(a.SubmitDate, pref.DaysBefore, now))
			b.WriteString(theme.ListItemStyle.Render(theme.NotificationStyle(true).Render(line)))
		} else {
			b.WriteString(theme.ListItemStyle.Render(theme.NotificationStyle(false).Render("Reminder off")))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hints := "n notes | t reminder | b lead time | e edit | a add | esc close"
	if m.editingNotes {
		hints = "enter save | esc cancel"
	}
	b.WriteString(theme.HelpStyle.Render(hints))

	return theme.DetailPanelStyle.Width(m.detailWidth()).Render(b.String())
}

func (m Model) detailWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) loadLocalData() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		notes := map[int]string{}
		if rows, err := s.GetNotes(context.Background()); err == nil {
			for _, n := range rows {
				notes[n.AssessmentID] = n.Notes
			}
		}

		prefs := map[int]model.NotificationPreference{}
		if rows, err := s.GetPreferences(context.Background()); err == nil {
			for _, p := range rows {
				prefs[p.AssessmentID] = p
			}
		}

		return localDataLoadedMsg{notes: notes, prefs: prefs}
	}
}

func (m Model) saveNote(assessmentID int, notes string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		var err error
		if notes == "" {
			err = s.DeleteNote(context.Background(), assessmentID)
		} else {
			err = s.SaveNote(context.Background(), model.AssessmentNote{
				AssessmentID: assessmentID,
				Notes:        notes,
			})
		}
		return noteSavedMsg{assessmentID: assessmentID, notes: notes, err: err}
	}
}

func (m Model) savePref(pref model.NotificationPreference) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.UpsertPreference(context.Background(), pref)
		return prefSavedMsg{pref: pref, err: err}
	}
}
