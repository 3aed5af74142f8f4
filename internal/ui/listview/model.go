package listview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/assessment-calendar/internal/calendar"
	"github.com/nhle/assessment-calendar/internal/keys"
	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/internal/theme"
)

// NewRequestMsg signals the parent to open the create form.
type NewRequestMsg struct{}

// EditRequestMsg signals the parent to open the edit form for an assessment.
type EditRequestMsg struct {
	Assessment model.Assessment
}

// DeleteConfirmedMsg signals the parent that the user confirmed deletion.
type DeleteConfirmedMsg struct {
	Assessment model.Assessment
}

type listMode int

const (
	modeList listMode = iota
	modeConfirmDelete
)

type formBindings struct {
	confirm bool
}

// Model shows every assessment ordered by due date. The data itself is
// owned by the parent and pushed in via SetAssessments after each fetch.
type Model struct {
	mode        listMode
	keys        *keys.KeyMap
	assessments []model.Assessment
	selectedIdx int
	confirmForm *huh.Form
	fb          *formBindings
	statusMsg   string
	errMsg      string
	width       int
	height      int
}

// New creates a new list view model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:  modeList,
		keys:  k,
		fb:    &formBindings{},
		width: width, height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetAssessments replaces the displayed data, clamping the cursor.
func (m *Model) SetAssessments(rows []model.Assessment) {
	m.assessments = rows
	if m.selectedIdx >= len(rows) && m.selectedIdx > 0 {
		m.selectedIdx = len(rows) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

// SetError shows a fetch error banner; pass "" to clear it.
func (m *Model) SetError(msg string) {
	m.errMsg = msg
}

// SetStatus shows a transient status line.
func (m *Model) SetStatus(msg string) {
	m.statusMsg = msg
}

// CapturingInput reports whether the delete confirmation owns the keyboard.
func (m Model) CapturingInput() bool {
	return m.mode == modeConfirmDelete
}

// Selected returns the assessment under the cursor.
func (m Model) Selected() (model.Assessment, bool) {
	if len(m.assessments) == 0 || m.selectedIdx >= len(m.assessments) {
		return model.Assessment{}, false
	}
	return m.assessments[m.selectedIdx], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeList:
			return m.handleListKey(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
	}

	if m.mode == modeConfirmDelete {
		return m.updateConfirm(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.assessments) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.assessments)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.assessments) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.assessments) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewRequestMsg{} }

	case key.Matches(msg, m.keys.Edit):
		a, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditRequestMsg{Assessment: a} }

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.Selected(); !ok {
			return m, nil
		}
		m.fb.confirm = false
		m.confirmForm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirmForm.Init()
	}
	return m, nil
}

func (m Model) buildConfirmForm() *huh.Form {
	name := ""
	if a, ok := m.Selected(); ok {
		name = a.Name
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete assessment %q?", name)).
				Description("Its local notes and reminder settings go with it.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}
	if m.confirmForm.State == huh.StateCompleted {
		m.mode = modeList
		if m.fb.confirm {
			if a, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteConfirmedMsg{Assessment: a} }
			}
		}
		return m, nil
	}
	if m.confirmForm.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the list.
func (m Model) View() string {
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)
	b.WriteString(titleStyle.Render("Assessments"))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(theme.ColorRed).Bold(true)
		b.WriteString(errStyle.Render("⚠ " + m.errMsg))
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("Press 'r' to retry."))
		b.WriteString("\n\n")
	}

	if len(m.assessments) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render("No assessments yet. Press 'a' to create one."))
	} else {
		today := calendar.LocalKey(time.Now())
		for i, a := range m.assessments {
			label := fmt.Sprintf("%s %s  %s",
				theme.Dot(a.Color),
				calendar.DisplayKey(a.SubmitDate),
				a.Name,
			)
			if calendar.ExtractKey(a.SubmitDate) == today {
				label += "  (today)"
			}

			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Italic(true).Render(m.statusMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorGray).Render(
		"a add | e edit | d delete | r refresh | 1 calendar | esc back",
	))

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
