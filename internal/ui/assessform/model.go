package assessform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/assessment-calendar/internal/calendar"
	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/internal/theme"
)

// SubmitMsg is dispatched when the form is completed. EditID is zero for a
// newly created assessment.
type SubmitMsg struct {
	Input  model.AssessmentInput
	EditID int
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name        string
	description string
	submitDate  string
	color       string
}

// Model is the Bubble Tea model for the assessment create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int
	width    int
	height   int
}

// New creates a new assessment form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new assessment.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.name = ""
	m.fb.description = ""
	m.fb.submitDate = ""
	m.fb.color = model.DefaultColor
	m.form = m.buildForm()
	return m.form.Init()
}

// StartCreateOn initializes the create form with the due date prefilled,
// used when adding from a selected calendar day.
func (m *Model) StartCreateOn(dateKey string) tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.name = ""
	m.fb.description = ""
	m.fb.submitDate = dateKey
	m.fb.color = model.DefaultColor
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing assessment.
func (m *Model) StartEdit(a model.Assessment) tea.Cmd {
	m.editMode = true
	m.editID = a.ID
	m.fb.name = a.Name
	m.fb.description = a.Description
	m.fb.submitDate = calendar.ExtractKey(a.SubmitDate)
	m.fb.color = a.Color
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the assessment form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the assessment form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Assessment"
	if m.editMode {
		titleText = "Edit Assessment"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Assessment name").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.submitDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Color").
				Placeholder(model.DefaultColor).
				Value(&m.fb.color),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	in := model.AssessmentInput{
		Name:        strings.TrimSpace(m.fb.name),
		Description: m.fb.description,
		SubmitDate:  strings.TrimSpace(m.fb.submitDate),
		Color:       strings.TrimSpace(m.fb.color),
	}
	editID := 0
	if m.editMode {
		editID = m.editID
	}
	return func() tea.Msg { return SubmitMsg{Input: in, EditID: editID} }
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("due date is required")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
