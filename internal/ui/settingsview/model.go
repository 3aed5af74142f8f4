package settingsview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/internal/theme"
)

// SettingsDoneMsg signals the parent that the settings form closed. Saved
// is false when the user aborted without applying changes.
type SettingsDoneMsg struct {
	Saved  bool
	Config *model.AppConfig
	Err    error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	baseURL    string
	theme      string
	daysBefore int
}

// Model is the settings screen. Submitting writes the configuration file
// and hands the updated config back to the parent.
type Model struct {
	configPath string
	config     *model.AppConfig
	form       *huh.Form
	fb         *formBindings
	width      int
	height     int
}

// New creates a settings model editing the config stored at configPath.
func New(configPath string, cfg *model.AppConfig, width, height int) Model {
	return Model{
		configPath: configPath,
		config:     cfg,
		fb:         &formBindings{},
		width:      width,
		height:     height,
	}
}

// Start initializes the form from the current configuration.
func (m *Model) Start() tea.Cmd {
	m.fb.baseURL = m.config.Server.BaseURL
	m.fb.theme = m.config.Display.Theme
	m.fb.daysBefore = m.config.Notifications.DefaultDaysBefore
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return SettingsDoneMsg{Saved: false} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	note := theme.HelpStyle.Render(
		"Notes and reminders for deleted assessments are cleaned up after each sync.")
	content := titleStyle.Render("Settings") + "\n" + m.form.View() + "\n" + note

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the settings view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	dayOpts := make([]huh.Option[int], len(model.DaysBeforeOptions))
	for i, d := range model.DaysBeforeOptions {
		label := fmt.Sprintf("%d days before", d)
		if d == 1 {
			label = "1 day before"
		}
		dayOpts[i] = huh.NewOption(label, d)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server URL").
				Placeholder("http://localhost:3000").
				Value(&m.fb.baseURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("server URL is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Auto", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&m.fb.theme),
			huh.NewSelect[int]().
				Title("Default reminder lead time").
				Options(dayOpts...).
				Value(&m.fb.daysBefore),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) save() tea.Cmd {
	cfg := *m.config
	cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(m.fb.baseURL), "/")
	cfg.Display.Theme = m.fb.theme
	cfg.Notifications.DefaultDaysBefore = m.fb.daysBefore

	path := m.configPath
	return func() tea.Msg {
		err := model.SaveConfig(path, &cfg)
		return SettingsDoneMsg{Saved: err == nil, Config: &cfg, Err: err}
	}
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
