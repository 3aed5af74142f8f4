// Package app wires the screens, the API client, the local store, and the
// background refresher into the root Bubble Tea model.
package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/assessment-calendar/internal/api"
	"github.com/nhle/assessment-calendar/internal/keys"
	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/internal/store"
	appsync "github.com/nhle/assessment-calendar/internal/sync"
	"github.com/nhle/assessment-calendar/internal/ui"
	"github.com/nhle/assessment-calendar/internal/ui/assessform"
	"github.com/nhle/assessment-calendar/internal/ui/calendarview"
	"github.com/nhle/assessment-calendar/internal/ui/helpview"
	"github.com/nhle/assessment-calendar/internal/ui/listview"
	"github.com/nhle/assessment-calendar/internal/ui/settingsview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewCalendar ViewState = iota
	ViewList
	ViewForm
	ViewSettings
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the API client and the local store.
type Model struct {
	currentView  ViewState
	previousView ViewState

	layout ui.Layout
	keys   *keys.KeyMap

	config     *model.AppConfig
	configPath string

	client    *api.Client
	store     store.Store
	refresher *appsync.Refresher

	calendarView calendarview.Model
	listView     listview.Model
	formView     assessform.Model
	settingsView settingsview.Model
	helpView     helpview.Model

	assessments []model.Assessment
	lastErr     string
	ready       bool
}

// New creates the root application model.
func New(cfg *model.AppConfig, configPath string, client *api.Client, s store.Store) Model {
	k := keys.DefaultKeyMap()
	interval := time.Duration(cfg.Display.RefreshIntervalSec) * time.Second

	return Model{
		currentView:  ViewCalendar,
		keys:         k,
		config:       cfg,
		configPath:   configPath,
		client:       client,
		store:        s,
		refresher:    appsync.New(client, interval),
		calendarView: calendarview.New(s, k, 80, 24),
		listView:     listview.New(k, 80, 24),
		formView:     assessform.New(80, 24),
		settingsView: settingsview.New(configPath, cfg, 80, 24),
		helpView:     helpview.New(k, 80, 24),
	}
}

// Init loads local data and starts the background refresher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.calendarView.Init(),
		m.refresher.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.calendarView.SetSize(w, h)
		m.listView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.RefreshResultMsg:
		return m.handleRefreshResult(msg)

	case reconcileDoneMsg:
		if msg.err == nil {
			return m, m.calendarView.ReloadLocalData()
		}
		return m, nil

	case crudDoneMsg:
		return m.handleCrudDone(msg)

	case calendarview.NewOnDayMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		cmd := m.formView.StartCreateOn(msg.DateKey)
		return m, cmd

	case calendarview.EditRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		cmd := m.formView.StartEdit(msg.Assessment)
		return m, cmd

	case listview.NewRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		cmd := m.formView.StartCreate()
		return m, cmd

	case listview.EditRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewForm
		cmd := m.formView.StartEdit(msg.Assessment)
		return m, cmd

	case listview.DeleteConfirmedMsg:
		return m, m.deleteAssessment(msg.Assessment.ID)

	case assessform.SubmitMsg:
		m.currentView = m.previousView
		return m, m.submitAssessment(msg)

	case assessform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case settingsview.SettingsDoneMsg:
		return m.handleSettingsDone(msg)

	case tea.KeyMsg:
		if newM, cmd, handled := m.handleGlobalKey(msg); handled {
			return newM, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey handles keys that work regardless of the current view.
// Forms keep full keyboard focus, so global keys only apply outside them.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.currentView == ViewForm || m.currentView == ViewSettings {
		return m, nil, false
	}
	if m.currentView == ViewCalendar && m.calendarView.CapturingInput() {
		return m, nil, false
	}
	if m.currentView == ViewList && m.listView.CapturingInput() {
		return m, nil, false
	}

	switch msg.String() {
	case "ctrl+c":
		m.refresher.Stop()
		return m, tea.Quit, true

	case "q":
		if m.currentView == ViewCalendar || m.currentView == ViewList {
			m.refresher.Stop()
			return m, tea.Quit, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "esc":
		if m.currentView == ViewHelp || m.currentView == ViewList {
			m.currentView = ViewCalendar
			return m, nil, true
		}

	case "1":
		m.currentView = ViewCalendar
		return m, nil, true

	case "2":
		m.currentView = ViewList
		return m, nil, true

	case "3":
		m.previousView = m.currentView
		m.currentView = ViewSettings
		return m, m.settingsView.Start(), true

	case "r":
		m.refresher.Refresh()
		return m, nil, true
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewCalendar:
		m.calendarView, cmd = m.calendarView.Update(msg)
	case ViewList:
		m.listView, cmd = m.listView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

func (m Model) handleRefreshResult(msg appsync.RefreshResultMsg) (tea.Model, tea.Cmd) {
	waitCmd := m.refresher.WaitForNextResult()

	if msg.Err != nil {
		// The calendar swallows fetch failures and shows an empty grid;
		// only the list screen surfaces the error with a retry hint.
		m.lastErr = fmt.Sprintf("Server unreachable: %v", msg.Err)
		m.calendarView.SetAssessments(nil)
		m.listView.SetError(m.lastErr)
		return m, waitCmd
	}

	m.lastErr = ""
	m.assessments = msg.Assessments
	m.listView.SetError("")
	m.calendarView.SetAssessments(msg.Assessments)
	m.listView.SetAssessments(msg.Assessments)

	return m, tea.Batch(waitCmd, m.reconcileLocal(msg.Assessments))
}

func (m Model) handleCrudDone(msg crudDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		status := fmt.Sprintf("Error: %v", msg.err)
		m.listView.SetStatus(status)
		return m, nil
	}
	m.listView.SetStatus(msg.status)
	m.refresher.Refresh()
	return m, nil
}

func (m Model) handleSettingsDone(msg settingsview.SettingsDoneMsg) (tea.Model, tea.Cmd) {
	m.currentView = m.previousView

	if msg.Err != nil {
		m.listView.SetStatus(fmt.Sprintf("Error saving settings: %v", msg.Err))
		return m, nil
	}
	if msg.Saved && msg.Config != nil {
		m.config = msg.Config
		ApplyTheme(msg.Config.Display.Theme)
		// The server URL and refresh interval apply on next start.
	}
	return m, nil
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Assessment Calendar", m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCalendar:
		return m.calendarView.View()
	case ViewList:
		return m.listView.View()
	case ViewForm:
		return m.formView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the refresher state.
func (m Model) syncStatus() string {
	state, lastSync := m.refresher.Status()
	switch state {
	case appsync.Running:
		return "syncing"
	case appsync.Errored:
		return "⚠ unreachable"
	default:
		if lastSync.IsZero() {
			return "idle"
		}
		return "synced " + lastSync.Format("15:04")
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewSettings:
		return "enter save | esc cancel"
	case ViewList:
		return "a add | e edit | d delete | r refresh | 1 calendar | ? help | q quit"
	default:
		return "enter open day | a add | r refresh | 2 list | 3 settings | ? help | q quit"
	}
}
