package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/assessment-calendar/internal/model"
	"github.com/nhle/assessment-calendar/internal/ui/assessform"
)

// crudDoneMsg reports the outcome of a create, update, or delete call.
type crudDoneMsg struct {
	status string
	err    error
}

// reconcileDoneMsg reports that the local store was reconciled against the
// latest fetch.
type reconcileDoneMsg struct {
	err error
}

// crudTimeout bounds a single write call against the API.
const crudTimeout = 30 * time.Second

// submitAssessment sends the completed form to the API.
func (m Model) submitAssessment(msg assessform.SubmitMsg) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), crudTimeout)
		defer cancel()

		if msg.EditID != 0 {
			_, err := client.UpdateAssessment(ctx, msg.EditID, msg.Input)
			if err != nil {
				return crudDoneMsg{err: err}
			}
			return crudDoneMsg{status: "Assessment updated"}
		}

		_, err := client.CreateAssessment(ctx, msg.Input)
		if err != nil {
			return crudDoneMsg{err: err}
		}
		return crudDoneMsg{status: "Assessment created"}
	}
}

// deleteAssessment removes the assessment server-side. Its local notes and
// preferences disappear at the next reconcile.
func (m Model) deleteAssessment(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), crudTimeout)
		defer cancel()

		_, err := client.DeleteAssessment(ctx, id)
		if err != nil {
			return crudDoneMsg{err: err}
		}
		return crudDoneMsg{status: "Assessment deleted"}
	}
}

// reconcileLocal aligns the local store with a successful full fetch:
// brand-new assessments get a default notification preference, and rows
// belonging to server-deleted assessments are pruned. Existing preferences
// are never touched, so a refetch cannot reset the user's toggles.
func (m Model) reconcileLocal(rows []model.Assessment) tea.Cmd {
	s := m.store
	defaultDays := m.config.Notifications.DefaultDaysBefore
	return func() tea.Msg {
		ids := make([]int, len(rows))
		for i, a := range rows {
			ids[i] = a.ID
		}

		ctx, cancel := context.WithTimeout(context.Background(), crudTimeout)
		defer cancel()

		if err := s.EnsurePreferences(ctx, ids, defaultDays); err != nil {
			return reconcileDoneMsg{err: err}
		}
		if err := s.PruneOrphans(ctx, ids); err != nil {
			return reconcileDoneMsg{err: err}
		}
		return reconcileDoneMsg{}
	}
}
