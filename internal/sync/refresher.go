// Package sync polls the calendar API in the background and feeds results
// into the Bubble Tea runtime as messages.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/assessment-calendar/internal/api"
	"github.com/nhle/assessment-calendar/internal/model"
)

// State represents the refresher's current activity.
type State int

const (
	Idle State = iota
	Running
	Errored
)

// RefreshResultMsg is a tea.Msg sent when a fetch completes. On failure
// Assessments is nil and Err carries the cause; the UI keeps showing the
// last good data and waits for the user to retry.
type RefreshResultMsg struct {
	Assessments []model.Assessment
	Err         error
	At          time.Time
}

// fetchTimeout is the maximum time allowed for a single list fetch.
const fetchTimeout = 30 * time.Second

// Refresher periodically fetches the full assessment list. There is no
// retry or backoff: a failed fetch reports its error and the loop simply
// waits for the next tick or a manual trigger.
type Refresher struct {
	client   *api.Client
	interval time.Duration

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu       gosync.Mutex
	running  bool
	state    State
	lastSync time.Time
}

// New creates a Refresher polling at the given interval.
func New(client *api.Client, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Refresher{
		client:    client,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a tea.Cmd subscribed to
// its results. An initial fetch happens immediately.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.waitForResult()
}

// Stop halts the polling goroutine.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}

// Refresh triggers an immediate fetch without waiting for the next tick.
func (r *Refresher) Refresh() {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// A fetch is already queued.
	}
}

// Status returns the current state and the time of the last successful fetch.
func (r *Refresher) Status() (State, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.lastSync
}

// WaitForNextResult returns a tea.Cmd that waits for the next fetch result.
// Call it after handling a RefreshResultMsg to keep the subscription alive.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}

func (r *Refresher) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.fetch()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.fetch()
		case <-r.triggerCh:
			r.fetch()
		}
	}
}

func (r *Refresher) fetch() {
	r.setState(Running, time.Time{})

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	rows, err := r.client.ListAssessments(ctx)
	now := time.Now()
	if err != nil {
		r.setState(Errored, time.Time{})
		r.sendResult(RefreshResultMsg{Err: err, At: now})
		return
	}

	r.setState(Idle, now)
	r.sendResult(RefreshResultMsg{Assessments: rows, At: now})
}

func (r *Refresher) setState(s State, lastSync time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
	if !lastSync.IsZero() {
		r.lastSync = lastSync
	}
}

// sendResult delivers without blocking; the poller must never stall on a
// slow UI.
func (r *Refresher) sendResult(msg RefreshResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
	}
}

func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
