package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"reciteflow-backend/internal/models"
	"reciteflow-backend/internal/scheduler"
	"reciteflow-backend/internal/temporal"
)

// State is the lifecycle phase of a review session.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateGrading State = "grading"
	StateEmpty   State = "empty"
	StateError   State = "error"
)

const (
	DefaultTimerSeconds = 30
	DefaultBatchSize    = 50
)

// ErrNoCurrentItem is returned when a grade arrives with no item at the
// head of the queue.
var ErrNoCurrentItem = errors.New("no current item to grade")

// ValidationError marks a grade that is outside the mode's quality scale.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Cue receives a short audible confirmation on reveal and grade.
type Cue interface {
	Tick()
}

// Config tunes a review session. Zero values fall back to the defaults.
type Config struct {
	Mode         Mode
	TimerSeconds int
	BatchSize    int
	Now          func() time.Time
}

// Snapshot is a point-in-time view of a session, safe to serialize and push
// to clients.
type Snapshot struct {
	State            State            `json:"state"`
	Mode             Mode             `json:"mode"`
	Current          *models.WorkItem `json:"current,omitempty"`
	Done             int              `json:"done"`
	Total            int              `json:"total"`
	Remaining        int              `json:"remaining"`
	Revealed         bool             `json:"revealed"`
	SecondsRemaining int              `json:"seconds_remaining"`
	Paused           bool             `json:"paused"`
	Error            string           `json:"error,omitempty"`
}

// Engine drives one user's review session over the due-item queue. All
// exported methods are safe for concurrent use; grade submissions are issued
// to the remote scheduler strictly in the order they were accepted.
type Engine struct {
	scheduler scheduler.Service
	cue       Cue
	cfg       Config

	mu               sync.Mutex
	state            State
	queue            []models.WorkItem
	total            int
	revealed         bool
	secondsRemaining int
	paused           bool
	timerFired       bool
	lastError        string
	loadGen          uint64
	notify           func(Snapshot)

	submitMu sync.Mutex
}

// NewEngine builds an idle engine; call Load to fetch the first queue. cue
// may be nil when no audio device is available.
func NewEngine(svc scheduler.Service, cue Cue, cfg Config) *Engine {
	if cfg.Mode == "" {
		cfg.Mode = ModePlain
	}
	if cfg.TimerSeconds <= 0 {
		cfg.TimerSeconds = DefaultTimerSeconds
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Engine{
		scheduler: svc,
		cue:       cue,
		cfg:       cfg,
		state:     StateLoading,
	}
}

// SetNotify registers a callback invoked after every observable change with
// a fresh snapshot. Must be set before the session starts handling input.
func (e *Engine) SetNotify(fn func(Snapshot)) {
	e.mu.Lock()
	e.notify = fn
	e.mu.Unlock()
}

// Load fetches the due queue as of today. A Load that is superseded by a
// newer Load discards its result instead of overwriting the newer state.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	e.loadGen++
	gen := e.loadGen
	e.state = StateLoading
	e.lastError = ""
	today := temporal.DayKey(e.cfg.Now())
	e.notifyLocked()
	e.mu.Unlock()

	items, err := e.scheduler.FetchDueWorkItems(ctx, today, e.cfg.BatchSize)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.loadGen {
		// A newer load owns the session state now.
		return nil
	}
	if err != nil {
		e.state = StateError
		e.queue = nil
		e.total = 0
		e.lastError = scheduler.RemoteMessage(err)
		e.notifyLocked()
		return err
	}
	e.queue = items
	e.total = len(items)
	e.resetHeadLocked()
	e.notifyLocked()
	return nil
}

// Current returns the item at the head of the queue, if any.
func (e *Engine) Current() (models.WorkItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return models.WorkItem{}, false
	}
	return e.queue[0], true
}

// Reveal shows the current item's content and plays the audio cue.
func (e *Engine) Reveal() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady || e.revealed {
		return
	}
	e.revealed = true
	e.cueLocked()
	e.notifyLocked()
}

// Hide re-hides the current item's content.
func (e *Engine) Hide() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady || !e.revealed {
		return
	}
	e.revealed = false
	e.notifyLocked()
}

// ToggleReveal flips visibility of the current item.
func (e *Engine) ToggleReveal() {
	e.mu.Lock()
	revealed := e.revealed
	e.mu.Unlock()
	if revealed {
		e.Hide()
	} else {
		e.Reveal()
	}
}

// Grade records a quality for the current item. The item leaves the queue
// immediately; if the remote submission then fails, the error is surfaced
// and the queue is reloaded so local state matches the scheduler again.
func (e *Engine) Grade(ctx context.Context, quality int) error {
	e.mu.Lock()
	if !e.cfg.Mode.ValidQuality(quality) {
		e.mu.Unlock()
		return &ValidationError{
			Message: fmt.Sprintf("quality %d is not valid for %s mode", quality, e.cfg.Mode),
		}
	}
	if e.state != StateReady || len(e.queue) == 0 {
		e.mu.Unlock()
		return ErrNoCurrentItem
	}
	item := e.queue[0]
	e.queue = e.queue[1:]
	e.state = StateGrading
	e.notifyLocked()
	e.mu.Unlock()

	// submitMu keeps grades arriving at the scheduler in acceptance order.
	e.submitMu.Lock()
	err := e.scheduler.SubmitGrade(ctx, item.ID, quality)
	e.submitMu.Unlock()

	if err != nil {
		e.mu.Lock()
		e.lastError = scheduler.RemoteMessage(err)
		e.notifyLocked()
		e.mu.Unlock()
		// The remote scheduler is authoritative; re-sync rather than guess
		// which of the optimistic removals stuck.
		e.Load(ctx)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateGrading {
		e.resetHeadLocked()
		e.cueLocked()
		e.notifyLocked()
	}
	return nil
}

// HandleKey interprets a keyboard key for the session. typing suppresses all
// shortcuts so text inputs keep their keystrokes. The bool reports whether
// the key was consumed.
func (e *Engine) HandleKey(ctx context.Context, key string, typing bool) (bool, error) {
	if typing {
		return false, nil
	}
	if IsRevealKey(key) {
		e.ToggleReveal()
		return true, nil
	}
	quality, ok := e.cfg.Mode.QualityForKey(key)
	if !ok {
		return false, nil
	}
	return true, e.Grade(ctx, quality)
}

// Snapshot returns the current session view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// resetHeadLocked re-arms per-item state for whatever is now at the head of
// the queue. Caller holds mu.
func (e *Engine) resetHeadLocked() {
	if len(e.queue) == 0 {
		e.state = StateEmpty
	} else {
		e.state = StateReady
	}
	e.revealed = e.cfg.Mode.InitialRevealed()
	e.secondsRemaining = e.cfg.TimerSeconds
	e.paused = false
	e.timerFired = false
}

func (e *Engine) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:            e.state,
		Mode:             e.cfg.Mode,
		Total:            e.total,
		Remaining:        len(e.queue),
		Revealed:         e.revealed,
		SecondsRemaining: e.secondsRemaining,
		Paused:           e.paused,
		Error:            e.lastError,
	}
	if done := e.total - len(e.queue); done > 0 {
		snap.Done = done
	}
	if len(e.queue) > 0 {
		item := e.queue[0]
		snap.Current = &item
	}
	return snap
}

func (e *Engine) notifyLocked() {
	if e.notify != nil {
		e.notify(e.snapshotLocked())
	}
}

func (e *Engine) cueLocked() {
	if e.cue != nil {
		e.cue.Tick()
	}
}
