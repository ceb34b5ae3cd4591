package review

import (
	"context"
	"time"
)

// Tick advances the per-item countdown by one second. When the countdown
// reaches zero the current item is force-revealed exactly once; further
// ticks are no-ops until the head of the queue changes.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady || e.paused || len(e.queue) == 0 {
		return
	}
	if e.secondsRemaining <= 0 {
		return
	}
	e.secondsRemaining--
	if e.secondsRemaining == 0 && !e.timerFired {
		e.timerFired = true
		if !e.revealed {
			e.revealed = true
			e.cueLocked()
		}
	}
	e.notifyLocked()
}

// Pause freezes the countdown at its current value.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.paused {
		return
	}
	e.paused = true
	e.notifyLocked()
}

// Resume continues the countdown from where Pause left it.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.paused {
		return
	}
	e.paused = false
	e.notifyLocked()
}

// Run drives the countdown with a one-second ticker until ctx is cancelled.
// Meant to be started once per session in its own goroutine.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}
