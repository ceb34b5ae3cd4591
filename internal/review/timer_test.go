package review

import (
	"context"
	"testing"
)

func loadedEngine(t *testing.T, mode Mode, cue Cue, ids ...int64) (*Engine, *fakeService) {
	t.Helper()
	svc := &fakeService{items: dueItems(ids...)}
	e := NewEngine(svc, cue, Config{Mode: mode})
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return e, svc
}

func tick(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Tick()
	}
}

func TestTimer_CountsDownToZeroAndReveals(t *testing.T) {
	cue := &countingCue{}
	e, _ := loadedEngine(t, ModeQuiz, cue, 1)

	tick(e, DefaultTimerSeconds)

	snap := e.Snapshot()
	if snap.SecondsRemaining != 0 {
		t.Errorf("Expected 0 seconds after %d ticks, got %d", DefaultTimerSeconds, snap.SecondsRemaining)
	}
	if !snap.Revealed {
		t.Error("Expected auto-reveal when the timer expires")
	}
	if cue.count() != 1 {
		t.Errorf("Expected exactly one cue on expiry, got %d", cue.count())
	}
}

func TestTimer_ExpiryIsIdempotent(t *testing.T) {
	cue := &countingCue{}
	e, _ := loadedEngine(t, ModeQuiz, cue, 1)

	tick(e, DefaultTimerSeconds+10)

	snap := e.Snapshot()
	if snap.SecondsRemaining != 0 {
		t.Errorf("Timer went below zero: %d", snap.SecondsRemaining)
	}
	if cue.count() != 1 {
		t.Errorf("Expiry fired more than once: %d cues", cue.count())
	}

	// Hiding after expiry must not re-trigger the forced reveal.
	e.Hide()
	tick(e, 3)
	if snap := e.Snapshot(); snap.Revealed {
		t.Error("Expired timer revealed the item a second time")
	}
}

func TestTimer_PauseAndResume(t *testing.T) {
	e, _ := loadedEngine(t, ModePlain, nil, 1)

	tick(e, 10)
	e.Pause()
	tick(e, 5)

	if snap := e.Snapshot(); snap.SecondsRemaining != DefaultTimerSeconds-10 {
		t.Errorf("Paused timer moved: %d", snap.SecondsRemaining)
	}

	e.Resume()
	if snap := e.Snapshot(); snap.SecondsRemaining != DefaultTimerSeconds-10 {
		t.Errorf("Resume must not consume time: %d", snap.SecondsRemaining)
	}

	tick(e, 1)
	if snap := e.Snapshot(); snap.SecondsRemaining != DefaultTimerSeconds-11 {
		t.Errorf("Timer did not continue after resume: %d", snap.SecondsRemaining)
	}
}

func TestTimer_ResetsWhenItemChanges(t *testing.T) {
	e, _ := loadedEngine(t, ModePlain, nil, 1, 2)

	tick(e, 12)
	if err := e.Grade(context.Background(), 3); err != nil {
		t.Fatalf("Grade failed: %v", err)
	}

	snap := e.Snapshot()
	if snap.SecondsRemaining != DefaultTimerSeconds {
		t.Errorf("Expected fresh timer for new item, got %d", snap.SecondsRemaining)
	}
	if snap.Paused {
		t.Error("New item must not start paused")
	}

	// The expiry guard is re-armed too.
	tick(e, DefaultTimerSeconds)
	if snap := e.Snapshot(); snap.SecondsRemaining != 0 {
		t.Errorf("Second item's timer did not run down: %d", snap.SecondsRemaining)
	}
}

func TestTimer_IgnoredOutsideReadyState(t *testing.T) {
	e, _ := loadedEngine(t, ModePlain, nil)

	tick(e, 5)
	if snap := e.Snapshot(); snap.State != StateEmpty {
		t.Errorf("Tick changed state of empty session: %q", snap.State)
	}
}

func TestTimer_CustomDuration(t *testing.T) {
	svc := &fakeService{items: dueItems(1)}
	e := NewEngine(svc, nil, Config{Mode: ModePlain, TimerSeconds: 5})
	e.Load(context.Background())

	tick(e, 5)
	if snap := e.Snapshot(); snap.SecondsRemaining != 0 {
		t.Errorf("Expected 5-second timer to expire, got %d", snap.SecondsRemaining)
	}
}
