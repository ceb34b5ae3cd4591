package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"reciteflow-backend/internal/audio"
	"reciteflow-backend/internal/learn"
	"reciteflow-backend/internal/review"
	"reciteflow-backend/internal/scheduler"
	"reciteflow-backend/internal/websocket"
)

// Notifier receives live snapshots for fan-out to a user's sockets.
type Notifier interface {
	SendToUser(userID uuid.UUID, msg interface{})
}

// Config carries the session tuning shared by every user.
type Config struct {
	TimerSeconds int
	BatchSize    int
}

type userSession struct {
	review *review.Engine
	learn  *learn.Session
	device *audio.Device
	cancel context.CancelFunc
}

// Manager owns the live sessions, one slot per user. Starting a session
// supersedes whatever the user had running before; the old engine's ticker
// stops and its audio reference is released.
type Manager struct {
	scheduler scheduler.Service
	notifier  Notifier
	cfg       Config

	mu       sync.Mutex
	sessions map[uuid.UUID]*userSession
}

func NewManager(svc scheduler.Service, notifier Notifier, cfg Config) *Manager {
	return &Manager{
		scheduler: svc,
		notifier:  notifier,
		cfg:       cfg,
		sessions:  make(map[uuid.UUID]*userSession),
	}
}

// StartReview begins a fresh review session for the user and loads its
// queue. The returned engine is already running its countdown ticker.
func (m *Manager) StartReview(ctx context.Context, userID uuid.UUID, mode review.Mode) (*review.Engine, error) {
	device := audio.Acquire()
	engine := review.NewEngine(m.scheduler, device, review.Config{
		Mode:         mode,
		TimerSeconds: m.cfg.TimerSeconds,
		BatchSize:    m.cfg.BatchSize,
	})
	if m.notifier != nil {
		engine.SetNotify(func(snap review.Snapshot) {
			m.notifier.SendToUser(userID, websocket.Event{Kind: "review", Payload: snap})
		})
	}

	runCtx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	us := m.slotLocked(userID)
	m.stopReviewLocked(us)
	us.review = engine
	us.device = device
	us.cancel = cancel
	m.mu.Unlock()

	go engine.Run(runCtx)

	return engine, engine.Load(ctx)
}

// Review returns the user's live review engine, if any.
func (m *Manager) Review(userID uuid.UUID) (*review.Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	us, ok := m.sessions[userID]
	if !ok || us.review == nil {
		return nil, false
	}
	return us.review, true
}

// EndReview tears down the user's review session.
func (m *Manager) EndReview(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	us, ok := m.sessions[userID]
	if !ok {
		return
	}
	m.stopReviewLocked(us)
	m.pruneLocked(userID, us)
}

// StartLearn begins a memorization session. segmentID zero lets the session
// pick today's segment.
func (m *Manager) StartLearn(ctx context.Context, userID uuid.UUID, segmentID int64, today string) (*learn.Session, error) {
	s := learn.NewSession(m.scheduler)

	m.mu.Lock()
	us := m.slotLocked(userID)
	us.learn = s
	m.mu.Unlock()

	err := s.Load(ctx, segmentID, today)
	if m.notifier != nil {
		m.notifier.SendToUser(userID, websocket.Event{Kind: "learn", Payload: s.Snapshot()})
	}
	return s, err
}

// Learn returns the user's live memorization session, if any.
func (m *Manager) Learn(userID uuid.UUID) (*learn.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	us, ok := m.sessions[userID]
	if !ok || us.learn == nil {
		return nil, false
	}
	return us.learn, true
}

// Shutdown stops every live session. Called from the server's graceful
// shutdown path.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, us := range m.sessions {
		m.stopReviewLocked(us)
		delete(m.sessions, userID)
	}
}

func (m *Manager) slotLocked(userID uuid.UUID) *userSession {
	us, ok := m.sessions[userID]
	if !ok {
		us = &userSession{}
		m.sessions[userID] = us
	}
	return us
}

func (m *Manager) stopReviewLocked(us *userSession) {
	if us.cancel != nil {
		us.cancel()
		us.cancel = nil
	}
	if us.device != nil {
		us.device.Release()
		us.device = nil
	}
	us.review = nil
}

func (m *Manager) pruneLocked(userID uuid.UUID, us *userSession) {
	if us.review == nil && us.learn == nil {
		delete(m.sessions, userID)
	}
}
