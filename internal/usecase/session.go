package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"resume-builder/internal/form"
	"resume-builder/internal/model"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one page view: the form draft and the page controller it feeds.
// The mutex serializes requests of the same visitor.
type Session struct {
	ID         uuid.UUID
	Form       *form.Form
	Controller *Controller

	mu       sync.Mutex
	lastSeen time.Time
}

// Lock serializes access to the session's form and controller.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionConfig is shared by every session created by a store.
type SessionConfig struct {
	TTL             time.Duration
	DefaultTemplate model.Template
	Renderer        Renderer
	Repo            ExportsRepo
	Policy          RenderPolicy
}

// Sessions keeps page-view state in memory only; nothing survives a restart.
type Sessions struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Session
	cfg   SessionConfig
	log   *slog.Logger
	now   func() time.Time
}

func NewSessions(cfg SessionConfig, log *slog.Logger) *Sessions {
	if log == nil {
		log = slog.Default()
	}
	return &Sessions{items: map[uuid.UUID]*Session{}, cfg: cfg, log: log, now: time.Now}
}

// New starts a fresh page view with an empty draft and no snapshot.
func (s *Sessions) New() *Session {
	id := uuid.New()
	ctrl := NewController(id, s.cfg.DefaultTemplate, s.cfg.Renderer, s.cfg.Repo, s.cfg.Policy, s.log.With("session_id", id))
	sess := &Session{
		ID:         id,
		Form:       form.New(ctrl.Accept),
		Controller: ctrl,
		lastSeen:   s.now(),
	}

	s.mu.Lock()
	s.items[id] = sess
	s.mu.Unlock()
	return sess
}

// Get returns a live session and refreshes its idle timer.
func (s *Sessions) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	now := s.now()
	if s.cfg.TTL > 0 && now.Sub(sess.lastSeen) > s.cfg.TTL {
		delete(s.items, id)
		return nil, ErrSessionNotFound
	}
	sess.lastSeen = now
	return sess, nil
}

// Drop discards a session, e.g. when the visitor reloads the page.
func (s *Sessions) Drop(id uuid.UUID) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep removes sessions idle for longer than the TTL and reports how many
// were dropped.
func (s *Sessions) Sweep(now time.Time) int {
	if s.cfg.TTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.items {
		if now.Sub(sess.lastSeen) > s.cfg.TTL {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Sweep(now); n > 0 {
				s.log.Info("expired sessions swept", "count", n)
			}
		}
	}
}
