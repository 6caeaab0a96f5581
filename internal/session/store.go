package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edgylearn-api/internal/dashboard"
	"github.com/noah-isme/edgylearn-api/internal/liveness"
	"github.com/noah-isme/edgylearn-api/internal/models"
)

// ErrNotFound is returned for unknown or closed sessions.
var ErrNotFound = errors.New("session not found")

// BoardFactory builds a fresh dashboard container for user.
type BoardFactory func(user models.User) (dashboard.Board, error)

// Hooks observe the session lifecycle. Every field is optional.
type Hooks struct {
	OnOpen  func(s *Session)
	OnClose func(s *Session)
	// OnTick runs after every liveness tick of the session.
	OnTick func(s *Session, changed bool)
}

// Config tunes a Store.
type Config struct {
	// Intervals maps a role to its liveness tick interval.
	Intervals map[models.Role]time.Duration
	Source    liveness.Source
	// TTL is the idle time after which ReapIdle closes a session. Zero disables reaping.
	TTL    time.Duration
	Now    func() time.Time
	Hooks  Hooks
	Logger zerolog.Logger
}

// Store holds the open sessions.
type Store struct {
	ctx    context.Context
	boards BoardFactory
	cfg    Config
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates a store. Liveness timers are bound to ctx, so cancelling it
// stops every ticking dashboard.
func NewStore(ctx context.Context, boards BoardFactory, cfg Config) *Store {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Source == nil {
		cfg.Source = liveness.NewRandomSource(cfg.Now().UnixNano())
	}
	return &Store{
		ctx:      ctx,
		boards:   boards,
		cfg:      cfg,
		logger:   cfg.Logger.With().Str("component", "session_store").Logger(),
		sessions: make(map[string]*Session),
	}
}

// Open starts a session for user and its liveness timer.
func (s *Store) Open(user models.User) (*Session, error) {
	board, err := s.boards(user)
	if err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	now := s.cfg.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		User:      user,
		Board:     board,
		CreatedAt: now,
		lastSeen:  now,
	}

	logger := s.logger.With().Str("session_id", sess.ID).Str("role", string(user.Role)).Logger()
	sess.timer = liveness.Start(s.ctx, board, liveness.Config{
		Interval: s.cfg.Intervals[user.Role],
		Source:   s.cfg.Source,
		OnTick: func(changed bool) {
			if changed {
				sess.MarkChanged()
			}
			if s.cfg.Hooks.OnTick != nil {
				s.cfg.Hooks.OnTick(sess, changed)
			}
		},
		Logger: logger,
	})

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	if s.cfg.Hooks.OnOpen != nil {
		s.cfg.Hooks.OnOpen(sess)
	}
	logger.Info().Str("user_id", user.ID).Msg("session opened")
	return sess, nil
}

// Get returns the session and records the access for idle reaping.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	sess.touch(s.cfg.Now())
	return sess, nil
}

// Close tears a session down. Its timer has stopped when Close returns.
func (s *Store) Close(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	s.teardown(sess, "logout")
	return nil
}

// ReapIdle closes sessions idle for longer than the configured TTL and returns
// how many were closed.
func (s *Store) ReapIdle() int {
	if s.cfg.TTL <= 0 {
		return 0
	}
	cutoff := s.cfg.Now().Add(-s.cfg.TTL)

	var idle []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		s.teardown(sess, "idle")
	}
	return len(idle)
}

// CloseAll tears every session down, used on shutdown.
func (s *Store) CloseAll() {
	s.mu.Lock()
	all := make([]*Session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		all = append(all, sess)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, sess := range all {
		s.teardown(sess, "shutdown")
	}
}

// Len is the number of open sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) teardown(sess *Session, reason string) {
	sess.stop()
	if s.cfg.Hooks.OnClose != nil {
		s.cfg.Hooks.OnClose(sess)
	}
	s.logger.Info().
		Str("session_id", sess.ID).
		Str("user_id", sess.User.ID).
		Str("reason", reason).
		Msg("session closed")
}
