package cart

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/condostore/pos-backend/pkg/config"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

// Store keeps one session per terminal and evicts sessions that have been
// idle past the configured TTL. An evicted terminal simply starts over with
// an empty cart on its next request.
type Store struct {
	cfg  config.SessionConfig
	logg *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewStore builds the session registry.
func NewStore(cfg config.SessionConfig, logg *logger.Logger) (*Store, error) {
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	return &Store{
		cfg:      cfg,
		logg:     logg,
		sessions: map[string]*Session{},
	}, nil
}

// Get returns the session for the terminal, creating it on first use.
func (s *Store) Get(terminalID string) (*Session, error) {
	terminalID = strings.TrimSpace(terminalID)
	if terminalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "terminal id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[terminalID]; ok {
		return session, nil
	}
	session := newSession(terminalID, time.Now())
	s.sessions[terminalID] = session
	return session, nil
}

// Sweep runs the idle-session eviction loop until the context is canceled.
func (s *Store) Sweep(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			evicted := s.evictIdle(now)
			if evicted > 0 {
				s.logg.Info(s.logg.WithField(ctx, "evicted", evicted), "idle terminal sessions evicted")
			}
		}
	}
}

func (s *Store) evictIdle(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted int
	for id, session := range s.sessions {
		if session.idleSince(now) > s.cfg.IdleTTL {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
