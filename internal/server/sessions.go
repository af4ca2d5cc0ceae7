package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/app"
)

const sessionCookie = "storefront_session"

// SessionManager maps browser sessions onto storefront engines. Sessions
// are memory-only and die with the process or their TTL, matching the
// lost-on-reload model of the storefront itself.
type SessionManager struct {
	mu       sync.Mutex
	logger   *zap.Logger
	ttl      time.Duration
	factory  func() (*app.Engine, error)
	sessions map[string]*session
	stop     chan struct{}
	stopOnce sync.Once
}

type session struct {
	engine   *app.Engine
	lastSeen time.Time
}

// NewSessionManager creates a manager producing engines via factory.
func NewSessionManager(logger *zap.Logger, ttl time.Duration, factory func() (*app.Engine, error)) *SessionManager {
	m := &SessionManager{
		logger:   logger,
		ttl:      ttl,
		factory:  factory,
		sessions: make(map[string]*session),
		stop:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Engine returns the engine behind the request's session cookie, creating
// a fresh session (and fetching its catalog) when none exists. The catalog
// fetch deliberately ignores the request context: it completes even if the
// browser goes away mid-flight.
func (m *SessionManager) Engine(w http.ResponseWriter, r *http.Request) (*app.Engine, error) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		m.mu.Lock()
		if s, ok := m.sessions[cookie.Value]; ok {
			s.lastSeen = time.Now()
			m.mu.Unlock()
			return s.engine, nil
		}
		m.mu.Unlock()
	}

	engine, err := m.factory()
	if err != nil {
		return nil, err
	}
	engine.LoadCatalog(context.Background())

	id := uuid.New().String()
	m.mu.Lock()
	m.sessions[id] = &session{engine: engine, lastSeen: time.Now()}
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	m.logger.Info("Session started", zap.String("session_id", id))
	return engine, nil
}

// Count reports live sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close stops the expiry sweeper.
func (m *SessionManager) Close() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *SessionManager) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.expire(time.Now())
		}
	}
}

func (m *SessionManager) expire(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
			m.logger.Info("Session expired", zap.String("session_id", id))
		}
	}
}
