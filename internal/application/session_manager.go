package application

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/OliveiraNt/kafkalens/internal/domain"
	"github.com/OliveiraNt/kafkalens/internal/metrics"
	"github.com/OliveiraNt/kafkalens/internal/utils"
	"github.com/google/uuid"
)

// State is the logical session state shown to the user.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateActive        State = "active"
	StateFailed        State = "failed"
)

// Session is the single live broker connection.
type Session struct {
	ID          string             `json:"id"`
	ProfileName string             `json:"profile"`
	Servers     []string           `json:"servers"`
	Client      domain.KafkaClient `json:"-"`
	ActivatedAt time.Time          `json:"activated_at"`
}

// Status is a snapshot of the session state. ActiveProfile stays set after a
// failed switch, because the previous session is kept.
type Status struct {
	State         State      `json:"state"`
	ActiveProfile string     `json:"active_profile,omitempty"`
	SessionID     string     `json:"session_id,omitempty"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	LastAttempted string     `json:"last_attempted,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}

// EventKind tags a SessionEvent.
type EventKind string

const (
	EventActivated EventKind = "activated"
	EventFailed    EventKind = "failed"
	EventTeardown  EventKind = "teardown"
)

// SessionEvent is published after every activation attempt and teardown.
type SessionEvent struct {
	Kind    EventKind `json:"kind"`
	Profile string    `json:"profile,omitempty"`
	Status  Status    `json:"status"`
	At      time.Time `json:"at"`
}

// ProfileSource resolves profiles by name.
type ProfileSource interface {
	Get(name string) (domain.ConnectionProfile, error)
}

// SessionManager owns the active connection. Activations are serialized; a
// new client is confirmed live before the previous one is closed, so a failed
// switch leaves the previous session untouched. Readers never wait on an
// in-flight activation.
type SessionManager struct {
	profiles  ProfileSource
	connector domain.Connector
	cache     *ViewCache
	opts      ConnectOptions

	switchMu sync.Mutex

	mu            sync.RWMutex
	session       *Session
	state         State
	lastAttempted string
	lastErr       error

	lmu       sync.Mutex
	nextID    int
	listeners map[int]func(SessionEvent)
}

// NewSessionManager creates a manager that clears cache on every successful activation.
func NewSessionManager(profiles ProfileSource, connector domain.Connector, cache *ViewCache, opts ConnectOptions) *SessionManager {
	return &SessionManager{
		profiles:  profiles,
		connector: connector,
		cache:     cache,
		opts:      opts,
		state:     StateUninitialized,
		listeners: make(map[int]func(SessionEvent)),
	}
}

// Activate switches the active session to the named profile. Re-activating
// the current profile is a full switch.
func (m *SessionManager) Activate(ctx context.Context, name string) error {
	m.switchMu.Lock()
	defer m.switchMu.Unlock()

	p, err := m.profiles.Get(name)
	if err != nil {
		metrics.Activations.WithLabelValues(metrics.ResultInvalid).Inc()
		if errors.Is(err, domain.ErrNotFound) {
			return &NotFoundError{Name: name}
		}
		return err
	}

	utils.Logger.Info("activating session", "profile", name, "servers", p.BootstrapServers, "auth", p.AuthType())
	client, err := connectWithRetry(ctx, m.connector, p.BootstrapServers, p.Auth(), m.opts)
	if err != nil {
		m.mu.Lock()
		m.state = StateFailed
		m.lastAttempted = name
		m.lastErr = err
		m.mu.Unlock()

		metrics.Activations.WithLabelValues(metrics.ResultFailure).Inc()
		utils.Logger.Warn("session activation failed", "profile", name, "err", err)
		m.emit(EventFailed, name)
		return err
	}

	next := &Session{
		ID:          uuid.NewString(),
		ProfileName: name,
		Servers:     slices.Clone(p.BootstrapServers),
		Client:      client,
		ActivatedAt: time.Now(),
	}

	m.mu.Lock()
	prev := m.session
	m.session = next
	m.state = StateActive
	m.lastAttempted = name
	m.lastErr = nil
	m.cache.Clear()
	m.mu.Unlock()

	if prev != nil {
		prev.Client.Close()
		utils.Logger.Debug("previous session closed", "profile", prev.ProfileName, "session", prev.ID)
	}

	metrics.Activations.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.ActiveSession.Set(1)
	utils.Logger.Info("session activated", "profile", name, "session", next.ID)
	m.emit(EventActivated, name)
	return nil
}

// Current returns the active session, if any.
func (m *SessionManager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return Session{}, false
	}
	s := *m.session
	s.Servers = slices.Clone(s.Servers)
	return s, true
}

// Status returns a snapshot of the logical session state.
func (m *SessionManager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statusLocked()
}

func (m *SessionManager) statusLocked() Status {
	st := Status{State: m.state, LastAttempted: m.lastAttempted}
	if m.lastErr != nil {
		st.LastError = m.lastErr.Error()
	}
	if m.session != nil {
		at := m.session.ActivatedAt
		st.ActiveProfile = m.session.ProfileName
		st.SessionID = m.session.ID
		st.ActivatedAt = &at
	}
	return st
}

// Teardown closes the held client and returns to the uninitialized state.
// An event is emitted only when the status actually changed, so tearing
// down an idle manager is silent.
func (m *SessionManager) Teardown() {
	m.switchMu.Lock()
	defer m.switchMu.Unlock()

	m.mu.Lock()
	prev := m.session
	changed := prev != nil || m.state != StateUninitialized || m.lastAttempted != ""
	m.session = nil
	m.state = StateUninitialized
	m.lastAttempted = ""
	m.lastErr = nil
	m.mu.Unlock()

	if !changed {
		return
	}
	profile := ""
	if prev != nil {
		prev.Client.Close()
		metrics.ActiveSession.Set(0)
		profile = prev.ProfileName
		utils.Logger.Info("session closed", "profile", profile, "session", prev.ID)
	}
	m.emit(EventTeardown, profile)
}

// OnChange registers fn for session events and returns a function that
// removes it. Listeners run on the activating goroutine and must not block.
func (m *SessionManager) OnChange(fn func(SessionEvent)) func() {
	m.lmu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.lmu.Unlock()

	return func() {
		m.lmu.Lock()
		delete(m.listeners, id)
		m.lmu.Unlock()
	}
}

func (m *SessionManager) emit(kind EventKind, profile string) {
	ev := SessionEvent{Kind: kind, Profile: profile, Status: m.Status(), At: time.Now()}

	m.lmu.Lock()
	fns := make([]func(SessionEvent), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.lmu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
