package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/osa911/uplink/internal/contact"
	"github.com/osa911/uplink/internal/logging"

	"github.com/google/uuid"
)

// formSession is one visitor's form instance
type formSession struct {
	id        uuid.UUID
	createdAt time.Time
	lastSeen  atomic.Int64 // unix nanoseconds
	flow      *contact.Flow
}

func (fs *formSession) touch(now time.Time) {
	fs.lastSeen.Store(now.UnixNano())
}

// FormSnapshot is the state of a form session at one point in time
type FormSnapshot struct {
	ID        uuid.UUID
	CreatedAt time.Time
	State     contact.State
}

// FormService keeps a submission flow per visitor, keyed by a random id
type FormService struct {
	relay      contact.Relay
	logger     *logging.Logger
	resetDelay time.Duration
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*formSession
}

// NewFormService creates a new form session service
func NewFormService(relay contact.Relay, logger *logging.Logger, resetDelay time.Duration) *FormService {
	return &FormService{
		relay:      relay,
		logger:     logger,
		resetDelay: resetDelay,
		now:        time.Now,
		sessions:   make(map[uuid.UUID]*formSession),
	}
}

// Create opens a new idle form session
func (s *FormService) Create() FormSnapshot {
	id := uuid.New()
	logger := s.logger

	session := &formSession{
		id:        id,
		createdAt: s.now(),
		flow: contact.NewFlow(s.relay,
			contact.WithResetDelay(s.resetDelay),
			contact.WithOnChange(func(from, to contact.Status) {
				logger.Debug("[FORM %s] %s -> %s", id, from, to)
			}),
			contact.WithOnResult(func(attempt int, res contact.Result) {
				if !res.OK() {
					logger.Error("[FORM %s] attempt %d failed: %v", id, attempt, res.Err)
				}
			}),
		),
	}
	session.touch(session.createdAt)

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return s.snapshot(session)
}

// Get returns the current state of a session
func (s *FormService) Get(id uuid.UUID) (FormSnapshot, error) {
	session, err := s.lookup(id)
	if err != nil {
		return FormSnapshot{}, err
	}
	return s.snapshot(session), nil
}

// Edit sets one field of a session's form
func (s *FormService) Edit(id uuid.UUID, field contact.Field, value string) (FormSnapshot, error) {
	if !field.Valid() {
		return FormSnapshot{}, ErrUnknownField
	}

	session, err := s.lookup(id)
	if err != nil {
		return FormSnapshot{}, err
	}

	session.flow.Edit(field, value)
	return s.snapshot(session), nil
}

// Submit submits a session's form. The relay call continues in the
// background; accepted reports whether the session moved to sending.
func (s *FormService) Submit(id uuid.UUID) (snap FormSnapshot, missing contact.Missing, accepted bool, err error) {
	session, err := s.lookup(id)
	if err != nil {
		return FormSnapshot{}, nil, false, err
	}

	missing, accepted = session.flow.Submit()
	return s.snapshot(session), missing, accepted, nil
}

// Close ends a session, cancelling any in-flight delivery
func (s *FormService) Close(id uuid.UUID) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrFormNotFound
	}

	session.flow.Close()
	return nil
}

// Sweep closes sessions not touched for longer than idleFor and returns how
// many were removed
func (s *FormService) Sweep(idleFor time.Duration) int {
	cutoff := s.now().Add(-idleFor).UnixNano()

	var expired []*formSession
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.lastSeen.Load() < cutoff {
			expired = append(expired, session)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	// closing waits for relay goroutines, keep it outside the lock
	for _, session := range expired {
		session.flow.Close()
	}
	return len(expired)
}

// Count returns the number of open sessions
func (s *FormService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown closes every session
func (s *FormService) Shutdown() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[uuid.UUID]*formSession)
	s.mu.Unlock()

	for _, session := range sessions {
		session.flow.Close()
	}
}

func (s *FormService) lookup(id uuid.UUID) (*formSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrFormNotFound
	}
	session.touch(s.now())
	return session, nil
}

func (s *FormService) snapshot(session *formSession) FormSnapshot {
	return FormSnapshot{
		ID:        session.id,
		CreatedAt: session.createdAt,
		State:     session.flow.State(),
	}
}
