package checkout

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/google/uuid"
)

const DefaultSessionTTL = 30 * time.Minute

// Snapshot is a copy of a wizard's state that is safe to hand out.
type Snapshot struct {
	ID             string
	Stage          Stage
	Category       pricing.Category
	Contact        Contact
	Payment        Payment
	Quote          pricing.Quote
	ErrorMessage   string
	RegistrationID string
}

func (s Snapshot) Step() int { return s.Stage.Step() }

func (s Snapshot) Succeeded() bool { return s.Stage == StageSucceeded }

type session struct {
	wizard   *Wizard
	lastSeen time.Time
}

type SessionsOption func(*Sessions)

func WithSessionTTL(ttl time.Duration) SessionsOption {
	return func(s *Sessions) {
		s.ttl = ttl
	}
}

func WithSessionClock(now func() time.Time) SessionsOption {
	return func(s *Sessions) {
		s.now = now
	}
}

// WithOnCreated registers a hook run after each stored registration. It runs
// outside the registry lock and cannot fail the submission.
func WithOnCreated(fn func(ctx context.Context, reg registration.Registration)) SessionsOption {
	return func(s *Sessions) {
		s.onCreated = fn
	}
}

// Sessions keeps open wizards in memory, keyed by an opaque id. Sessions idle
// for longer than the TTL are dropped by Sweep.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*session

	creator   Creator
	onCreated func(ctx context.Context, reg registration.Registration)
	ttl       time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func NewSessions(creator Creator, logger *slog.Logger, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		sessions: map[string]*session{},
		creator:  creator,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sessions) Open(category pricing.Category) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	sess := &session{
		wizard:   New(category, WithClock(s.now)),
		lastSeen: s.now(),
	}
	s.sessions[id] = sess

	return snapshot(id, sess.wizard)
}

func (s *Sessions) Get(id string) (Snapshot, error) {
	return s.Update(id, func(*Wizard) error { return nil })
}

// Update applies fn to the session's wizard under the registry lock. The
// returned snapshot reflects the wizard even when fn fails.
func (s *Sessions) Update(id string, fn func(w *Wizard) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, NewSessionNotFoundError(id)
	}
	sess.lastSeen = s.now()

	err := fn(sess.wizard)
	return snapshot(id, sess.wizard), err
}

// Submit writes the session's registration. The store call happens without
// holding the registry lock, so other sessions are not blocked by it.
func (s *Sessions) Submit(ctx context.Context, id string) (Snapshot, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return Snapshot{}, NewSessionNotFoundError(id)
	}
	sess.lastSeen = s.now()
	attempt, err := sess.wizard.BeginSubmit()
	if err != nil {
		snap := snapshot(id, sess.wizard)
		s.mu.Unlock()
		return snap, err
	}
	s.mu.Unlock()

	created, createErr := s.creator.CreateRegistration(ctx, attempt.Registration())

	s.mu.Lock()
	applied := sess.wizard.Complete(attempt, created, createErr)
	snap := snapshot(id, sess.wizard)
	s.mu.Unlock()

	if createErr != nil {
		s.logger.Error("failed to store registration", slog.String("session-id", id), slog.String("error", createErr.Error()))
		if !applied {
			return snap, NewSubmitFailedError(failurePrefix+createErr.Error(), createErr)
		}
		return snap, NewSubmitFailedError(snap.ErrorMessage, createErr)
	}

	s.logger.Info("registration stored",
		slog.String("session-id", id),
		slog.String("registration-id", created.ID),
		slog.Bool("session-current", applied),
	)

	if s.onCreated != nil {
		s.onCreated(ctx, created)
	}

	return snap, nil
}

// Close discards a session. Closing an unknown session is not an error.
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.wizard.Reset(sess.wizard.Category())
		delete(s.sessions, id)
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			sess.wizard.Reset(sess.wizard.Category())
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done.
func (s *Sessions) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("swept idle checkout sessions", slog.Int("count", n))
			}
		}
	}
}

func snapshot(id string, w *Wizard) Snapshot {
	return Snapshot{
		ID:             id,
		Stage:          w.Stage(),
		Category:       w.Category(),
		Contact:        w.Contact(),
		Payment:        w.Payment(),
		Quote:          w.Quote(),
		ErrorMessage:   w.ErrorMessage(),
		RegistrationID: w.RegistrationID(),
	}
}
