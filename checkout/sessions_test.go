package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.DiscardHandler)

func openOnPaymentStep(t *testing.T, sessions *Sessions, category pricing.Category) string {
	t.Helper()
	snap := sessions.Open(category)
	_, err := sessions.Update(snap.ID, func(w *Wizard) error {
		if err := w.SetContact(validContact()); err != nil {
			return err
		}
		return w.ConfirmContact()
	})
	require.NoError(t, err)
	return snap.ID
}

func TestSessionsLifecycle(t *testing.T) {
	sessions := NewSessions(succeedingCreator("unused"), discardLogger)

	snap := sessions.Open(pricing.Kids)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, StageContact, snap.Stage)
	assert.Equal(t, pricing.Kids, snap.Category)
	base := 350.0
	assert.Equal(t, base*pricing.PixFactor, snap.Quote.Final)

	got, err := sessions.Get(snap.ID)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
	assert.Equal(t, 1, sessions.Len())

	sessions.Close(snap.ID)
	assert.Equal(t, 0, sessions.Len())

	_, err = sessions.Get(snap.ID)
	requireReason(t, err, REASON_SESSION_NOT_FOUND)

	sessions.Close(snap.ID)
}

func TestSessionsUpdate(t *testing.T) {
	t.Run("confirming contact never touches the store", func(t *testing.T) {
		creator := succeedingCreator("unused")
		sessions := NewSessions(creator, discardLogger)

		id := openOnPaymentStep(t, sessions, pricing.Adult)

		snap, err := sessions.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 2, snap.Step())
		assert.Empty(t, creator.calls)
	})

	t.Run("failed mutation still returns the current view", func(t *testing.T) {
		sessions := NewSessions(succeedingCreator("unused"), discardLogger)
		snap := sessions.Open(pricing.Adult)

		got, err := sessions.Update(snap.ID, func(w *Wizard) error { return w.ConfirmContact() })

		requireReason(t, err, REASON_MISSING_CONTACT_FIELDS)
		assert.Equal(t, snap.ID, got.ID)
		assert.Equal(t, StageContact, got.Stage)
	})
}

func TestSessionsSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("success runs the created hook once", func(t *testing.T) {
		creator := succeedingCreator("reg-1")
		var hooked []registration.Registration
		sessions := NewSessions(creator, discardLogger,
			WithSessionClock(fixedClock),
			WithOnCreated(func(ctx context.Context, reg registration.Registration) {
				hooked = append(hooked, reg)
			}),
		)
		id := openOnPaymentStep(t, sessions, pricing.Adult)

		snap, err := sessions.Submit(ctx, id)
		require.NoError(t, err)

		assert.True(t, snap.Succeeded())
		assert.Equal(t, "reg-1", snap.RegistrationID)
		assert.Equal(t, Contact{}, snap.Contact)
		require.Len(t, creator.calls, 1)
		require.Len(t, hooked, 1)
		assert.Equal(t, "reg-1", hooked[0].ID)
		assert.Equal(t, fixedNow, hooked[0].CreatedAt)
	})

	t.Run("failure surfaces the message and skips the hook", func(t *testing.T) {
		hookCalled := false
		sessions := NewSessions(failingCreator(errors.New("connection refused")), discardLogger,
			WithOnCreated(func(ctx context.Context, reg registration.Registration) {
				hookCalled = true
			}),
		)
		id := openOnPaymentStep(t, sessions, pricing.Adult)

		snap, err := sessions.Submit(ctx, id)

		var checkoutErr *Error
		require.ErrorAs(t, err, &checkoutErr)
		assert.Equal(t, REASON_SUBMIT_FAILED, checkoutErr.Reason)
		assert.Equal(t, "Erro técnico: connection refused", checkoutErr.Message)
		assert.Equal(t, StageFailed, snap.Stage)
		assert.Equal(t, 2, snap.Step())
		assert.Equal(t, "Ana Souza", snap.Contact.Name)
		assert.False(t, hookCalled)
	})

	t.Run("store call runs without the registry lock", func(t *testing.T) {
		sessions := NewSessions(nil, discardLogger)
		id := openOnPaymentStep(t, sessions, pricing.Adult)

		var duringCall Snapshot
		var secondSubmitErr error
		sessions.creator = &mockCreator{
			CreateRegistrationFunc: func(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
				var err error
				duringCall, err = sessions.Get(id)
				require.NoError(t, err)
				_, secondSubmitErr = sessions.Submit(ctx, id)
				reg.ID = "reg-1"
				return reg, nil
			},
		}

		_, err := sessions.Submit(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, StageSubmitting, duringCall.Stage)
		requireReason(t, secondSubmitErr, REASON_SUBMIT_IN_FLIGHT)
	})

	t.Run("closing while the write is in flight", func(t *testing.T) {
		sessions := NewSessions(nil, discardLogger)
		id := openOnPaymentStep(t, sessions, pricing.Adult)

		sessions.creator = &mockCreator{
			CreateRegistrationFunc: func(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
				sessions.Close(id)
				reg.ID = "reg-1"
				return reg, nil
			},
		}

		snap, err := sessions.Submit(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, StageContact, snap.Stage)
		assert.Equal(t, 0, sessions.Len())
	})

	t.Run("concurrent sessions do not interfere", func(t *testing.T) {
		creator := succeedingCreator("reg")
		sessions := NewSessions(&lockedCreator{inner: creator}, discardLogger)

		ids := make([]string, 10)
		for i := range ids {
			ids[i] = openOnPaymentStep(t, sessions, pricing.Adult)
		}

		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := sessions.Submit(ctx, id)
				assert.NoError(t, err)
			}(id)
		}
		wg.Wait()

		assert.Len(t, creator.calls, 10)
	})
}

// lockedCreator serializes access to a mockCreator's call log.
type lockedCreator struct {
	mu    sync.Mutex
	inner *mockCreator
}

func (l *lockedCreator) CreateRegistration(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.CreateRegistration(ctx, reg)
}

func TestSessionsSweep(t *testing.T) {
	now := fixedNow
	clock := func() time.Time { return now }
	sessions := NewSessions(succeedingCreator("unused"), discardLogger,
		WithSessionTTL(10*time.Minute),
		WithSessionClock(clock),
	)

	stale := sessions.Open(pricing.Adult)
	now = now.Add(6 * time.Minute)
	fresh := sessions.Open(pricing.Kids)
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, sessions.Sweep())

	_, err := sessions.Get(stale.ID)
	requireReason(t, err, REASON_SESSION_NOT_FOUND)
	_, err = sessions.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	sessions := NewSessions(succeedingCreator("unused"), discardLogger)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sessions.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
