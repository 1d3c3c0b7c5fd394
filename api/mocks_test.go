package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Adaptare-Software/workshop-registration/checkout"
	"github.com/Adaptare-Software/workshop-registration/registration"
)

var noopLogger = slog.New(slog.DiscardHandler)

var _ DB = &mockDB{}

type mockDB struct {
	CreateRegistrationFunc     func(ctx context.Context, reg registration.Registration) (registration.Registration, error)
	GetRegistrationsFunc       func(ctx context.Context, limit int32, cursor *string) (registration.GetRegistrationsResponse, error)
	UpdateRegistrationFlagFunc func(ctx context.Context, id string, flag registration.Flag, value bool) error
}

func (m *mockDB) CreateRegistration(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
	return m.CreateRegistrationFunc(ctx, reg)
}

func (m *mockDB) GetRegistrations(ctx context.Context, limit int32, cursor *string) (registration.GetRegistrationsResponse, error) {
	return m.GetRegistrationsFunc(ctx, limit, cursor)
}

func (m *mockDB) UpdateRegistrationFlag(ctx context.Context, id string, flag registration.Flag, value bool) error {
	return m.UpdateRegistrationFlagFunc(ctx, id, flag, value)
}

// memoryDB is a tiny in-process Repository for tests that drive the whole
// HTTP surface. Registrations are kept newest first.
type memoryDB struct {
	mu   sync.Mutex
	regs []registration.Registration
	next int
}

var _ DB = &memoryDB{}

func (m *memoryDB) CreateRegistration(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	reg.ID = fmt.Sprintf("reg-%d", m.next)
	m.regs = append([]registration.Registration{reg}, m.regs...)
	return reg, nil
}

func (m *memoryDB) GetRegistrations(ctx context.Context, limit int32, cursor *string) (registration.GetRegistrationsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := 0
	if cursor != nil {
		if _, err := fmt.Sscanf(*cursor, "%d", &start); err != nil {
			return registration.GetRegistrationsResponse{}, registration.NewInvalidCursorError("bad cursor", err)
		}
	}
	end := min(start+int(limit), len(m.regs))

	resp := registration.GetRegistrationsResponse{
		Data: append([]registration.Registration{}, m.regs[start:end]...),
	}
	if end < len(m.regs) {
		next := fmt.Sprintf("%d", end)
		resp.Cursor = &next
		resp.HasNextPage = true
	}
	return resp, nil
}

func (m *memoryDB) UpdateRegistrationFlag(ctx context.Context, id string, flag registration.Flag, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.regs {
		if m.regs[i].ID == id {
			m.regs[i].SetFlag(flag, value)
			return nil
		}
	}
	return registration.NewRegistrationDoesNotExistsError("no such registration", nil)
}

func newTestAPI(db DB) *API {
	return NewAPI(db, checkout.NewSessions(db, noopLogger), noopLogger, LOCAL)
}
