package admin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/Adaptare-Software/workshop-registration/slices"
)

const (
	ToggleFailedMessage = "Falha ao atualizar status. Recarregando dados..."
	EmptyFilterMessage  = "Nenhum registro encontrado para este filtro."
)

// Alerter shows a blocking message to whoever is looking at the table.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

type AlerterFunc func(ctx context.Context, message string)

func (f AlerterFunc) Alert(ctx context.Context, message string) {
	f(ctx, message)
}

// Table is the admin's local copy of every registration, newest first.
// Toggles are applied locally before the store confirms them; a failed
// write is recovered by reloading the whole list.
type Table struct {
	mu     sync.Mutex
	rows   []registration.Registration
	filter registration.Filter

	store   registration.Repository
	alerter Alerter
	logger  *slog.Logger
}

func NewTable(store registration.Repository, alerter Alerter, logger *slog.Logger) *Table {
	return &Table{
		rows:    []registration.Registration{},
		filter:  registration.FilterAll,
		store:   store,
		alerter: alerter,
		logger:  logger,
	}
}

// Load replaces the local rows with the store's full list. On failure the
// previous rows are kept.
func (t *Table) Load(ctx context.Context) error {
	rows, err := registration.ListAll(ctx, t.store)
	if err != nil {
		t.logger.Error("failed to load registrations", slog.String("error", err.Error()))
		return NewLoadFailedError("Failed to load registrations", err)
	}

	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()

	return nil
}

func (t *Table) SetFilter(f registration.Filter) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.filter = f
}

func (t *Table) Filter() registration.Filter {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.filter
}

// Rows returns the rows matching the current filter, in list order.
func (t *Table) Rows() []registration.Registration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.filter.Apply(t.rows)
}

// All returns every loaded row regardless of the filter.
func (t *Table) All() []registration.Registration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]registration.Registration{}, t.rows...)
}

// Toggle flips flag on the row with id, as currently shown in the table.
func (t *Table) Toggle(ctx context.Context, id string, flag registration.Flag) error {
	if _, err := registration.ParseFlag(string(flag)); err != nil {
		return err
	}

	t.mu.Lock()
	idx := slices.IndexFunc(t.rows, func(r registration.Registration) bool { return r.ID == id })
	if idx < 0 {
		t.mu.Unlock()
		return NewRowNotFoundError(fmt.Sprintf("Registration %q is not loaded", id))
	}
	value := !t.rows[idx].Flag(flag)
	t.mu.Unlock()

	return t.Set(ctx, id, flag, value)
}

// Set writes value to flag on the row with id. The new value is visible
// through Rows before the store is written. If the write fails the admin is
// alerted and the list is reloaded from the store.
func (t *Table) Set(ctx context.Context, id string, flag registration.Flag, value bool) error {
	if _, err := registration.ParseFlag(string(flag)); err != nil {
		return err
	}

	t.mu.Lock()
	idx := slices.IndexFunc(t.rows, func(r registration.Registration) bool { return r.ID == id })
	if idx < 0 {
		t.mu.Unlock()
		return NewRowNotFoundError(fmt.Sprintf("Registration %q is not loaded", id))
	}
	t.rows[idx].SetFlag(flag, value)
	t.mu.Unlock()

	err := t.store.UpdateRegistrationFlag(ctx, id, flag, value)
	if err == nil {
		return nil
	}

	t.logger.Error("failed to update registration flag",
		slog.String("registration-id", id),
		slog.String("flag", string(flag)),
		slog.Bool("value", value),
		slog.String("error", err.Error()),
	)
	t.alerter.Alert(ctx, ToggleFailedMessage)

	if loadErr := t.Load(ctx); loadErr != nil {
		t.alerter.Alert(ctx, loadErr.Error())
	}

	return NewToggleFailedError(ToggleFailedMessage, err)
}

// ToggleRow toggles the n-th row (zero based) of the filtered view.
func (t *Table) ToggleRow(ctx context.Context, n int, flag registration.Flag) error {
	rows := t.Rows()
	if n < 0 || n >= len(rows) {
		return NewRowNotFoundError(fmt.Sprintf("No row %d in the current view", n+1))
	}
	return t.Toggle(ctx, rows[n].ID, flag)
}
