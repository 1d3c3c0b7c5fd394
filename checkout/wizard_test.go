package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Creator = &mockCreator{}

type mockCreator struct {
	CreateRegistrationFunc func(ctx context.Context, reg registration.Registration) (registration.Registration, error)
	calls                  []registration.Registration
}

func (m *mockCreator) CreateRegistration(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
	m.calls = append(m.calls, reg)
	return m.CreateRegistrationFunc(ctx, reg)
}

func succeedingCreator(id string) *mockCreator {
	return &mockCreator{
		CreateRegistrationFunc: func(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
			reg.ID = id
			return reg, nil
		},
	}
}

func failingCreator(err error) *mockCreator {
	return &mockCreator{
		CreateRegistrationFunc: func(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
			return registration.Registration{}, err
		},
	}
}

var fixedNow = time.Date(2026, 1, 15, 20, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func validContact() Contact {
	return Contact{
		Name:  "Ana Souza",
		Email: "ana@example.com",
		Phone: "49999990000",
		TaxID: "12345678901",
	}
}

func wizardOnPaymentStep(t *testing.T, category pricing.Category) *Wizard {
	t.Helper()
	w := New(category, WithClock(fixedClock))
	require.NoError(t, w.SetContact(validContact()))
	require.NoError(t, w.ConfirmContact())
	return w
}

func requireReason(t *testing.T, err error, reason ErrorReason) {
	t.Helper()
	var checkoutErr *Error
	require.ErrorAs(t, err, &checkoutErr)
	assert.Equal(t, reason, checkoutErr.Reason)
}

func TestNew(t *testing.T) {
	t.Run("opens on step one with the given category", func(t *testing.T) {
		w := New(pricing.Kids)

		assert.Equal(t, StageContact, w.Stage())
		assert.Equal(t, 1, w.Stage().Step())
		assert.Equal(t, pricing.Kids, w.Category())
		assert.Equal(t, DefaultPayment(), w.Payment())
		assert.Equal(t, Contact{}, w.Contact())
	})

	t.Run("unknown category falls back to adult", func(t *testing.T) {
		w := New(pricing.Category("vip"))

		assert.Equal(t, pricing.Adult, w.Category())
	})
}

func TestContactStep(t *testing.T) {
	t.Run("masks phone and tax id", func(t *testing.T) {
		w := New(pricing.Adult)

		require.NoError(t, w.SetContact(validContact()))

		assert.Equal(t, "(49) 99999-0000", w.Contact().Phone)
		assert.Equal(t, "123.456.789-01", w.Contact().TaxID)
		assert.Equal(t, "Ana Souza", w.Contact().Name)
	})

	t.Run("confirming moves to step two", func(t *testing.T) {
		w := New(pricing.Adult)
		require.NoError(t, w.SetContact(validContact()))

		require.NoError(t, w.ConfirmContact())

		assert.Equal(t, StagePayment, w.Stage())
		assert.Equal(t, 2, w.Stage().Step())
	})

	t.Run("missing fields keep step one", func(t *testing.T) {
		w := New(pricing.Adult)
		require.NoError(t, w.SetContact(Contact{Name: "Ana", Email: "not-an-email"}))

		err := w.ConfirmContact()

		requireReason(t, err, REASON_MISSING_CONTACT_FIELDS)
		assert.Equal(t, StageContact, w.Stage())
		assert.ElementsMatch(t, []FieldProblem{
			{Field: "email", Message: "E-mail inválido"},
			{Field: "phone", Message: "Campo obrigatório"},
			{Field: "taxId", Message: "Campo obrigatório"},
		}, FieldProblems(err))
	})

	t.Run("category can change on step one only", func(t *testing.T) {
		w := New(pricing.Adult)

		require.NoError(t, w.SelectCategory(pricing.Combo))
		assert.Equal(t, pricing.Combo, w.Category())

		requireReason(t, w.SelectCategory(pricing.Category("vip")), REASON_INVALID_CATEGORY)

		require.NoError(t, w.SetContact(validContact()))
		require.NoError(t, w.ConfirmContact())
		requireReason(t, w.SelectCategory(pricing.Kids), REASON_INVALID_TRANSITION)
	})

	t.Run("contact cannot be edited on step two", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Adult)

		requireReason(t, w.SetContact(Contact{}), REASON_INVALID_TRANSITION)
		assert.Equal(t, "Ana Souza", w.Contact().Name)
	})
}

func TestBack(t *testing.T) {
	w := wizardOnPaymentStep(t, pricing.Adult)
	require.NoError(t, w.SetPayment(Payment{Method: pricing.CreditCard, Installments: 2}))

	require.NoError(t, w.Back())

	assert.Equal(t, StageContact, w.Stage())
	assert.Equal(t, "(49) 99999-0000", w.Contact().Phone)
	assert.Equal(t, Payment{Method: pricing.CreditCard, Installments: 2}, w.Payment())

	requireReason(t, w.Back(), REASON_INVALID_TRANSITION)
}

func TestSetPayment(t *testing.T) {
	t.Run("card installments feed the quote", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Combo)

		require.NoError(t, w.SetPayment(Payment{Method: pricing.CreditCard, Installments: 2}))

		q := w.Quote()
		assert.Equal(t, 650.0, q.Final)
		require.NotNil(t, q.InstallmentValue)
		assert.Equal(t, 325.0, *q.InstallmentValue)
	})

	t.Run("pix is always a single installment", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Adult)

		require.NoError(t, w.SetPayment(Payment{Method: pricing.Pix, Installments: 3}))

		assert.Equal(t, 1, w.Payment().Installments)
		assert.Equal(t, 361.0, w.Quote().Final)
		assert.True(t, w.Quote().Discount)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Adult)

		requireReason(t, w.SetPayment(Payment{Method: pricing.CreditCard, Installments: 4}), REASON_INVALID_PAYMENT)
		requireReason(t, w.SetPayment(Payment{Method: pricing.CreditCard, Installments: 0}), REASON_INVALID_PAYMENT)
		requireReason(t, w.SetPayment(Payment{Method: pricing.Method("boleto"), Installments: 1}), REASON_INVALID_PAYMENT)
		assert.Equal(t, DefaultPayment(), w.Payment())
	})

	t.Run("not on step one", func(t *testing.T) {
		w := New(pricing.Adult)

		requireReason(t, w.SetPayment(DefaultPayment()), REASON_INVALID_TRANSITION)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("success clears the form and keeps the category", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Combo)
		require.NoError(t, w.SetPayment(Payment{Method: pricing.CreditCard, Installments: 3}))
		creator := succeedingCreator("reg-1")

		created, err := w.Submit(ctx, creator)
		require.NoError(t, err)

		require.Len(t, creator.calls, 1)
		written := creator.calls[0]
		assert.Equal(t, "Ana Souza", written.Name)
		assert.Equal(t, "123.456.789-01", written.TaxID)
		assert.Equal(t, pricing.Combo, written.Category)
		assert.Equal(t, pricing.CreditCard, written.PaymentMethod)
		assert.Equal(t, 3, written.Installments)
		assert.Equal(t, 650.0, written.Amount)
		assert.Equal(t, fixedNow, written.CreatedAt)

		assert.Equal(t, "reg-1", created.ID)
		assert.Equal(t, StageSucceeded, w.Stage())
		assert.True(t, w.Succeeded())
		assert.Equal(t, 1, w.Stage().Step())
		assert.Equal(t, Contact{}, w.Contact())
		assert.Equal(t, DefaultPayment(), w.Payment())
		assert.Equal(t, pricing.Combo, w.Category())
		assert.Equal(t, "reg-1", w.RegistrationID())
		assert.Empty(t, w.ErrorMessage())
	})

	t.Run("failure stays on step two with fields and the raw error", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Adult)
		require.NoError(t, w.SetPayment(Payment{Method: pricing.CreditCard, Installments: 2}))

		_, err := w.Submit(ctx, failingCreator(errors.New("duplicate key value violates unique constraint")))

		requireReason(t, err, REASON_SUBMIT_FAILED)
		assert.Equal(t, StageFailed, w.Stage())
		assert.Equal(t, 2, w.Stage().Step())
		assert.Equal(t, "Erro técnico: duplicate key value violates unique constraint", w.ErrorMessage())
		assert.Equal(t, "Ana Souza", w.Contact().Name)
		assert.Equal(t, Payment{Method: pricing.CreditCard, Installments: 2}, w.Payment())
		assert.False(t, w.Succeeded())
	})

	t.Run("retry after failure", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Kids)
		_, err := w.Submit(ctx, failingCreator(errors.New("timeout")))
		require.Error(t, err)

		attempt, err := w.BeginSubmit()
		require.NoError(t, err)
		assert.Empty(t, w.ErrorMessage())
		assert.Equal(t, StageSubmitting, w.Stage())
		assert.Equal(t, 2, w.Stage().Step())

		assert.True(t, w.Complete(attempt, registration.Registration{ID: "reg-2"}, nil))
		assert.Equal(t, StageSucceeded, w.Stage())
	})

	t.Run("only one attempt in flight", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Adult)

		_, err := w.BeginSubmit()
		require.NoError(t, err)

		_, err = w.BeginSubmit()
		requireReason(t, err, REASON_SUBMIT_IN_FLIGHT)
	})

	t.Run("cannot submit from step one", func(t *testing.T) {
		w := New(pricing.Adult)

		_, err := w.Submit(ctx, succeedingCreator("x"))
		requireReason(t, err, REASON_INVALID_TRANSITION)
	})

	t.Run("result of an attempt orphaned by reset is ignored", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Adult)
		attempt, err := w.BeginSubmit()
		require.NoError(t, err)

		w.Reset(pricing.Kids)

		assert.False(t, w.Complete(attempt, registration.Registration{ID: "late"}, nil))
		assert.Equal(t, StageContact, w.Stage())
		assert.Empty(t, w.RegistrationID())
		assert.Equal(t, pricing.Kids, w.Category())
	})

	t.Run("success screen only allows dismissal", func(t *testing.T) {
		w := wizardOnPaymentStep(t, pricing.Adult)
		_, err := w.Submit(ctx, succeedingCreator("reg-3"))
		require.NoError(t, err)

		requireReason(t, w.SetContact(validContact()), REASON_INVALID_TRANSITION)
		requireReason(t, w.ConfirmContact(), REASON_INVALID_TRANSITION)

		w.Reset(w.Category())
		assert.Equal(t, StageContact, w.Stage())
		assert.False(t, w.Succeeded())
		assert.Empty(t, w.RegistrationID())
	})
}
