package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adaptare-Software/workshop-registration/mask"
	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
)

const failurePrefix = "Erro técnico: "

type Contact struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
	TaxID string `json:"taxId" validate:"required"`
}

type Payment struct {
	Method       pricing.Method
	Installments int
}

func DefaultPayment() Payment {
	return Payment{Method: pricing.Pix, Installments: 1}
}

// Creator writes one registration and returns the stored row.
type Creator interface {
	CreateRegistration(ctx context.Context, reg registration.Registration) (registration.Registration, error)
}

// Attempt is a single submission handed out by BeginSubmit.
type Attempt struct {
	seq         uint64
	Draft       registration.Draft
	SubmittedAt time.Time
}

func (a Attempt) Registration() registration.Registration {
	return a.Draft.Build(a.SubmittedAt)
}

type Option func(*Wizard)

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) {
		w.now = now
	}
}

// Wizard is the two-step registration form. It is not safe for concurrent
// use; Sessions serializes access.
type Wizard struct {
	stage    Stage
	category pricing.Category
	contact  Contact
	payment  Payment

	errMessage     string
	registrationID string

	// Bumped on every submit and reset so late results can be told apart.
	seq uint64

	now func() time.Time
}

// New opens a wizard preselected on category. Unknown categories fall back
// to adult.
func New(category pricing.Category, opts ...Option) *Wizard {
	w := &Wizard{now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	w.Reset(category)
	return w
}

func (w *Wizard) Stage() Stage               { return w.stage }
func (w *Wizard) Category() pricing.Category { return w.category }
func (w *Wizard) Contact() Contact           { return w.contact }
func (w *Wizard) Payment() Payment           { return w.payment }

// ErrorMessage is the text of the last failed submission, if any.
func (w *Wizard) ErrorMessage() string { return w.errMessage }

// RegistrationID is set once a submission succeeds.
func (w *Wizard) RegistrationID() string { return w.registrationID }

func (w *Wizard) Succeeded() bool { return w.stage == StageSucceeded }

func (w *Wizard) Quote() pricing.Quote {
	return pricing.Calculate(w.category, w.payment.Method, w.payment.Installments)
}

// Reset discards everything and returns to an empty contact form. Any
// submission still in flight is orphaned.
func (w *Wizard) Reset(category pricing.Category) {
	if _, err := pricing.ParseCategory(string(category)); err != nil {
		category = pricing.Adult
	}

	w.seq++
	w.stage = StageContact
	w.category = category
	w.contact = Contact{}
	w.payment = DefaultPayment()
	w.errMessage = ""
	w.registrationID = ""
}

// SetContact stores the step-1 fields, applying the phone and tax-id masks.
func (w *Wizard) SetContact(c Contact) error {
	if w.stage != StageContact {
		return NewInvalidTransitionError("edit contact details", w.stage)
	}

	w.contact = Contact{
		Name:  c.Name,
		Email: strings.TrimSpace(c.Email),
		Phone: mask.Phone(c.Phone),
		TaxID: mask.TaxID(c.TaxID),
	}
	return nil
}

func (w *Wizard) SelectCategory(category pricing.Category) error {
	if w.stage != StageContact {
		return NewInvalidTransitionError("change ticket", w.stage)
	}

	parsed, err := pricing.ParseCategory(string(category))
	if err != nil {
		return NewInvalidCategoryError(fmt.Sprintf("Unknown ticket category %q", category), err)
	}

	w.category = parsed
	return nil
}

// ConfirmContact moves from step 1 to step 2. Nothing is written.
func (w *Wizard) ConfirmContact() error {
	if w.stage != StageContact {
		return NewInvalidTransitionError("confirm contact details", w.stage)
	}

	if err := validate.Struct(w.contact); err != nil {
		return NewMissingContactFieldsError("Preencha todos os campos obrigatórios", err)
	}

	w.stage = StagePayment
	return nil
}

// Back returns to step 1 keeping every field. A previous failure message is
// dropped.
func (w *Wizard) Back() error {
	if !w.stage.acceptsPayment() {
		return NewInvalidTransitionError("go back", w.stage)
	}

	w.stage = StageContact
	w.errMessage = ""
	return nil
}

func (w *Wizard) SetPayment(p Payment) error {
	if !w.stage.acceptsPayment() {
		return NewInvalidTransitionError("edit payment", w.stage)
	}

	method, err := pricing.ParseMethod(string(p.Method))
	if err != nil {
		return NewInvalidPaymentError(fmt.Sprintf("Unknown payment method %q", p.Method), err)
	}

	installments := p.Installments
	if method == pricing.Pix {
		installments = 1
	}
	if !pricing.ValidInstallments(installments) {
		return NewInvalidPaymentError(fmt.Sprintf("Installments must be between 1 and %d", pricing.MaxInstallments), nil)
	}

	w.payment = Payment{Method: method, Installments: installments}
	return nil
}

// BeginSubmit enters Submitting and hands out the registration to write.
// Only one attempt may be outstanding.
func (w *Wizard) BeginSubmit() (Attempt, error) {
	if w.stage == StageSubmitting {
		return Attempt{}, NewSubmitInFlightError()
	}
	if !w.stage.acceptsPayment() {
		return Attempt{}, NewInvalidTransitionError("submit", w.stage)
	}

	w.seq++
	w.stage = StageSubmitting
	w.errMessage = ""

	return Attempt{
		seq: w.seq,
		Draft: registration.Draft{
			Name:          w.contact.Name,
			Email:         w.contact.Email,
			Phone:         w.contact.Phone,
			TaxID:         w.contact.TaxID,
			Category:      w.category,
			PaymentMethod: w.payment.Method,
			Installments:  w.payment.Installments,
		},
		SubmittedAt: w.now(),
	}, nil
}

// Complete records the outcome of an attempt and reports whether it was
// applied. Results for attempts superseded by a reset are ignored.
func (w *Wizard) Complete(a Attempt, created registration.Registration, err error) bool {
	if w.stage != StageSubmitting || a.seq != w.seq {
		return false
	}

	if err != nil {
		w.stage = StageFailed
		w.errMessage = failurePrefix + err.Error()
		return true
	}

	category := w.category
	w.Reset(category)
	w.stage = StageSucceeded
	w.registrationID = created.ID
	return true
}

// Submit runs a whole attempt against creator. A failed write is reported
// as SUBMIT_FAILED and leaves the wizard on step 2 with its fields intact.
func (w *Wizard) Submit(ctx context.Context, creator Creator) (registration.Registration, error) {
	attempt, err := w.BeginSubmit()
	if err != nil {
		return registration.Registration{}, err
	}

	created, err := creator.CreateRegistration(ctx, attempt.Registration())
	w.Complete(attempt, created, err)
	if err != nil {
		return registration.Registration{}, NewSubmitFailedError(w.errMessage, err)
	}

	return created, nil
}
