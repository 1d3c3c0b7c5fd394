package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/slices"
)

type Registration struct {
	// Assigned by the Repository on creation.
	ID            string
	CreatedAt     time.Time
	Name          string
	Email         string
	Phone         string
	TaxID         string
	Category      pricing.Category
	PaymentMethod pricing.Method
	Installments  int
	Amount        float64
	IsSent        bool
	IsPaid        bool
}

// Draft is what the checkout collects before a Registration exists.
type Draft struct {
	Name          string
	Email         string
	Phone         string
	TaxID         string
	Category      pricing.Category
	PaymentMethod pricing.Method
	Installments  int
}

// Build prices the draft and stamps it with the submission time. PIX always
// records a single installment.
func (d Draft) Build(submittedAt time.Time) Registration {
	installments := d.Installments
	if d.PaymentMethod == pricing.Pix || installments < 1 {
		installments = 1
	}

	quote := pricing.Calculate(d.Category, d.PaymentMethod, installments)

	return Registration{
		CreatedAt:     submittedAt,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		TaxID:         d.TaxID,
		Category:      d.Category,
		PaymentMethod: d.PaymentMethod,
		Installments:  installments,
		Amount:        quote.Final,
	}
}

type Flag string

const (
	FlagSent Flag = "is_sent"
	FlagPaid Flag = "is_paid"
)

func ParseFlag(s string) (Flag, error) {
	switch f := Flag(s); f {
	case FlagSent, FlagPaid:
		return f, nil
	default:
		return "", NewUnknownFlagError(s)
	}
}

func (r Registration) Flag(f Flag) bool {
	switch f {
	case FlagSent:
		return r.IsSent
	case FlagPaid:
		return r.IsPaid
	default:
		panic(fmt.Sprintf("unknown registration flag %q", f))
	}
}

func (r *Registration) SetFlag(f Flag, value bool) {
	switch f {
	case FlagSent:
		r.IsSent = value
	case FlagPaid:
		r.IsPaid = value
	default:
		panic(fmt.Sprintf("unknown registration flag %q", f))
	}
}

type Filter string

const (
	FilterAll     Filter = "all"
	FilterNotSent Filter = "not_sent"
	FilterNotPaid Filter = "not_paid"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case FilterAll, FilterNotSent, FilterNotPaid:
		return f, nil
	case "":
		return FilterAll, nil
	default:
		return "", NewUnknownFilterError(s)
	}
}

func (f Filter) Matches(r Registration) bool {
	switch f {
	case FilterNotSent:
		return !r.IsSent
	case FilterNotPaid:
		return !r.IsPaid
	default:
		return true
	}
}

// Apply narrows regs to the ones matching f without reordering them.
func (f Filter) Apply(regs []Registration) []Registration {
	return slices.Filter(regs, f.Matches)
}

type GetRegistrationsResponse struct {
	Data        []Registration
	Cursor      *string
	HasNextPage bool
}

type Repository interface {
	CreateRegistration(ctx context.Context, reg Registration) (Registration, error)
	// GetRegistrations pages through registrations newest first.
	GetRegistrations(ctx context.Context, limit int32, cursor *string) (GetRegistrationsResponse, error)
	UpdateRegistrationFlag(ctx context.Context, id string, flag Flag, value bool) error
}

const listAllPageSize = 100

// ListAll follows the repository cursor until every registration has been
// read. The result is ordered newest first.
func ListAll(ctx context.Context, repo Repository) ([]Registration, error) {
	var (
		all    []Registration
		cursor *string
	)

	for {
		page, err := repo.GetRegistrations(ctx, listAllPageSize, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if !page.HasNextPage || page.Cursor == nil {
			break
		}
		cursor = page.Cursor
	}

	if all == nil {
		all = []Registration{}
	}
	return all, nil
}
