package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/Adaptare-Software/workshop-registration/slices"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var _ registration.Repository = &DB{}

type registrationRow struct {
	ID            string    `db:"id"`
	CreatedAt     time.Time `db:"created_at"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	TaxID         string    `db:"cpf_cnpj"`
	PaymentMethod string    `db:"payment_method"`
	Installments  int       `db:"installments"`
	TicketType    string    `db:"ticket_type"`
	Amount        float64   `db:"amount"`
	IsSent        bool      `db:"is_sent"`
	IsPaid        bool      `db:"is_paid"`
}

const registrationColumns = "id::text AS id, created_at, name, email, phone, cpf_cnpj, payment_method, installments, ticket_type, amount, is_sent, is_paid"

// Flag columns are interpolated into SQL, so only these may be used.
var flagColumns = map[registration.Flag]string{
	registration.FlagSent: "is_sent",
	registration.FlagPaid: "is_paid",
}

func rowToRegistration(row registrationRow) registration.Registration {
	return registration.Registration{
		ID:            row.ID,
		CreatedAt:     row.CreatedAt,
		Name:          row.Name,
		Email:         row.Email,
		Phone:         row.Phone,
		TaxID:         row.TaxID,
		Category:      pricing.Category(row.TicketType),
		PaymentMethod: pricing.Method(row.PaymentMethod),
		Installments:  row.Installments,
		Amount:        row.Amount,
		IsSent:        row.IsSent,
		IsPaid:        row.IsPaid,
	}
}

func (d *DB) CreateRegistration(ctx context.Context, reg registration.Registration) (created registration.Registration, err error) {
	ctx, span := d.startSpan(ctx, "postgres.CreateRegistration")
	defer func() { endSpan(span, err) }()

	query := fmt.Sprintf(`INSERT INTO workshop_registrations
		(created_at, name, email, phone, cpf_cnpj, payment_method, installments, ticket_type, amount, is_sent, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s`, registrationColumns)

	var row registrationRow
	err = d.db.GetContext(ctx, &row, query,
		reg.CreatedAt.UTC(), reg.Name, reg.Email, reg.Phone, reg.TaxID,
		string(reg.PaymentMethod), reg.Installments, string(reg.Category), reg.Amount,
		reg.IsSent, reg.IsPaid,
	)
	if err != nil {
		return registration.Registration{}, registration.NewFailedToWriteError("Failed to insert registration", err)
	}

	span.SetAttributes(attribute.String("registration.id", row.ID))

	return rowToRegistration(row), nil
}

func (d *DB) GetRegistrations(ctx context.Context, limit int32, cursor *string) (resp registration.GetRegistrationsResponse, err error) {
	ctx, span := d.startSpan(ctx, "postgres.GetRegistrations")
	defer func() { endSpan(span, err) }()

	var rows []registrationRow

	// Fetch 1 more than limit to check if there is another page or not
	if cursor == nil {
		query := fmt.Sprintf(`SELECT %s FROM workshop_registrations
			ORDER BY created_at DESC, id DESC
			LIMIT $1`, registrationColumns)
		err = d.db.SelectContext(ctx, &rows, query, limit+1)
	} else {
		key, decodeErr := decodeCursor(*cursor)
		if decodeErr != nil {
			return registration.GetRegistrationsResponse{}, registration.NewInvalidCursorError("Invalid cursor", decodeErr)
		}
		if _, parseErr := uuid.Parse(key.ID); parseErr != nil {
			return registration.GetRegistrationsResponse{}, registration.NewInvalidCursorError("Invalid cursor", parseErr)
		}

		query := fmt.Sprintf(`SELECT %s FROM workshop_registrations
			WHERE (created_at, id) < ($1, $2::uuid)
			ORDER BY created_at DESC, id DESC
			LIMIT $3`, registrationColumns)
		err = d.db.SelectContext(ctx, &rows, query, key.CreatedAt, key.ID, limit+1)
	}
	if err != nil {
		return registration.GetRegistrationsResponse{}, registration.NewFailedToFetchError("Failed to fetch registrations from postgres", err)
	}

	hasNextPage := len(rows) > int(limit)
	rows = rows[:min(int(limit), len(rows))]

	var newCursor *string
	if hasNextPage && len(rows) > 0 {
		last := rows[len(rows)-1]
		c, encErr := encodeCursor(pageKey{CreatedAt: last.CreatedAt, ID: last.ID})
		if encErr != nil {
			return registration.GetRegistrationsResponse{}, registration.NewFailedToFetchError("Failed to make cursor from last row", encErr)
		}
		newCursor = &c
	}

	span.SetAttributes(attribute.Int("registration.count", len(rows)))

	return registration.GetRegistrationsResponse{
		Data:        slices.Map(rows, rowToRegistration),
		Cursor:      newCursor,
		HasNextPage: hasNextPage,
	}, nil
}

func (d *DB) UpdateRegistrationFlag(ctx context.Context, id string, flag registration.Flag, value bool) (err error) {
	ctx, span := d.startSpan(ctx, "postgres.UpdateRegistrationFlag")
	defer func() { endSpan(span, err) }()

	span.SetAttributes(
		attribute.String("registration.id", id),
		attribute.String("registration.flag", string(flag)),
		attribute.Bool("registration.flag_value", value),
	)

	column, ok := flagColumns[flag]
	if !ok {
		return registration.NewUnknownFlagError(string(flag))
	}

	if _, parseErr := uuid.Parse(id); parseErr != nil {
		return registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with ID %q does not exist", id), parseErr)
	}

	query := fmt.Sprintf("UPDATE workshop_registrations SET %s = $1 WHERE id = $2", column)
	res, err := d.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return registration.NewFailedToWriteError("Failed to update registration", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return registration.NewFailedToWriteError("Failed to read affected rows", err)
	}
	if affected == 0 {
		return registration.NewRegistrationDoesNotExistsError(fmt.Sprintf("Registration with ID %q does not exist", id), nil)
	}

	return nil
}
