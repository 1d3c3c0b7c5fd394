package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/ptr"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistration(name string, createdAt time.Time) registration.Registration {
	return registration.Draft{
		Name:          name,
		Email:         "test@example.com",
		Phone:         "(49) 99999-0000",
		TaxID:         "12.345.678/0001-99",
		Category:      pricing.Combo,
		PaymentMethod: pricing.Pix,
	}.Build(createdAt)
}

func TestCreateRegistration(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored row", func(t *testing.T) {
		resetTable(ctx)
		createdAt := time.Date(2026, 1, 10, 18, 30, 0, 0, time.UTC)

		created, err := db.CreateRegistration(ctx, newTestRegistration("Maria", createdAt))
		require.NoError(t, err)

		_, err = uuid.Parse(created.ID)
		require.NoError(t, err)
		assert.True(t, createdAt.Equal(created.CreatedAt))
		assert.Equal(t, "Maria", created.Name)
		assert.Equal(t, "12.345.678/0001-99", created.TaxID)
		assert.Equal(t, pricing.Combo, created.Category)
		assert.Equal(t, pricing.Pix, created.PaymentMethod)
		assert.Equal(t, 1, created.Installments)
		assert.InDelta(t, 617.5, created.Amount, 0.001)
		assert.False(t, created.IsSent)
		assert.False(t, created.IsPaid)
	})

	t.Run("rejects installments out of range", func(t *testing.T) {
		resetTable(ctx)
		reg := newTestRegistration("Maria", time.Now())
		reg.Installments = 4

		_, err := db.CreateRegistration(ctx, reg)
		var regErr *registration.Error
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, registration.REASON_FAILED_TO_WRITE, regErr.Reason)
	})
}

func TestGetRegistrations(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first across pages", func(t *testing.T) {
		resetTable(ctx)
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		var ids []string
		for i := range 5 {
			created, err := db.CreateRegistration(ctx, newTestRegistration("reg", base.Add(time.Duration(i)*time.Hour)))
			require.NoError(t, err)
			ids = append(ids, created.ID)
		}

		page1, err := db.GetRegistrations(ctx, 2, nil)
		require.NoError(t, err)
		require.Len(t, page1.Data, 2)
		assert.True(t, page1.HasNextPage)
		require.NotNil(t, page1.Cursor)
		assert.Equal(t, ids[4], page1.Data[0].ID)
		assert.Equal(t, ids[3], page1.Data[1].ID)

		page2, err := db.GetRegistrations(ctx, 2, page1.Cursor)
		require.NoError(t, err)
		require.Len(t, page2.Data, 2)
		assert.Equal(t, ids[2], page2.Data[0].ID)
		assert.Equal(t, ids[1], page2.Data[1].ID)

		page3, err := db.GetRegistrations(ctx, 2, page2.Cursor)
		require.NoError(t, err)
		require.Len(t, page3.Data, 1)
		assert.False(t, page3.HasNextPage)
		assert.Nil(t, page3.Cursor)
		assert.Equal(t, ids[0], page3.Data[0].ID)
	})

	t.Run("same timestamp is broken by id", func(t *testing.T) {
		resetTable(ctx)
		at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for range 3 {
			_, err := db.CreateRegistration(ctx, newTestRegistration("tie", at))
			require.NoError(t, err)
		}

		all, err := registration.ListAll(ctx, db)
		require.NoError(t, err)
		require.Len(t, all, 3)

		page1, err := db.GetRegistrations(ctx, 1, nil)
		require.NoError(t, err)
		page2, err := db.GetRegistrations(ctx, 1, page1.Cursor)
		require.NoError(t, err)
		page3, err := db.GetRegistrations(ctx, 1, page2.Cursor)
		require.NoError(t, err)

		assert.Equal(t, []string{all[0].ID, all[1].ID, all[2].ID},
			[]string{page1.Data[0].ID, page2.Data[0].ID, page3.Data[0].ID})
	})

	t.Run("invalid cursor", func(t *testing.T) {
		_, err := db.GetRegistrations(ctx, 10, ptr.String("%%%"))
		var regErr *registration.Error
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, registration.REASON_INVALID_CURSOR, regErr.Reason)
	})
}

func TestUpdateRegistrationFlag(t *testing.T) {
	ctx := context.Background()

	t.Run("flips only the named flag", func(t *testing.T) {
		resetTable(ctx)
		created, err := db.CreateRegistration(ctx, newTestRegistration("John", time.Now()))
		require.NoError(t, err)

		require.NoError(t, db.UpdateRegistrationFlag(ctx, created.ID, registration.FlagPaid, true))

		resp, err := db.GetRegistrations(ctx, 10, nil)
		require.NoError(t, err)
		require.Len(t, resp.Data, 1)
		assert.True(t, resp.Data[0].IsPaid)
		assert.False(t, resp.Data[0].IsSent)
	})

	t.Run("unknown registration", func(t *testing.T) {
		resetTable(ctx)

		for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
			err := db.UpdateRegistrationFlag(ctx, id, registration.FlagSent, true)
			var regErr *registration.Error
			require.ErrorAs(t, err, &regErr)
			assert.Equal(t, registration.REASON_REGISTRATION_DOES_NOT_EXIST, regErr.Reason)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		err := db.UpdateRegistrationFlag(ctx, uuid.NewString(), registration.Flag("amount; DROP TABLE x"), true)
		var regErr *registration.Error
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, registration.REASON_UNKNOWN_FLAG, regErr.Reason)
	})
}
