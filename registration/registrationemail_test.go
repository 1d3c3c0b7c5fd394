package registration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSender struct {
	sent []email.Email
	err  error
}

func (c *capturingSender) SendEmail(ctx context.Context, e email.Email) error {
	c.sent = append(c.sent, e)
	return c.err
}

func TestSendRegistrationReceivedEmail(t *testing.T) {
	reg := Registration{
		ID:            "abc",
		CreatedAt:     time.Now(),
		Name:          "Carlos",
		Email:         "carlos@example.com",
		Phone:         "(49) 98888-7777",
		Category:      pricing.Combo,
		PaymentMethod: pricing.CreditCard,
		Installments:  3,
		Amount:        650,
	}

	t.Run("renders both bodies", func(t *testing.T) {
		sender := &capturingSender{}

		err := SendRegistrationReceivedEmail(context.Background(), sender, "Adaptare <contato@adaptare.com.br>", reg)
		require.NoError(t, err)
		require.Len(t, sender.sent, 1)

		sent := sender.sent[0]
		assert.Equal(t, []string{"carlos@example.com"}, sent.ToAddresses)
		assert.Equal(t, "Adaptare <contato@adaptare.com.br>", sent.FromAddress)
		assert.Contains(t, sent.Subject, "Combo Família")
		assert.Contains(t, sent.HTMLBody, "Carlos")
		assert.Contains(t, sent.HTMLBody, "650,00")
		assert.Contains(t, sent.TextBody, "Cartão de Crédito em 3x")
		assert.Contains(t, sent.TextBody, "WhatsApp ((49) 98888-7777)")
	})

	t.Run("sender error is returned", func(t *testing.T) {
		sender := &capturingSender{err: errors.New("smtp down")}

		err := SendRegistrationReceivedEmail(context.Background(), sender, "from@example.com", reg)
		assert.EqualError(t, err, "smtp down")
	})
}
