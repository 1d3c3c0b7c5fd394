package admin

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderRows() []registration.Registration {
	return []registration.Registration{
		{
			ID:            "11111111-1111-1111-1111-111111111111",
			CreatedAt:     time.Date(2026, 1, 10, 21, 30, 0, 0, time.UTC),
			Name:          "Ana <Souza>",
			Email:         "ana@example.com",
			Phone:         "(49) 99999-0000",
			TaxID:         "123.456.789-01",
			Category:      pricing.Combo,
			PaymentMethod: pricing.CreditCard,
			Installments:  3,
			Amount:        650,
			IsPaid:        true,
		},
	}
}

func TestRenderHTML(t *testing.T) {
	t.Run("renders rows in the given location", func(t *testing.T) {
		var buf bytes.Buffer
		brt := time.FixedZone("BRT", -3*60*60)

		err := RenderHTML(&buf, Page{Rows: renderRows(), Filter: registration.FilterNotSent, Location: brt})
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Gestão de Inscrições")
		assert.Contains(t, out, "10/01/2026, 18:30:00")
		assert.Contains(t, out, "Ana &lt;Souza&gt;")
		assert.Contains(t, out, "COMBO")
		assert.Contains(t, out, "Cartão de Crédito")
		assert.Contains(t, out, "3x")
		assert.Contains(t, out, "650,00")
		assert.Contains(t, out, "/admin/registrations/11111111-1111-1111-1111-111111111111/toggle?field=is_sent&amp;value=true&amp;filter=not_sent")
		assert.Contains(t, out, "/admin/registrations/11111111-1111-1111-1111-111111111111/toggle?field=is_paid&amp;value=false&amp;filter=not_sent")
		assert.Contains(t, out, `class="active">Não Enviados`)
		assert.NotContains(t, out, EmptyFilterMessage)
	})

	t.Run("empty view shows the filter message", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, RenderHTML(&buf, Page{Filter: registration.FilterNotPaid}))

		assert.Contains(t, buf.String(), EmptyFilterMessage)
	})

	t.Run("load error replaces the table", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, RenderHTML(&buf, Page{LoadError: "boom"}))

		assert.Contains(t, buf.String(), "Erro ao carregar: boom")
		assert.NotContains(t, buf.String(), "<table>")
	})
}

func TestRenderText(t *testing.T) {
	t.Run("numbers rows from one", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, RenderText(&buf, renderRows(), nil))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[1], "1 "))
		assert.Contains(t, lines[1], "[x]")
		assert.Contains(t, lines[1], "10/01/2026, 21:30:00")
		assert.Contains(t, lines[1], "Cartão de Crédito 3x")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer

		require.NoError(t, RenderText(&buf, nil, nil))

		assert.Equal(t, EmptyFilterMessage+"\n", buf.String())
	})
}

func TestFilterLabel(t *testing.T) {
	assert.Equal(t, "Todos", FilterLabel(registration.FilterAll))
	assert.Equal(t, "Não Pagos", FilterLabel(registration.FilterNotPaid))
}
