package registration

import (
	"strconv"
	"strings"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
)

const dateLayout = "02/01/2006, 15:04:05"

func PaymentMethodLabel(m pricing.Method) string {
	if m == pricing.Pix {
		return "Pix"
	}
	return "Cartão de Crédito"
}

func CategoryLabel(c pricing.Category) string {
	switch c {
	case pricing.Adult:
		return "Workshop Adulto"
	case pricing.Kids:
		return "Mestres da IA Kids"
	case pricing.Combo:
		return "Combo Família (Pais + Filhos)"
	default:
		return strings.ToUpper(string(c))
	}
}

// FormatDate renders t the way the admin table shows it, in loc (UTC when nil).
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout)
}

// InstallmentsLabel is empty for single payments.
func InstallmentsLabel(n int) string {
	if n <= 1 {
		return ""
	}
	return strconv.Itoa(n) + "x"
}
