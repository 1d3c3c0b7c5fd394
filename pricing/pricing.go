// Package pricing maps a ticket category and payment method to the amount a
// registrant owes.
package pricing

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

type Category string

const (
	Adult Category = "adult"
	Kids  Category = "kids"
	Combo Category = "combo"
)

var Categories = []Category{Kids, Adult, Combo}

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case Adult, Kids, Combo:
		return c, nil
	default:
		return "", fmt.Errorf("unknown ticket category: %q", s)
	}
}

type Method string

const (
	Pix        Method = "pix"
	CreditCard Method = "credit_card"
)

func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case Pix, CreditCard:
		return m, nil
	default:
		return "", fmt.Errorf("unknown payment method: %q", s)
	}
}

const (
	Currency = money.BRL

	// PixFactor is applied to the base price when paying with PIX.
	PixFactor = 0.95

	MaxInstallments = 3
)

var basePrices = map[Category]*money.Money{
	Adult: money.New(38000, Currency),
	Kids:  money.New(35000, Currency),
	Combo: money.New(65000, Currency),
}

// BasePrice returns the list price of a category in reais, or 0 for an
// unknown category.
func BasePrice(c Category) float64 {
	price, ok := basePrices[c]
	if !ok {
		return 0
	}
	return price.AsMajorUnits()
}

type Quote struct {
	Category     Category
	Method       Method
	Installments int
	Base         float64
	Final        float64
	Discount     bool
	// Only set for credit card payments.
	InstallmentValue *float64
}

// Calculate prices a ticket. PIX gets the 5% discount and no installments;
// any other method pays the base price split into installments equal parts.
// Nothing is rounded here. installments must be at least 1 for card quotes.
func Calculate(category Category, method Method, installments int) Quote {
	base := BasePrice(category)

	if method == Pix {
		return Quote{
			Category:     category,
			Method:       method,
			Installments: installments,
			Base:         base,
			Final:        base * PixFactor,
			Discount:     true,
		}
	}

	installmentValue := base / float64(installments)
	return Quote{
		Category:         category,
		Method:           method,
		Installments:     installments,
		Base:             base,
		Final:            base,
		Discount:         false,
		InstallmentValue: &installmentValue,
	}
}

func (q Quote) DiscountAmount() float64 {
	return q.Base - q.Final
}

// pt-BR shows a space between the symbol and the amount.
var brlFormatter = money.NewFormatter(2, ",", ".", "R$", "$ 1")

// FormatBRL renders a value as Brazilian reais, rounded to the nearest
// centavo.
func FormatBRL(value float64) string {
	return brlFormatter.Format(int64(math.Round(value * 100)))
}

type InstallmentOption struct {
	Count int
	Value float64
	Label string
}

// InstallmentOptions lists the interest-free card plans offered for a category.
func InstallmentOptions(category Category) []InstallmentOption {
	base := BasePrice(category)

	options := make([]InstallmentOption, 0, MaxInstallments)
	for n := 1; n <= MaxInstallments; n++ {
		value := base / float64(n)
		options = append(options, InstallmentOption{
			Count: n,
			Value: value,
			Label: fmt.Sprintf("%dx de %s (sem juros)", n, FormatBRL(value)),
		})
	}
	return options
}

// ValidInstallments reports whether n is an offered installment count.
func ValidInstallments(n int) bool {
	return n >= 1 && n <= MaxInstallments
}
