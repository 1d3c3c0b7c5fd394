package landing

import (
	"fmt"
	"html/template"
	"io"

	"github.com/Adaptare-Software/workshop-registration/checkout"
	"github.com/Adaptare-Software/workshop-registration/pricing"
)

// Tickets is the order the ticket choices appear in on both forms.
var Tickets = []pricing.Category{pricing.Adult, pricing.Kids, pricing.Combo}

var ticketLabels = map[pricing.Category]string{
	pricing.Adult: "Adulto",
	pricing.Kids:  "Kids",
	pricing.Combo: "Combo",
}

func TicketLabel(c pricing.Category) string {
	if label, ok := ticketLabels[c]; ok {
		return label
	}
	return string(c)
}

var funcs = template.FuncMap{
	"brl":    pricing.FormatBRL,
	"ticket": TicketLabel,
}

var wizardTemplate = template.Must(template.New("wizard.html.tmpl").Funcs(funcs).ParseFS(templates, "templates/wizard.html.tmpl"))

// WizardPage is one render of the registration form for a checkout session.
type WizardPage struct {
	Session checkout.Snapshot
	// Expired replaces the form with a restart link.
	Expired bool
	// Message is the reason the last step was rejected.
	Message string
	// Problems maps a contact field to what is wrong with it.
	Problems map[string]string
}

// Alert is the banner above the form: the rejected step first, then a
// failed submission.
func (p WizardPage) Alert() string {
	if p.Message != "" {
		return p.Message
	}
	return p.Session.ErrorMessage
}

// ProblemsByField indexes checkout field problems for the template.
func ProblemsByField(problems []checkout.FieldProblem) map[string]string {
	out := make(map[string]string, len(problems))
	for _, p := range problems {
		if _, seen := out[p.Field]; !seen {
			out[p.Field] = p.Message
		}
	}
	return out
}

type wizardView struct {
	WizardPage
	Tickets      []pricing.Category
	Installments []pricing.InstallmentOption
}

func RenderWizard(w io.Writer, page WizardPage) error {
	err := wizardTemplate.Execute(w, wizardView{
		WizardPage:   page,
		Tickets:      Tickets,
		Installments: pricing.InstallmentOptions(page.Session.Category),
	})
	if err != nil {
		return fmt.Errorf("failed to execute wizard template: %w", err)
	}
	return nil
}
