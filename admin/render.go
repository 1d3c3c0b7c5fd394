package admin

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/Adaptare-Software/workshop-registration/registration"
)

//go:embed templates
var templates embed.FS

var filterLabels = []struct {
	Filter registration.Filter
	Label  string
}{
	{registration.FilterAll, "Todos"},
	{registration.FilterNotSent, "Não Enviados"},
	{registration.FilterNotPaid, "Não Pagos"},
}

func FilterLabel(f registration.Filter) string {
	for _, fl := range filterLabels {
		if fl.Filter == f {
			return fl.Label
		}
	}
	return string(f)
}

// Page is everything the admin HTML view needs.
type Page struct {
	Rows      []registration.Registration
	Filter    registration.Filter
	LoadError string
	// Shown above the table, e.g. after a failed toggle.
	Alert    string
	Location *time.Location
}

type filterLink struct {
	Value  registration.Filter
	Label  string
	Active bool
}

var pageTemplate = template.Must(template.New("admin.html.tmpl").Funcs(template.FuncMap{
	"brl":               pricing.FormatBRL,
	"paymentLabel":      registration.PaymentMethodLabel,
	"installmentsLabel": registration.InstallmentsLabel,
	"upper":             func(c pricing.Category) string { return strings.ToUpper(string(c)) },
	// Replaced per render with the page's location.
	"date": func(t time.Time) string { return registration.FormatDate(t, nil) },
}).ParseFS(templates, "templates/admin.html.tmpl"))

func RenderHTML(w io.Writer, p Page) error {
	tmpl, err := pageTemplate.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone admin template: %w", err)
	}
	tmpl.Funcs(template.FuncMap{
		"date": func(t time.Time) string { return registration.FormatDate(t, p.Location) },
	})

	links := make([]filterLink, len(filterLabels))
	for i, fl := range filterLabels {
		links[i] = filterLink{Value: fl.Filter, Label: fl.Label, Active: fl.Filter == p.Filter}
	}

	err = tmpl.Execute(w, map[string]any{
		"Rows":         p.Rows,
		"Filter":       p.Filter,
		"Filters":      links,
		"LoadError":    p.LoadError,
		"Alert":        p.Alert,
		"EmptyMessage": EmptyFilterMessage,
	})
	if err != nil {
		return fmt.Errorf("failed to execute admin template: %w", err)
	}
	return nil
}

// RenderText writes rows as an aligned plain-text table, numbered from 1.
func RenderText(w io.Writer, rows []registration.Registration, loc *time.Location) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, EmptyFilterMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tENVIADO\tPAGO\tDATA\tNOME\tCPF/CNPJ\tEMAIL\tTELEFONE\tINGRESSO\tPAGAMENTO\tVALOR")
	for i, r := range rows {
		payment := registration.PaymentMethodLabel(r.PaymentMethod)
		if l := registration.InstallmentsLabel(r.Installments); l != "" {
			payment += " " + l
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			checkbox(r.IsSent),
			checkbox(r.IsPaid),
			registration.FormatDate(r.CreatedAt, loc),
			r.Name,
			r.TaxID,
			r.Email,
			r.Phone,
			strings.ToUpper(string(r.Category)),
			payment,
			pricing.FormatBRL(r.Amount),
		)
	}
	return tw.Flush()
}

func checkbox(v bool) string {
	if v {
		return "[x]"
	}
	return "[ ]"
}
