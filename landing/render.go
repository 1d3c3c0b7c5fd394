package landing

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Adaptare-Software/workshop-registration/pricing"
)

//go:embed templates
var templates embed.FS

var pageTemplate = template.Must(template.New("landing.html.tmpl").Funcs(funcs).ParseFS(templates, "templates/landing.html.tmpl"))

// Render writes the landing page with selected's pricing card highlighted.
// The registration form at #inscricao starts on selected, or adult when
// nothing is selected.
func Render(w io.Writer, content Content, selected pricing.Category) error {
	preselected := selected
	if preselected == "" {
		preselected = pricing.Adult
	}

	err := pageTemplate.Execute(w, map[string]any{
		"Content":     content,
		"Selected":    selected,
		"Preselected": preselected,
		"Tickets":     Tickets,
	})
	if err != nil {
		return fmt.Errorf("failed to execute landing template: %w", err)
	}
	return nil
}
