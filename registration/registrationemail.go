package registration

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	texttemplate "text/template"

	"github.com/Adaptare-Software/workshop-registration/pricing"
	"github.com/International-Combat-Archery-Alliance/email"
)

//go:embed templates
var templates embed.FS

var templateFuncs = map[string]any{
	"brl":               pricing.FormatBRL,
	"categoryLabel":     CategoryLabel,
	"paymentLabel":      PaymentMethodLabel,
	"installmentsLabel": InstallmentsLabel,
}

// SendRegistrationReceivedEmail tells the registrant their signup was stored
// and that payment details follow over WhatsApp. It does not touch IsSent.
func SendRegistrationReceivedEmail(ctx context.Context, emailSender email.Sender, fromAddress string, reg Registration) error {
	htmlBody, err := makeHtmlBody(reg)
	if err != nil {
		return err
	}

	textOnlyBody, err := makeTextOnlyBody(reg)
	if err != nil {
		return err
	}

	return emailSender.SendEmail(ctx, email.Email{
		FromAddress: fromAddress,
		ToAddresses: []string{reg.Email},
		Subject:     fmt.Sprintf("Inscrição recebida - %s", CategoryLabel(reg.Category)),
		HTMLBody:    htmlBody,
		TextBody:    textOnlyBody,
	})
}

func makeHtmlBody(reg Registration) (string, error) {
	tmpl, err := template.New("registration-received.tmpl").Funcs(templateFuncs).
		ParseFS(templates, "templates/registration-received.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Registration": reg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}

func makeTextOnlyBody(reg Registration) (string, error) {
	tmpl, err := texttemplate.New("registration-received-textonly.tmpl").Funcs(templateFuncs).
		ParseFS(templates, "templates/registration-received-textonly.tmpl")
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Registration": reg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}

	return buf.String(), nil
}
