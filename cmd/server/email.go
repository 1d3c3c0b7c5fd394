package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Adaptare-Software/workshop-registration/config"
	"github.com/Adaptare-Software/workshop-registration/registration"
	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/International-Combat-Archery-Alliance/email/awsses"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

var _ email.Sender = &EmailLogger{}

// email.Sender that logs out the email contents for local dev
type EmailLogger struct {
	logger *slog.Logger
}

func (el *EmailLogger) SendEmail(ctx context.Context, e email.Email) error {
	el.logger.Info("email that would be sent", slog.Any("email", e))

	return nil
}

func createProdAWSEmailSender(ctx context.Context) (*awsses.AWSSESSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get aws config: %w", err)
	}

	sesClient := sesv2.NewFromConfig(cfg)
	sender := awsses.NewAWSSESSender(sesClient)

	return sender, nil
}

func createEmailSender(ctx context.Context, logger *slog.Logger, env config.Env) (email.Sender, error) {
	if env == config.LOCAL {
		return &EmailLogger{logger: logger}, nil
	}

	return createProdAWSEmailSender(ctx)
}

// registrationReceivedNotifier sends the confirmation email for a stored
// registration. A failed send is logged and never surfaces to the registrant.
func registrationReceivedNotifier(sender email.Sender, from string, logger *slog.Logger) func(ctx context.Context, reg registration.Registration) {
	return func(ctx context.Context, reg registration.Registration) {
		err := registration.SendRegistrationReceivedEmail(ctx, sender, from, reg)
		if err != nil {
			logger.Error("failed to send registration received email",
				slog.String("registration-id", reg.ID),
				slog.String("error", err.Error()),
			)
			return
		}

		logger.Info("registration received email sent", slog.String("registration-id", reg.ID))
	}
}
