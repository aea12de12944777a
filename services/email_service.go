package services

import (
	"fmt"
	"sync"
	"time"
	"tratrouble_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	client     *resend.Client
	clientOnce = sync.Once{}
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		client = resend.NewClient(apiKey)
	})
	return client
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendVerificationEmail delivers the verification link for a pending token.
// Implements the VerificationService mailer contract.
func (es *EmailService) SendVerificationEmail(to, link string, expiresAt time.Time) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #1565C0; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.button { display: inline-block; padding: 15px 30px; background-color: #1565C0; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Verify your email address</h1>
				</div>
				<div class="content">
					<p>Click the link below to verify your email and start reporting disruptions:</p>
					<p style="text-align: center;">
						<a href="%s" class="button">Verify Email</a>
					</p>
					<p>This link expires in %.0f hours.</p>
					<p>If you did not request this, you can safely ignore this email.</p>

					<p>Link not working? Copy and paste the following URL into your browser:</p>
					<p style="word-break: break-all;">%s</p>
				</div>

				<div class="footer">
					<p>Tratrouble | Transit trouble, reported by riders</p>
					<p>Questions? Contact us at %s</p>
				</div>
			</div>
		</body>
		</html>
	`, link, time.Until(expiresAt).Hours(), link, es.cfg.Email.SupportEmail)

	return es.SendEmail([]string{to}, "Verify your email", emailBody)
}
