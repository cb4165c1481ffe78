// Package mailer sends transactional notices through sendgrid.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	templates "github.com/civicmap/civicmap-api/templates/html"
)

// Mailer sends notices to report owners
type Mailer interface {
	SendResolvedNotice(toEmail, toName, reportTitle string) error
}

type sendgridMailer struct {
	apiKey string
}

// NewSendgridMailer builds a Mailer backed by the sendgrid API
func NewSendgridMailer(apiKey string) Mailer {
	return &sendgridMailer{apiKey: apiKey}
}

func (m *sendgridMailer) SendResolvedNotice(toEmail, toName, reportTitle string) error {
	from := mail.NewEmail("CivicMap", "no-reply@civicmap.app")
	to := mail.NewEmail(toName, toEmail)
	subject := "Your report has been resolved"
	plainText := fmt.Sprintf("Good news! Your report %q has been marked resolved.", reportTitle)
	htmlContent := templates.RenderGenericEmail(subject, plainText)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
