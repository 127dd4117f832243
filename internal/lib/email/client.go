// Package email sends transactional emails through Resend.
//
// Bodies are rendered from HTML templates compiled into the binary.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const sender = "Jobly <onboarding@resend.dev>"

// Client wraps the Resend client. A Client without an API key renders
// emails but does not send them.
type Client struct {
	client *resend.Client
	logger *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{logger: logger}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Enabled reports whether emails are actually delivered.
func (c *Client) Enabled() bool {
	return c.client != nil
}

// Render executes the named template with data.
func Render(templateName Template, data map[string]string) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, string(templateName)+".html", data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to one recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	if !c.Enabled() {
		c.logger.Debug().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("email delivery disabled, skipping send")
		return nil
	}

	_, err = c.client.Emails.Send(&resend.SendEmailRequest{
		From:    sender,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
