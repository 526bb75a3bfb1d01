// Package notify sends plain text run summaries over smtp.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("fbref.lib.notify")

type Config struct {
	Server   string   `json:"server"`
	Port     int      `json:"port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
}

func (c Config) Enabled() bool {
	return c.Server != "" && len(c.To) > 0
}

func (c Config) addr() string {
	port := c.Port
	if port == 0 {
		port = 587
	}
	return fmt.Sprintf("%s:%d", c.Server, port)
}

func (c Config) sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

// Send emails `body` to every configured recipient. It is a no-op when
// the config is not enabled.
func Send(ctx context.Context, c Config, subject, body string) error {
	if !c.Enabled() {
		return nil
	}

	_, span := tracer.Start(ctx, "Send")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("fbref-transfers <%s>", c.sender())
	mail.To = c.To
	mail.Subject = subject
	mail.Text = []byte(body)

	var auth smtp.Auth
	if c.Username != "" {
		auth = smtp.PlainAuth("", c.Username, c.Password, c.Server)
	}
	err := mail.Send(c.addr(), auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(c.addr(), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
