// Package mail provides outbound transactional mail over SMTP.
//
// The mail provider is an external collaborator; this package only speaks
// its documented SMTP contract. Sends are paced through a rate limiter so a
// burst of password-change requests cannot exhaust the provider quota.
package mail

import (
	"fmt"
	"net/smtp"
	"os"

	"kalakraft_backend/internal/shared/ratelimiter"
)

// SMTPMailer sends plain-text mail through the configured SMTP relay.
type SMTPMailer struct {
	limiter ratelimiter.RateLimiterInterface
}

// NewSMTPMailer creates a mailer paced by the given limiter.
// A nil limiter disables pacing.
func NewSMTPMailer(limiter ratelimiter.RateLimiterInterface) *SMTPMailer {
	return &SMTPMailer{limiter: limiter}
}

// Send delivers a plain-text message to a single recipient.
// Configuration comes from SMTP_HOST, SMTP_PORT, SMTP_USER and SMTP_PASS.
func (m *SMTPMailer) Send(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	if host == "" || port == "" || user == "" || pass == "" {
		return fmt.Errorf("smtp not configured")
	}

	if m.limiter != nil {
		m.limiter.WaitIfNeeded()
	}

	addr := host + ":" + port
	from := user

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", user, pass, host)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
