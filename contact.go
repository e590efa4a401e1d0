package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/mahdiarghyani/portfolio/internal/config"
)

// ErrMailNotConfigured is returned when SMTP credentials are missing.
var ErrMailNotConfigured = errors.New("SMTP credentials not configured")

// ErrInvalidContact is returned for incomplete contact submissions.
var ErrInvalidContact = errors.New("invalid contact form")

// ContactMessage is one contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Validate trims the fields and checks they are usable.
func (m *ContactMessage) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return fmt.Errorf("%w: name, email and message are required", ErrInvalidContact)
	}
	if strings.ContainsAny(m.Name+m.Email, "\r\n") {
		return fmt.Errorf("%w: line breaks in header fields", ErrInvalidContact)
	}
	addr, err := mail.ParseAddress(m.Email)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContact, err)
	}
	m.Email = addr.Address
	return nil
}

// Mailer delivers contact messages.
type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) error
}

type smtpMailer struct {
	cfg  config.SMTP
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg config.SMTP) *smtpMailer {
	return &smtpMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *smtpMailer) Send(ctx context.Context, msg ContactMessage) error {
	if !m.cfg.Configured() {
		return ErrMailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if err := m.send(addr, auth, m.cfg.User, []string{m.cfg.To}, composeContactEmail(m.cfg, msg)); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	slog.Info("Contact email sent", slog.String("from", msg.Email))
	return nil
}

func composeContactEmail(cfg config.SMTP, msg ContactMessage) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Message)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")
}
