package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"time"
)

// ErrNotConfigured is returned when host, sender or recipient is missing.
var ErrNotConfigured = errors.New("email service is not configured")

const defaultTimeout = 10 * time.Second

// Config holds the SMTP transport settings. It is read-only once the
// service is built.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string // Envelope and header sender
	To       string // Fixed recipient of contact messages
	// Timeout bounds dial plus the whole SMTP conversation.
	Timeout time.Duration
}

// EmailService handles sending emails via SMTP
type EmailService struct {
	cfg  Config
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
	now  func() time.Time
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Phone       string
	Service     string
	Message     string
}

// NewEmailService creates a new email service. A fresh connection is
// dialed for every message.
func NewEmailService(cfg Config) *EmailService {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	var d net.Dialer
	return &EmailService{
		cfg:  cfg,
		dial: d.DialContext,
		now:  time.Now,
	}
}

// IsConfigured checks if the email service has enough configuration to send
func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.From != "" && s.cfg.To != ""
}

// SendContactEmail sends a contact form email to the configured recipient.
// It returns once the server has accepted the message data.
func (s *EmailService) SendContactEmail(ctx context.Context, data ContactEmailData) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	from, err := envelopeAddress(s.cfg.From)
	if err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	to, err := envelopeAddress(s.cfg.To)
	if err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	// Headers keep the configured values, display names included.
	msg, err := buildContactMessage(s.cfg.From, s.cfg.To, data, s.now())
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if err := s.send(ctx, from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// envelopeAddress reduces "Name <user@host>" to the bare address used in
// MAIL FROM and RCPT TO.
func envelopeAddress(addr string) (string, error) {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return "", err
	}
	return parsed.Address, nil
}

func (s *EmailService) send(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	conn, err := s.dial(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	// Unblock any pending read or write if the caller goes away.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err := c.StartTLS(tlsCfg); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if s.cfg.Username != "" {
		if ok, _ := c.Extension("AUTH"); !ok {
			return errors.New("smtp server does not support AUTH")
		}
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}

	// The message is accepted at this point; a failed QUIT does not undo it.
	_ = c.Quit()
	return nil
}
