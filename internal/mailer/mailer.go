// Package mailer sends HTML email with attachments over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp is not configured")

type Attachment struct {
	Filename string
	Data     []byte
	MimeType string
}

type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c Config) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers messages through a single SMTP relay.
type SMTPSender struct {
	from   string
	dialer dialer
}

func NewSMTPSender(cfg Config) *SMTPSender {
	s := &SMTPSender{from: cfg.From}
	if cfg.Enabled() {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.dialer == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(s.build(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for _, a := range msg.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.MimeType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.MimeType},
			}))
		}
		m.Attach(a.Filename, settings...)
	}
	return m
}
