package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	from := email.From
	if from == "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendWelcome(to, username string) error {
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Welcome to GigMarket",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour account is ready. Post a gig or start bidding right away.\n",
			username,
		),
	})
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" || p.config.Port == 0 {
		return errors.New("smtp host and port are required")
	}
	if p.config.FromEmail == "" {
		return errors.New("from email is required")
	}
	return nil
}

// NoopProvider is used when mail is disabled (tests, local development).
type NoopProvider struct{}

func (NoopProvider) Send(*Email) error             { return nil }
func (NoopProvider) SendWelcome(_, _ string) error { return nil }
func (NoopProvider) Validate() error               { return nil }
