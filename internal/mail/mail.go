// Package mail is the outbound-mail collaborator.
package mail

import (
	"fmt"

	"github.com/dterira/Quorable/config"
	"github.com/dterira/Quorable/internal/model"
	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

type Mailer interface {
	SendEmailVerification(user *model.User, code string) error
}

// NewMailer returns an SMTP mailer, or a log-only mailer when no SMTP host
// is configured (local development).
func NewMailer(cfg *config.Config) (Mailer, error) {
	if cfg.SMTP.Host == "" {
		log.Warn().Msg("SMTP_HOST is not set. Outbound mail will only be logged.")
		return &logMailer{}, nil
	}

	client, err := gomail.NewClient(cfg.SMTP.Host,
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTP.User),
		gomail.WithPassword(cfg.SMTP.Password),
	)
	if err != nil {
		return nil, err
	}
	return &smtpMailer{client: client, from: cfg.SMTP.From}, nil
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

func (m *smtpMailer) SendEmailVerification(user *model.User, code string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(user.Email); err != nil {
		return err
	}
	msg.Subject("Email Verification")
	msg.SetBodyString(gomail.TypeTextPlain, verificationBody(user, code))

	if err := m.client.DialAndSend(msg); err != nil {
		return err
	}
	log.Info().Uint("userID", user.ID).Msg("Verification mail sent")
	return nil
}

type logMailer struct{}

func (m *logMailer) SendEmailVerification(user *model.User, code string) error {
	log.Info().Uint("userID", user.ID).Str("code", code).Msg("Verification mail (log only)")
	return nil
}

func verificationBody(user *model.User, code string) string {
	return fmt.Sprintf("Hi %s,\n\nYour verification code is %s.\n\nIf you did not sign up, you can ignore this mail.\n", user.FName, code)
}
