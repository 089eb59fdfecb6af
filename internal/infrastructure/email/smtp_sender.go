// Package email implementa el puerto EmailSender sobre SMTP.
package email

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/gestorialegal/tramites-api/internal/application/usecase"
	"github.com/gestorialegal/tramites-api/pkg/config"
)

var _ usecase.EmailSender = (*SMTPSender)(nil)

// SMTPSender envía emails transaccionales en texto plano. Si SMTP no está
// configurado (modo dev) solo loguea el envío y responde éxito.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender construye el adaptador de email.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send envía un email al destinatario. Bloquea hasta completar el envío;
// los casos de uso deciden si la falla es crítica o no.
func (s *SMTPSender) Send(to, subject, body string) error {
	if !s.cfg.Enabled() {
		log.Info().Str("to", to).Str("subject", subject).
			Msg("SMTP deshabilitado: email no enviado")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar email: %w", err)
	}
	return nil
}
