package smtp

import (
	"context"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
)

// Sender отправляет письма через Transport.
type Sender struct {
	transport TransportInterface
	log       *slog.Logger
}

// NewSender создает новый экземпляр Sender.
func NewSender(transport TransportInterface, log *slog.Logger) *Sender {
	return &Sender{
		transport: transport,
		log:       log,
	}
}

// Send собирает письмо и отправляет его указанному получателю.
func (s *Sender) Send(ctx context.Context, to, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect(ctx)
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), sl.Err(err))
		return err
	}

	if err := client.Rcpt(to); err != nil {
		s.log.Error("failed to set RCPT TO", "recipient", to, sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
