// Package notifier реализует доставку напоминания пользователю по двум
// независимым каналам: почте и Telegram. Отказ одного канала не влияет
// на попытку другого, оба исхода фиксируются в журнале событий.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
)

// EmailSender описывает почтовый канал доставки.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ChatSender описывает канал доставки через чат.
type ChatSender interface {
	Send(ctx context.Context, chatID, text string) error
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// ChannelResult агрегирует исходы обеих попыток доставки.
// nil означает успешную доставку по каналу.
type ChannelResult struct {
	Email error
	Chat  error
}

// Delivered сообщает, дошло ли напоминание хотя бы по одному каналу.
func (r ChannelResult) Delivered() bool {
	return r.Email == nil || r.Chat == nil
}

// Service доставляет напоминания по двум каналам.
type Service struct {
	email   EmailSender
	chat    ChatSender
	audit   Audit
	log     *slog.Logger
	timeout time.Duration
}

// New создает новый экземпляр Service. timeout ограничивает каждую
// попытку доставки отдельно, чтобы зависший канал не останавливал обход.
func New(email EmailSender, chat ChatSender, audit Audit, log *slog.Logger, timeout time.Duration) *Service {
	return &Service{
		email:   email,
		chat:    chat,
		audit:   audit,
		log:     log,
		timeout: timeout,
	}
}

// Notify отправляет напоминание по почте и в Telegram. Оба канала
// пробуются всегда, независимо от исхода другого; ошибки каналов не
// покидают сервис, а возвращаются в агрегированном результате.
func (s *Service) Notify(ctx context.Context, subject, body, emailAddr, chatID, username string) ChannelResult {
	var result ChannelResult

	result.Email = s.attempt(ctx, func(ctx context.Context) error {
		return s.email.Send(ctx, emailAddr, subject, body)
	})
	if result.Email != nil {
		s.log.Error("failed to send email", "to", emailAddr, sl.Err(result.Email))
		s.record(ctx, models.LevelError,
			fmt.Sprintf("Error sending mail to: %s - %v", emailAddr, result.Email),
			username, models.ErrorNotification)
	} else {
		s.record(ctx, models.LevelInfo,
			fmt.Sprintf("Email sent to %s", emailAddr),
			username, models.NotificationEmailSent)
	}

	result.Chat = s.attempt(ctx, func(ctx context.Context) error {
		return s.chat.Send(ctx, chatID, body)
	})
	if result.Chat != nil {
		s.log.Error("failed to send telegram message", "chat_id", chatID, sl.Err(result.Chat))
		s.record(ctx, models.LevelError,
			fmt.Sprintf("Error sending telegram message to: %s - %v", chatID, result.Chat),
			username, models.ErrorNotification)
	} else {
		s.record(ctx, models.LevelInfo,
			fmt.Sprintf("Telegram message sent to %s", chatID),
			username, models.NotificationTelegramSent)
	}

	return result
}

// attempt выполняет одну попытку доставки с собственным таймаутом.
func (s *Service) attempt(ctx context.Context, send func(ctx context.Context) error) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return send(ctx)
}

func (s *Service) record(ctx context.Context, level, message, username string, logType models.LogType) {
	if err := s.audit.Record(ctx, level, message, username, logType); err != nil {
		s.log.Error("failed to record notification outcome", sl.Err(err))
	}
}
