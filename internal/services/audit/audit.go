// Package audit реализует журналирование событий сервиса: каждая запись
// сохраняется в хранилище и дублируется в стандартный лог процесса.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/electric-checker/internal/models"
)

// LogRepository описывает интерфейс хранилища журнала.
type LogRepository interface {
	AppendLog(ctx context.Context, level, message string, username *string, logType models.LogType) error
}

// Service пишет записи журнала событий.
type Service struct {
	repo LogRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo LogRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Record добавляет запись журнала и выводит строку в лог процесса.
// Пустой username означает событие без привязки к пользователю.
// Ошибка записи в хранилище возвращается вызывающему: операция,
// породившая событие, считается неуспешной.
func (s *Service) Record(ctx context.Context, level, message, username string, logType models.LogType) error {
	const op = "audit.Record"

	var usernameRef *string
	if username != "" {
		usernameRef = &username
	}
	if err := s.repo.AppendLog(ctx, level, message, usernameRef, logType); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	attrs := []any{
		slog.String("log_type", logType.String()),
		slog.String("user", username),
	}
	if level == models.LevelError {
		s.log.Error(message, attrs...)
	} else {
		s.log.Info(message, attrs...)
	}
	return nil
}
