// Package sweeper реализует обход неактивных пользователей: поиск тех,
// кто не отмечался дольше порога, и рассылку напоминаний каждому из них.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/electric-checker/internal/config"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/services/notifier"
)

// UserRepository описывает интерфейс хранилища для поиска неактивных пользователей.
type UserRepository interface {
	FindStaleUsers(ctx context.Context, cutoff time.Time, includeNeverSeen bool) ([]*models.User, error)
}

// Notifier описывает интерфейс доставки напоминаний.
type Notifier interface {
	Notify(ctx context.Context, subject, body, emailAddr, chatID, username string) notifier.ChannelResult
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Service выполняет обход неактивных пользователей. Один и тот же обход
// запускается и по таймеру, и вручную через HTTP-запрос администратора.
type Service struct {
	repo     UserRepository
	notifier Notifier
	audit    Audit
	log      *slog.Logger

	threshold        time.Duration
	includeNeverSeen bool
	mailSubject      string
	mailBody         string
}

// New создает новый экземпляр Service.
func New(repo UserRepository, n Notifier, audit Audit, log *slog.Logger, sweepCfg config.Sweep, smtpCfg config.SMTP) *Service {
	return &Service{
		repo:             repo,
		notifier:         n,
		audit:            audit,
		log:              log,
		threshold:        sweepCfg.StalenessThreshold,
		includeNeverSeen: sweepCfg.IncludeNeverSeen,
		mailSubject:      smtpCfg.MailSubject,
		mailBody:         smtpCfg.MailBody,
	}
}

// Run выполняет один обход: находит пользователей, отметившихся раньше
// cutoff, и отправляет каждому напоминание. Возвращает число найденных.
// Ошибка хранилища прерывает обход; отказ доставки для одного пользователя
// не мешает обработке остальных. Пользователь, остающийся неактивным,
// получает напоминание на каждом обходе — окна "уже уведомлён" нет.
func (s *Service) Run(ctx context.Context) (int, error) {
	const op = "sweeper.Run"

	cutoff := time.Now().Add(-s.threshold)
	staleUsers, err := s.repo.FindStaleUsers(ctx, cutoff, s.includeNeverSeen)
	if err != nil {
		s.log.Error("failed to find stale users", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.audit.Record(ctx, models.LevelInfo,
		fmt.Sprintf("Periodic check performed, found %d inactive users.", len(staleUsers)),
		"", models.AdminPeriodicCheckStarted); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	for _, user := range staleUsers {
		if err := s.audit.Record(ctx, models.LevelInfo,
			fmt.Sprintf("Sending notification to user %s.", user.Username),
			user.Username, models.AdminInactiveUsersNotifed); err != nil {
			return len(staleUsers), fmt.Errorf("%s: %w", op, err)
		}

		result := s.notifier.Notify(ctx, s.mailSubject, s.mailBody, user.Email, user.ChatID, user.Username)
		if !result.Delivered() {
			s.log.Error("all notification channels failed",
				slog.String("username", user.Username))
		}
	}

	return len(staleUsers), nil
}
