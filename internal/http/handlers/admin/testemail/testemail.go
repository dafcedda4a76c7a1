// Package testemail реализует административный HTTP-обработчик отправки
// тестового письма для проверки почтового транспорта.
package testemail

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
)

// EmailSender описывает почтовый канал доставки.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает отправку тестового письма.
type Handler struct {
	log       *slog.Logger
	email     EmailSender
	audit     Audit
	recipient string
}

// New создает новый Handler. recipient — адрес получателя тестовых писем,
// обычно адрес отправителя из конфигурации SMTP.
func New(log *slog.Logger, email EmailSender, audit Audit, recipient string) *Handler {
	return &Handler{
		log:       log,
		email:     email,
		audit:     audit,
		recipient: recipient,
	}
}

// ServeHTTP godoc
// @Summary Отправить тестовое письмо
// @Tags Admin
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный admin-key"
// @Failure 500 {object} response.ErrorResponse "Не удалось отправить письмо"
// @Router /admin/send-test-email [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.testemail"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.email.Send(r.Context(), h.recipient, "Test email", "Test email from electric-checker."); err != nil {
		log.Error("failed to send test email", sl.Err(err))
		if err := h.audit.Record(r.Context(), models.LevelError,
			"Failed to send test email. Error: "+err.Error(),
			"", models.ErrorNotification); err != nil {
			log.Error("failed to record event", sl.Err(err))
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to send email."))
		return
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"Test email sent successfully.",
		"", models.AdminTestEmailSent); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	render.JSON(w, r, response.OK("Email sent successfully!"))
}
