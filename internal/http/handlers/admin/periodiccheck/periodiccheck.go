// Package periodiccheck реализует административный HTTP-обработчик ручного
// запуска обхода неактивных пользователей. Выполняет тот же обход, что и
// таймер, но синхронно в рамках запроса.
package periodiccheck

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
)

// Sweeper описывает интерфейс обхода неактивных пользователей.
type Sweeper interface {
	Run(ctx context.Context) (int, error)
}

// Handler обрабатывает ручной запуск обхода.
type Handler struct {
	log     *slog.Logger
	sweeper Sweeper
}

// New создает новый Handler.
func New(log *slog.Logger, sweeper Sweeper) *Handler {
	return &Handler{
		log:     log,
		sweeper: sweeper,
	}
}

// ServeHTTP godoc
// @Summary Запустить обход неактивных пользователей
// @Description Находит пользователей без отметки дольше порога и рассылает напоминания.
// @Tags Admin
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный admin-key"
// @Failure 500 {object} response.ErrorResponse "Ошибка хранилища"
// @Router /admin/periodic-check [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.periodiccheck"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	found, err := h.sweeper.Run(r.Context())
	if err != nil {
		log.Error("periodic check failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Periodic check failed"))
		return
	}

	log.Info("periodic check finished", slog.Int("inactive_users", found))
	render.JSON(w, r, response.OKWithData("Periodic Check Started!", map[string]any{
		"inactive_users": found,
	}))
}
