// Package logtypes реализует административный HTTP-обработчик списка
// всех категорий журнала событий.
package logtypes

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

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает запрос списка категорий журнала.
type Handler struct {
	log   *slog.Logger
	audit Audit
}

// New создает новый Handler.
func New(log *slog.Logger, audit Audit) *Handler {
	return &Handler{
		log:   log,
		audit: audit,
	}
}

// ServeHTTP godoc
// @Summary Список категорий журнала событий
// @Tags Admin
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный admin-key"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/log-type/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.logtypes"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"Listed log types by admin.",
		"", models.AdminLogTypeListViewed); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	render.JSON(w, r, response.OKWithData("Log types listed.", models.AllLogTypes()))
}
