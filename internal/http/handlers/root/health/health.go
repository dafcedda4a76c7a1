// Package health реализует HTTP-обработчик базовой проверки работоспособности.
package health

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

// Handler обрабатывает запросы проверки работоспособности.
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
// @Summary Проверка работоспособности сервиса
// @Tags Health
// @Produce json
// @Success 200 {object} response.Response
// @Router /health-check [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.root.health"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"Health check was performed.", "", models.HealthCheck); err != nil {
		log.Error("failed to record health check", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("An error occurred during health check"))
		return
	}

	render.JSON(w, r, response.OK("System Working!"))
}
