// Package checkstatus реализует HTTP-обработчик чтения времени последней
// отметки лицензированного пользователя.
package checkstatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// Store описывает интерфейс хранилища.
type Store interface {
	GetLicensedUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает чтение последней отметки.
type Handler struct {
	log   *slog.Logger
	store Store
	audit Audit
}

// New создает новый Handler.
func New(log *slog.Logger, store Store, audit Audit) *Handler {
	return &Handler{
		log:   log,
		store: store,
		audit: audit,
	}
}

// ServeHTTP godoc
// @Summary Получить время последней отметки
// @Tags ElectricCheck
// @Produce json
// @Param username query string true "Идентификатор пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Отсутствует username"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден или без лицензии"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/electric-check [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.checkstatus"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := r.URL.Query().Get("username")
	if username == "" {
		log.Error("username is required for electric check retrieval")
		if err := h.audit.Record(r.Context(), models.LevelError,
			"Username is required for electric check retrieval.",
			"", models.ElectricCheckInvalidRequest); err != nil {
			log.Error("failed to record event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Operation Failed."))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Username is required"))
		return
	}

	user, err := h.store.GetLicensedUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user not found for electric check retrieval", slog.String("username", username))
			if err := h.audit.Record(r.Context(), models.LevelError,
				"User not found for electric check retrieval.",
				username, models.ElectricCheckUserNotFound); err != nil {
				log.Error("failed to record event", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Operation Failed."))
				return
			}
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
			return
		}
		log.Error("failed to find user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"Electric check retrieval successful.",
		user.Username, models.ElectricCheckRetrieval); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	var lastRequestDate any
	if user.LastRequestDate != nil {
		lastRequestDate = user.LastRequestDate.Format(time.RFC3339)
	}
	render.JSON(w, r, response.OKWithData("Last request date retrieved", map[string]any{
		"user":              user.Email,
		"last_request_date": lastRequestDate,
	}))
}
