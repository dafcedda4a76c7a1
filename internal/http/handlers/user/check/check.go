// Package check реализует HTTP-обработчик отметки пользователя о наличии
// электричества. Отметка доступна только пользователям с активной лицензией
// и обновляет время последнего запроса.
package check

import (
	"context"
	"encoding/json"
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

// Store описывает интерфейс хранилища для отметки пользователя.
type Store interface {
	GetLicensedUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastRequestDate(ctx context.Context, username string, at time.Time) error
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает отметки пользователей.
type Handler struct {
	log   *slog.Logger
	store Store
	audit Audit
}

// Request тело запроса отметки.
type Request struct {
	Username string `json:"username"`
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
// @Summary Отметиться о наличии электричества
// @Description Обновляет время последней отметки лицензированного пользователя.
// @Tags ElectricCheck
// @Accept json
// @Produce json
// @Param request body Request true "Идентификатор пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Отсутствует username"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден или без лицензии"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/electric-check [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.check"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		log.Error("username is required for electric check")
		if err := h.audit.Record(r.Context(), models.LevelError,
			"Username is required for electric check.",
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

	user, err := h.store.GetLicensedUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user not found for electric check", slog.String("username", req.Username))
			if err := h.audit.Record(r.Context(), models.LevelError,
				"User not found for electric check.",
				req.Username, models.ElectricCheckUserNotFound); err != nil {
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

	lastRequestDate := time.Now()
	if err := h.store.UpdateLastRequestDate(r.Context(), user.Username, lastRequestDate); err != nil {
		log.Error("failed to update last request date", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"Electric check completed and last request date updated.",
		user.Username, models.ElectricCheckSuccess); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	render.JSON(w, r, response.OKWithData("Last request date updated", map[string]any{
		"user":              user.Email,
		"last_request_date": lastRequestDate.Format(time.RFC3339),
	}))
}
