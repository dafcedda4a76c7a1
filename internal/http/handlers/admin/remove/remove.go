// Package remove реализует административный HTTP-обработчик удаления
// пользователя по email. Удаление жёсткое; записи журнала, ссылавшиеся
// на пользователя, сохраняются.
package remove

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// Store описывает интерфейс хранилища.
type Store interface {
	DeleteUserByEmail(ctx context.Context, email string) (string, error)
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает удаление пользователей.
type Handler struct {
	log   *slog.Logger
	store Store
	audit Audit
}

// Request тело запроса удаления.
type Request struct {
	Email string `json:"email"`
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
// @Summary Удалить пользователя по email
// @Tags Admin
// @Accept json
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Param request body Request true "Email пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Отсутствует email или неверный admin-key"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/delete [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		log.Error("email is required for user deletion")
		if err := h.audit.Record(r.Context(), models.LevelError,
			"Email is required for user deletion.",
			"", models.ErrorAPI); err != nil {
			log.Error("failed to record event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Operation Failed."))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Email is Required."))
		return
	}

	username, err := h.store.DeleteUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user not found for deletion", slog.String("email", req.Email))
			if err := h.audit.Record(r.Context(), models.LevelError,
				"User not found for deletion.",
				"", models.AdminUserDeleted); err != nil {
				log.Error("failed to record event", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Operation Failed."))
				return
			}
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
			return
		}
		log.Error("failed to delete user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"User deleted successfully.",
		username, models.AdminUserDeleted); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	render.JSON(w, r, response.OK("User deleted successfully"))
}
