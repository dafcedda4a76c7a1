// Package userlist реализует административный HTTP-обработчик списка пользователей.
package userlist

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

// Store описывает интерфейс хранилища.
type Store interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает запрос списка пользователей.
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
// @Summary Список всех пользователей
// @Tags Admin
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный admin-key"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userlist"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	message := "User list retrieved successfully by admin."
	if len(users) == 0 {
		message = "No users found during admin user list retrieval."
		users = []*models.User{}
	}
	if err := h.audit.Record(r.Context(), models.LevelInfo,
		message, "", models.AdminUserListViewed); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	render.JSON(w, r, response.OKWithData("Users retrieved successfully", map[string]any{
		"users": users,
	}))
}
