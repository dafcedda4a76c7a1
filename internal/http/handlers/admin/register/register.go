// Package register реализует административный HTTP-обработчик регистрации
// пользователя. В отличие от саморегистрации через Telegram, выполняется
// от имени администратора, но требует тех же контактных данных.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// Store описывает интерфейс хранилища.
type Store interface {
	CreateUser(ctx context.Context, du models.DummyUser) (*models.User, error)
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает административную регистрацию пользователей.
type Handler struct {
	log      *slog.Logger
	store    Store
	audit    Audit
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, store Store, audit Audit) *Handler {
	return &Handler{
		log:      log,
		store:    store,
		audit:    audit,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Зарегистрировать пользователя
// @Tags Admin
// @Accept json
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Param request body models.DummyUser true "Данные пользователя"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неполные данные или неверный admin-key"
// @Failure 409 {object} response.ErrorResponse "Контактные данные уже заняты"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		if err := h.audit.Record(r.Context(), models.LevelError,
			"Missing information for user registration.",
			"", models.ErrorAPI); err != nil {
			log.Error("failed to record event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Operation Failed."))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Missing information"))
		return
	}

	user, err := h.store.CreateUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			log.Error("duplicate user registration", slog.String("email", req.Email))
			if err := h.audit.Record(r.Context(), models.LevelError,
				"Email already registered during user registration.",
				"", models.UserRegister); err != nil {
				log.Error("failed to record event", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Operation Failed."))
				return
			}
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Email already registered"))
			return
		}
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"New user registered successfully.",
		user.Username, models.AdminUserRegistered); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData("User created", map[string]any{
		"user": map[string]any{
			"username": user.Username,
			"email":    user.Email,
		},
	}))
}
