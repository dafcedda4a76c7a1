// Package userdata реализует HTTP-обработчик саморегистрации пользователя
// через Telegram-бота. Пользователь создаётся, только если ни один из его
// контактных идентификаторов ещё не занят.
package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

// Store описывает интерфейс хранилища для саморегистрации.
type Store interface {
	FindUserByContact(ctx context.Context, email, phoneNumber, chatID string) (*models.User, error)
	CreateUser(ctx context.Context, du models.DummyUser) (*models.User, error)
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает саморегистрацию через Telegram.
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
// @Summary Саморегистрация пользователя через Telegram
// @Tags Telegram
// @Accept json
// @Produce json
// @Param request body models.DummyUser true "Данные пользователя"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неполные данные"
// @Failure 409 {object} response.Response "Пользователь уже зарегистрирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /telegram/user-data [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.telegram.userdata"
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
			fmt.Sprintf("Missing information - %s %s %s %s %s.",
				req.FirstName, req.LastName, req.Email, req.PhoneNumber, req.ChatID),
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

	existing, err := h.store.FindUserByContact(r.Context(), req.Email, req.PhoneNumber, req.ChatID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		log.Error("failed to check existing user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}
	if existing != nil {
		log.Info("user already registered", slog.String("username", existing.Username))
		if err := h.audit.Record(r.Context(), models.LevelInfo,
			"User already registered.",
			existing.Username, models.UserRegister); err != nil {
			log.Error("failed to record event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Operation Failed."))
			return
		}
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.OK("User already registered"))
		return
	}

	user, err := h.store.CreateUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.OK("User already registered"))
			return
		}
		log.Error("failed to create user", sl.Err(err))
		if err := h.audit.Record(r.Context(), models.LevelError,
			fmt.Sprintf("Exception occurred while creating user: %v.", err),
			"", models.ErrorAPI); err != nil {
			log.Error("failed to record event", sl.Err(err))
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"User created successfully.",
		user.Username, models.UserRegister); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OK("User successfully created"))
}
