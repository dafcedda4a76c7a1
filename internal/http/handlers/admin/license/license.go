// Package license реализует административные HTTP-обработчики включения и
// выключения лицензии пользователя. Только лицензированные пользователи
// могут отмечаться через electric-check.
package license

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// Store описывает интерфейс хранилища.
type Store interface {
	SetLicense(ctx context.Context, username string, active bool) error
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler переключает лицензию пользователя. Направление переключения
// задается при создании: activate=true включает, activate=false выключает.
type Handler struct {
	log      *slog.Logger
	store    Store
	audit    Audit
	activate bool
}

// New создает новый Handler.
func New(log *slog.Logger, store Store, audit Audit, activate bool) *Handler {
	return &Handler{
		log:      log,
		store:    store,
		audit:    audit,
		activate: activate,
	}
}

// ServeHTTP godoc
// @Summary Включить или выключить лицензию пользователя
// @Tags Admin
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Param username path string true "Идентификатор пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный admin-key"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/license/activate/{username} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.license"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	action, logType := "activation", models.AdminLicenseActivated
	if !h.activate {
		action, logType = "deactivation", models.AdminLicenseDeactivated
	}

	username := chi.URLParam(r, "username")
	if err := h.store.SetLicense(r.Context(), username, h.activate); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Error("user not found for license toggle", slog.String("username", username))
			if err := h.audit.Record(r.Context(), models.LevelError,
				fmt.Sprintf("User %s not found for license %s.", username, action),
				username, logType); err != nil {
				log.Error("failed to record event", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Operation Failed."))
				return
			}
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("User not found"))
			return
		}
		log.Error("failed to toggle license", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	if h.activate {
		if err := h.audit.Record(r.Context(), models.LevelInfo,
			fmt.Sprintf("License activated for user %s.", username),
			username, models.AdminLicenseActivated); err != nil {
			log.Error("failed to record event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Operation Failed."))
			return
		}
		render.JSON(w, r, response.OK("License activated"))
		return
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		fmt.Sprintf("License deactivated for user %s.", username),
		username, models.AdminLicenseDeactivated); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}
	render.JSON(w, r, response.OK("License deactivated"))
}
