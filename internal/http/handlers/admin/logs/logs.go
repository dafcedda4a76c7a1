// Package logs реализует административный HTTP-обработчик постраничного
// чтения журнала событий. Категория журнала парсится строго: неизвестное
// значение отклоняется, а не молча возвращает пустой список.
package logs

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
)

// Заголовки параметров постраничного вывода.
const (
	HeaderPage    = "X-Page"
	HeaderPerPage = "X-Per-Page"
	HeaderLogType = "X-Log-Type"
)

// Store описывает интерфейс хранилища журнала.
type Store interface {
	ListLogs(ctx context.Context, logType models.LogType, page, perPage int) ([]models.LogEntry, int, error)
}

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// Handler обрабатывает чтение журнала.
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
// @Summary Постраничное чтение журнала событий
// @Tags Admin
// @Produce json
// @Param admin-key header string true "Административный ключ"
// @Param X-Page header int false "Номер страницы" default(1)
// @Param X-Per-Page header int false "Размер страницы" default(10)
// @Param X-Log-Type header string false "Категория журнала" default(SYSTEM_STARTUP)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Неверный admin-key"
// @Failure 422 {object} response.ErrorResponse "Неизвестная категория журнала"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/logs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.logs"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.Header.Get(HeaderPage))
	if err != nil || page <= 0 {
		page = 1
	}
	perPage, err := strconv.Atoi(r.Header.Get(HeaderPerPage))
	if err != nil || perPage <= 0 {
		perPage = 10
	}

	logTypeRaw := r.Header.Get(HeaderLogType)
	if logTypeRaw == "" {
		logTypeRaw = models.SystemStartup.String()
	}
	logType, err := models.ParseLogType(logTypeRaw)
	if err != nil {
		log.Error("unknown log type requested", slog.String("log_type", logTypeRaw))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("unknown log type: "+logTypeRaw))
		return
	}

	items, total, err := h.store.ListLogs(r.Context(), logType, page, perPage)
	if err != nil {
		log.Error("failed to list logs", sl.Err(err))
		if err := h.audit.Record(r.Context(), models.LevelError,
			"Error during log retrieval: "+err.Error(),
			"", models.ErrorAPI); err != nil {
			log.Error("failed to record event", sl.Err(err))
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("An error occurred while retrieving logs"))
		return
	}
	if items == nil {
		items = []models.LogEntry{}
	}

	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}

	if err := h.audit.Record(r.Context(), models.LevelInfo,
		"Logs retrieved successfully by admin.",
		"", models.AdminLogsViewed); err != nil {
		log.Error("failed to record event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Operation Failed."))
		return
	}

	render.JSON(w, r, response.OKWithData("Logs retrieved successfully", map[string]any{
		"logs": items,
		"pagination": models.Pagination{
			Page:    page,
			PerPage: perPage,
			Total:   total,
			Pages:   pages,
		},
	}))
}
