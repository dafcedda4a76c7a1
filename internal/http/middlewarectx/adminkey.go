// Package middlewarectx содержит HTTP middleware сервиса.
//
// AdminKeyMiddleware проверяет заголовок admin-key на точное совпадение
// с настроенным секретом. Неудачная проверка фиксируется в журнале как
// событие безопасности и возвращает HTTP 400 — статус сохранён ради
// совместимости с существующими клиентами API.
package middlewarectx

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/electric-checker/internal/http/response"
	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
	"github.com/magabrotheeeer/electric-checker/internal/models"
)

// AdminKeyHeader имя заголовка с административным ключом.
const AdminKeyHeader = "admin-key"

// Audit описывает интерфейс журнала событий.
type Audit interface {
	Record(ctx context.Context, level, message, username string, logType models.LogType) error
}

// AdminKeyMiddleware возвращает HTTP middleware, пропускающий запрос
// только при корректном административном ключе в заголовке.
func AdminKeyMiddleware(adminKey string, audit Audit, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminKeyMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			key := r.Header.Get(AdminKeyHeader)
			if key == "" || adminKey == "" ||
				subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
				log.Error("invalid or missing admin key", slog.String("path", r.URL.Path))
				if err := audit.Record(r.Context(), models.LevelError,
					"Invalid or missing admin key for "+r.URL.Path+".",
					"", models.SecurityUnauthorizedAccess); err != nil {
					log.Error("failed to record security event", sl.Err(err))
				}
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("Invalid or missing admin key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
