// Package electricchecker предоставляет сборку и маршруты основного приложения.
package electricchecker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/electric-checker/internal/config"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/license"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/logs"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/logtypes"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/periodiccheck"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/register"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/remove"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/testemail"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/admin/userlist"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/root/detailedhealth"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/root/health"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/telegram/userdata"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/user/check"
	"github.com/magabrotheeeer/electric-checker/internal/http/handlers/user/checkstatus"
	"github.com/magabrotheeeer/electric-checker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/electric-checker/internal/lib/smtp"
	"github.com/magabrotheeeer/electric-checker/internal/lib/telegram"
	auditservice "github.com/magabrotheeeer/electric-checker/internal/services/audit"
	sweeperservice "github.com/magabrotheeeer/electric-checker/internal/services/sweeper"
	"github.com/magabrotheeeer/electric-checker/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	db *repository.Storage, audit *auditservice.Service, sweeper *sweeperservice.Service,
	emailSender *smtp.Sender, bot *telegram.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Get("/health-check", health.New(logger, audit).ServeHTTP)
	r.Get("/detailed-health-check", detailedhealth.New(logger, db, bot).ServeHTTP)

	r.Route("/user", func(r chi.Router) {
		r.Post("/electric-check", check.New(logger, db, audit).ServeHTTP)
		r.Get("/electric-check", checkstatus.New(logger, db, audit).ServeHTTP)
	})

	r.Route("/telegram", func(r chi.Router) {
		r.Post("/user-data", userdata.New(logger, db, audit).ServeHTTP)
	})

	// Административная группа: статический ключ в заголовке admin-key
	r.Route("/admin", func(r chi.Router) {
		r.Use(middlewarectx.AdminKeyMiddleware(cfg.AdminKey, audit, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/users/list", userlist.New(logger, db, audit).ServeHTTP)
		r.Post("/users/register", register.New(logger, db, audit).ServeHTTP)
		r.Delete("/users/delete", remove.New(logger, db, audit).ServeHTTP)
		r.Patch("/license/activate/{username}", license.New(logger, db, audit, true).ServeHTTP)
		r.Patch("/license/deactivate/{username}", license.New(logger, db, audit, false).ServeHTTP)
		r.Get("/logs", logs.New(logger, db, audit).ServeHTTP)
		r.Get("/log-type/list", logtypes.New(logger, audit).ServeHTTP)
		r.Get("/periodic-check", periodiccheck.New(logger, sweeper).ServeHTTP)
		r.Get("/send-test-email", testemail.New(logger, emailSender, audit, cfg.SMTPUser).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
