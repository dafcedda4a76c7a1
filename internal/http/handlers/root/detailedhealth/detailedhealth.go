// Package detailedhealth реализует расширенную проверку работоспособности:
// доступность базы данных и Telegram-бота плюс загрузка хоста.
package detailedhealth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/magabrotheeeer/electric-checker/internal/lib/sl"
)

// Pinger описывает проверку доступности базы данных.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Bot описывает проверку доступности Telegram-бота.
type Bot interface {
	Me() (string, error)
}

// Handler обрабатывает запросы расширенной проверки работоспособности.
type Handler struct {
	log *slog.Logger
	db  Pinger
	bot Bot
}

// HealthStatus структура ответа расширенной проверки.
type HealthStatus struct {
	Database    string  `json:"database"`
	TelegramBot string  `json:"telegram_bot"`
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
}

// New создает новый Handler.
func New(log *slog.Logger, db Pinger, bot Bot) *Handler {
	return &Handler{
		log: log,
		db:  db,
		bot: bot,
	}
}

// ServeHTTP godoc
// @Summary Расширенная проверка работоспособности
// @Description Состояние базы данных, Telegram-бота и загрузка хоста.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /detailed-health-check [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.root.detailedhealth"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := HealthStatus{
		Database:    "OK",
		TelegramBot: "OK",
	}

	if err := h.db.Ping(r.Context()); err != nil {
		log.Error("database health check failed", sl.Err(err))
		status.Database = "NOT OK: " + err.Error()
	}

	if _, err := h.bot.Me(); err != nil {
		log.Error("telegram bot health check failed", sl.Err(err))
		status.TelegramBot = "NOT OK: " + err.Error()
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUUsage = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryUsage = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		status.DiskUsage = du.UsedPercent
	}

	render.JSON(w, r, status)
}
