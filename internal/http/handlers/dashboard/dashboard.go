// Package dashboard реализует HTTP-обработчик живого дашборда:
// отчёт за текущий месяц и сумма ещё не закрытых обязательств.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/revenue-aggregator/internal/http/response"
	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// Handler управляет HTTP-запросами дашборда.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики дашборда.
type Service interface {
	DashboardSummary(ctx context.Context, now time.Time) (*models.DashboardSummary, error)
}

// New создаёт новый Handler с переданным логгером и сервисом отчётов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос к эндпоинту дашборда.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.service.DashboardSummary(r.Context(), time.Now().UTC())
	if err != nil {
		log.Error("failed to build dashboard summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard summary"))
		return
	}

	log.Info("success to build dashboard summary")
	render.JSON(w, r, response.StatusOKWithData(summary))
}
