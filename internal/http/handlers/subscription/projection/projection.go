// Package projection реализует HTTP-обработчик проекции обязательств
// по подпискам на горизонт вперёд.
//
// Горизонт передаётся необязательным query-параметром horizon;
// при его отсутствии используется горизонт из конфигурации сервиса.
package projection

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/revenue-aggregator/internal/http/response"
	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// Handler управляет HTTP-запросами проекции обязательств.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проекции обязательств.
type Service interface {
	Projection(ctx context.Context, asOf time.Time, horizonMonths int) (*models.ProjectionReport, error)
}

// New создаёт новый Handler с переданным логгером и сервисом отчётов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP обрабатывает HTTP-запрос к эндпоинту проекции обязательств.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.projection"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	horizonMonths := 0
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Error("invalid horizon query parameter", slog.String("horizon", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("horizon must be a positive integer"))
			return
		}
		horizonMonths = parsed
	}

	report, err := h.service.Projection(r.Context(), time.Now().UTC(), horizonMonths)
	if err != nil {
		log.Error("failed to build projection", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build projection"))
		return
	}

	log.Info("success to build projection", slog.Int("horizon_months", report.HorizonMonths))
	render.JSON(w, r, response.StatusOKWithData(report))
}
