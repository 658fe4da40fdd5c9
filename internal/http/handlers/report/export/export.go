// Package export реализует HTTP-обработчик выгрузки отчёта для генератора PDF.
//
// Handler принимает JSON-запрос с границами периода и возвращает полезную
// нагрузку выгрузки: отчёт за период и проекцию обязательств, построенные
// из одного снимка записей.
package export

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/revenue-aggregator/internal/http/response"
	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// Handler управляет HTTP-запросами на выгрузку отчёта.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выгрузки отчёта.
type Service interface {
	ExportReport(ctx context.Context, req models.DummyWindow, now time.Time) (*models.ExportReport, error)
}

// New создаёт новый Handler с переданным логгером и сервисом отчётов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос к эндпоинту выгрузки отчёта.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.export"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyWindow
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	report, err := h.service.ExportReport(r.Context(), req, time.Now().UTC())
	if err != nil {
		log.Error("failed to build export report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build export report"))
		return
	}

	log.Info("success to build export report")
	render.JSON(w, r, response.StatusOKWithData(report))
}
