// Package summary реализует HTTP-обработчик построения финансового отчёта за период.
//
// Handler принимает JSON-запрос с границами периода, валидирует его,
// вызывает бизнес-логику построения отчёта через сервис и возвращает
// результат в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package summary

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/revenue-aggregator/internal/http/response"
	"github.com/magabrotheeeer/revenue-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/revenue-aggregator/internal/models"
)

// Handler управляет HTTP-запросами на построение отчёта за период.
//
// Использует логгер для журналирования, сервис для бизнес-логики и валидатор для проверки структуры запроса.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики построения отчёта
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики построения отчёта за период.
type Service interface {
	PeriodReport(ctx context.Context, req models.DummyWindow) (*models.PeriodReport, error)
}

// New создаёт новый Handler с переданным логгером и сервисом отчётов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос к эндпоинту отчёта за период.
//
// Выполняет:
// - Декодирование JSON с границами периода из тела запроса.
// - Валидацию запроса.
// - Вызов сервиса построения отчёта.
// - Возврат результата или ошибочного ответа в формате JSON.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.summary"

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

	report, err := h.service.PeriodReport(r.Context(), req)
	if err != nil {
		log.Error("failed to build period report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	log.Info("success to build period report")
	render.JSON(w, r, response.StatusOKWithData(report))
}
