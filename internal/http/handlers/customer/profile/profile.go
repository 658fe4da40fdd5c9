// Package profile реализует HTTP-обработчик финансового профиля клиента.
//
// Handler принимает JSON-запрос с идентификатором клиента и границами
// периода, валидирует его и возвращает профиль: выручку, средний чек
// и «чаще всего покупаемое».
package profile

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

// Handler управляет HTTP-запросами профиля клиента.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики профиля клиента.
type Service interface {
	CustomerProfile(ctx context.Context, req models.DummyCustomerFilter) (*models.CustomerProfile, error)
}

// New создаёт новый Handler с переданным логгером и сервисом отчётов.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос к эндпоинту профиля клиента.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.customer.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyCustomerFilter
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

	profile, err := h.service.CustomerProfile(r.Context(), req)
	if err != nil {
		log.Error("failed to build customer profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build customer profile"))
		return
	}

	log.Info("success to build customer profile", slog.String("customer_id", req.CustomerID))
	render.JSON(w, r, response.StatusOKWithData(profile))
}
