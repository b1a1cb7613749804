// Package add реализует HTTP-обработчик для добавления записи в журнал
// обслуживания оборудования.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/asset-maintenance/internal/http/middlewarectx"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/response"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/validation"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/services/equipment"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

// Handler обрабатывает запросы на добавление записи журнала.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики журнала обслуживания.
type Service interface {
	AddMaintenance(ctx context.Context, actor, id string, req models.DummyMaintenance) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить запись обслуживания
// @Description Добавляет запись в журнал. Дата последнего обслуживания оборудования не меняется.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "ID оборудования"
// @Param request body models.DummyMaintenance true "Запись журнала"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Оборудование не найдено"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /equipment/{id}/maintenance [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyMaintenance
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id := chi.URLParam(r, "id")
	recordID, err := h.service.AddMaintenance(r.Context(), middlewarectx.Actor(r.Context()), id, req)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Info("equipment not found", slog.String("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("equipment not found"))
		return
	case errors.Is(err, equipment.ErrInvalidInput):
		log.Error("invalid input", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case err != nil:
		log.Error("failed to add maintenance record", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add maintenance record"))
		return
	}

	log.Info("success to add maintenance record", slog.String("equipment_id", id), slog.String("id", recordID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": recordID,
	}))
}
