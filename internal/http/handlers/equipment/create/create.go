// Package create реализует HTTP-обработчик для создания оборудования.
//
// Handler принимает JSON-запрос с данными оборудования, валидирует их, определяет
// автора изменения из контекста, вызывает бизнес-логику создания и возвращает ID
// созданной записи в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/asset-maintenance/internal/http/middlewarectx"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/response"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/validation"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/services/equipment"
)

// Handler управляет HTTP-запросами на создание оборудования.
//
// Использует логгер для записи операций и ошибок,
// сервис бизнес-логики для создания записи,
// а также валидатор для проверки структуры входных данных.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания оборудования
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания оборудования.
type Service interface {
	Create(ctx context.Context, actor string, req models.DummyEquipment) (string, error)
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
// @Summary Создать оборудование
// @Description Создает запись оборудования. Если nextServiceDate не задана, она вычисляется из lastServiceDate и интервала обслуживания.
// @Tags Equipment
// @Accept  json
// @Produce  json
// @Param request body models.DummyEquipment true "Данные оборудования"
// @Success 200 {object} response.Response "Успешное создание"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании"
// @Router /equipment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.equipment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEquipment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), middlewarectx.Actor(r.Context()), req)
	if err != nil {
		if errors.Is(err, equipment.ErrInvalidInput) {
			log.Error("invalid input", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}
		log.Error("failed to create equipment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create equipment"))
		return
	}

	log.Info("success to create equipment", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
