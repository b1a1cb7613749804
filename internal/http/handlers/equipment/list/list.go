// Package list реализует HTTP-обработчик для получения списка оборудования
// с фильтрацией по статусу, поиском по названию и серийному номеру и пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/asset-maintenance/internal/http/response"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// Handler обрабатывает запросы на получение списка оборудования.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики получения списка.
type Service interface {
	List(ctx context.Context, f models.EquipmentFilter) ([]*models.Equipment, int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список оборудования
// @Description Возвращает оборудование, новые записи первыми. Без limit возвращаются все записи.
// @Tags Equipment
// @Produce json
// @Param status query string false "Статус" Enums(active, maintenance, inactive)
// @Param q query string false "Подстрока названия или серийного номера"
// @Param limit query int false "Максимальное количество записей"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный статус"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /equipment [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.equipment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()
	filter := models.EquipmentFilter{
		Query: strings.TrimSpace(query.Get("q")),
	}

	if status := query.Get("status"); status != "" && status != "all" {
		filter.Status = models.Status(status)
		if !filter.Status.Valid() {
			log.Error("invalid status", slog.String("status", status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid status"))
			return
		}
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil || limit < 0 {
		limit = 0
	}
	offset, err := strconv.Atoi(query.Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Limit, filter.Offset = limit, offset

	res, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list equipment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list"))
		return
	}

	log.Info("list equipment", slog.Int("count", len(res)), slog.Int("total", total))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"total":   total,
		"count":   len(res),
		"entries": res,
	}))
}
