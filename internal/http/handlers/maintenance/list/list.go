// Package list реализует HTTP-обработчик для получения журнала обслуживания
// оборудования. Записи возвращаются по дате, новые первыми.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/asset-maintenance/internal/http/response"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

// Handler обрабатывает запросы на получение журнала обслуживания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения журнала.
type Service interface {
	ListMaintenance(ctx context.Context, id string) ([]*models.MaintenanceRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Журнал обслуживания
// @Tags Maintenance
// @Produce json
// @Param id path string true "ID оборудования"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Оборудование не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /equipment/{id}/maintenance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.maintenance.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	res, err := h.service.ListMaintenance(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("equipment not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("equipment not found"))
			return
		}
		log.Error("failed to list maintenance records", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list maintenance records"))
		return
	}

	log.Info("list maintenance records", slog.String("id", id), slog.Int("count", len(res)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"count":   len(res),
		"entries": res,
	}))
}
