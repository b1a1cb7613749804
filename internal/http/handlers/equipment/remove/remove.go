// Package remove реализует HTTP-обработчик для удаления оборудования вместе
// с его журналом обслуживания.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/asset-maintenance/internal/http/middlewarectx"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/response"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

// Handler обрабатывает запросы на удаление оборудования.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления.
type Service interface {
	Delete(ctx context.Context, actor, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить оборудование
// @Tags Equipment
// @Produce json
// @Param id path string true "ID оборудования"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Оборудование не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /equipment/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.equipment.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	err := h.service.Delete(r.Context(), middlewarectx.Actor(r.Context()), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("equipment not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("equipment not found"))
			return
		}
		log.Error("failed to remove equipment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove equipment"))
		return
	}

	log.Info("success to remove equipment", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id": id,
	}))
}
