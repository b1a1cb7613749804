// Package read реализует HTTP-обработчик для получения карточки оборудования по ID.
//
// Помимо самой записи возвращается расчёт обслуживания на сегодня: дата следующего
// обслуживания, её источник, число дней до неё и категория срока.
package read

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
	"github.com/magabrotheeeer/asset-maintenance/internal/services/equipment"
	"github.com/magabrotheeeer/asset-maintenance/internal/storage"
)

// Handler обрабатывает запросы на получение оборудования по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для получения оборудования по ID
}

// Service описывает интерфейс бизнес-логики чтения оборудования.
type Service interface {
	Detail(ctx context.Context, id string) (*equipment.Detail, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить оборудование
// @Description Возвращает запись оборудования и расчёт обслуживания на сегодня.
// @Tags Equipment
// @Produce json
// @Param id path string true "ID оборудования"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "Оборудование не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /equipment/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.equipment.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	res, err := h.service.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("equipment not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("equipment not found"))
			return
		}
		log.Error("failed to read equipment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read equipment"))
		return
	}

	log.Info("success to read equipment", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(res))
}
