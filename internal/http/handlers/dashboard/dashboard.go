// Package dashboard реализует HTTP-обработчик сводки по парку оборудования.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	engine "github.com/magabrotheeeer/asset-maintenance/internal/analytics"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/response"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/services/analytics"
)

// Handler обрабатывает запросы сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс построения сводки.
type Service interface {
	Dashboard(ctx context.Context, asOf time.Time) (engine.Dashboard, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка
// @Description Счётчики по статусам и срокам обслуживания, оборудование под риском, последние поступления.
// @Tags Dashboard
// @Produce json
// @Param as_of query string false "Дата расчёта yyyy-mm-dd, по умолчанию сегодня"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 503 {object} response.ErrorResponse "Данные не загружены"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var asOf time.Time
	if v := r.URL.Query().Get("as_of"); v != "" {
		t, ok := servicedate.Parse(v)
		if !ok {
			log.Error("invalid as_of", slog.String("as_of", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid as_of"))
			return
		}
		asOf = t
	}

	res, err := h.service.Dashboard(r.Context(), asOf)
	if err != nil {
		if errors.Is(err, analytics.ErrLoadFailed) {
			log.Error("failed to load equipment", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("load failed"))
			return
		}
		log.Error("failed to build dashboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard"))
		return
	}

	log.Info("dashboard built", slog.Int("total", res.Total), slog.Int("overdue", res.Overdue))
	render.JSON(w, r, response.StatusOKWithData(res))
}
