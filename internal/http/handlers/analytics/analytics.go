// Package analytics реализует HTTP-обработчик аналитики по выборке оборудования,
// заданной статусом и окном в днях.
package analytics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	engine "github.com/magabrotheeeer/asset-maintenance/internal/analytics"
	"github.com/magabrotheeeer/asset-maintenance/internal/http/response"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
	analyticsservice "github.com/magabrotheeeer/asset-maintenance/internal/services/analytics"
)

// Handler обрабатывает запросы аналитики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс построения аналитики.
type Service interface {
	Analytics(ctx context.Context, f engine.Filter, asOf time.Time) (engine.Report, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Аналитика
// @Description Распределение по статусам, помесячный ряд закупок, оборудование под риском и выводы по выборке.
// @Tags Analytics
// @Produce json
// @Param status query string false "Статус или all" Enums(all, active, maintenance, inactive)
// @Param days query int false "Окно в днях (30, 90, 365), по умолчанию 365"
// @Param as_of query string false "Дата расчёта yyyy-mm-dd, по умолчанию сегодня"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 503 {object} response.ErrorResponse "Данные не загружены"
// @Router /analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()
	filter := engine.Filter{Days: engine.DefaultWindowDays}

	if status := query.Get("status"); status != "" && status != "all" {
		filter.Status = models.Status(status)
		if !filter.Status.Valid() {
			log.Error("invalid status", slog.String("status", status))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid status"))
			return
		}
	}

	if v := query.Get("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 1 {
			log.Error("invalid days", slog.String("days", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid days"))
			return
		}
		filter.Days = days
	}

	var asOf time.Time
	if v := query.Get("as_of"); v != "" {
		t, ok := servicedate.Parse(v)
		if !ok {
			log.Error("invalid as_of", slog.String("as_of", v))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid as_of"))
			return
		}
		asOf = t
	}

	res, err := h.service.Analytics(r.Context(), filter, asOf)
	if err != nil {
		if errors.Is(err, analyticsservice.ErrLoadFailed) {
			log.Error("failed to load equipment", sl.Err(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("load failed"))
			return
		}
		log.Error("failed to build analytics", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build analytics"))
		return
	}

	log.Info("analytics built", slog.String("status", res.Filter.Status), slog.Int("total", res.KPIs.Total))
	render.JSON(w, r, response.StatusOKWithData(res))
}
