// Package metrics содержит метрики Prometheus сервиса.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EquipmentWritesTotal — успешные операции записи по типу операции.
	EquipmentWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_maintenance_equipment_writes_total",
		Help: "Total number of successful equipment write operations.",
	},
		[]string{"operation"},
	)

	// OperationErrorsTotal — ошибки по операции.
	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_maintenance_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	// SnapshotCacheTotal — обращения к кешу снимка по результату (hit, miss).
	SnapshotCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_maintenance_snapshot_cache_total",
		Help: "Snapshot cache lookups by result.",
	},
		[]string{"result"},
	)

	// AtRiskEquipment — число единиц под риском на момент последнего расчёта дашборда.
	AtRiskEquipment = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "asset_maintenance_at_risk_equipment",
		Help: "Equipment counts by maintenance category at the last dashboard computation.",
	},
		[]string{"category"},
	)

	// HTTPRequestDuration — длительность HTTP-запросов.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "asset_maintenance_http_request_duration_seconds",
		Help:    "HTTP request latency by route, method and status.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"route", "method", "status"},
	)
)

// Middleware измеряет длительность запросов. Маршрут берётся из шаблона chi.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
