// Package analytics агрегирует снимок коллекции оборудования в показатели
// дашборда и аналитики: распределение по статусам, помесячный ряд,
// список под риском, текстовые выводы и оценку качества данных.
//
// Все функции чистые: входной срез не изменяется, повторный вызов на том же
// снимке даёт тот же результат.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/month"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/maintenance"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

const (
	// SeriesMonthsBack — число месяцев перед текущим в помесячном ряду.
	SeriesMonthsBack = 12
	// RecentActivityLimit — размер списка последних поступлений.
	RecentActivityLimit = 6
	// DefaultAtRiskLimit — размер списка под риском по умолчанию.
	DefaultAtRiskLimit = 6
	// DefaultWindowDays — окно аналитики по умолчанию.
	DefaultWindowDays = 365
)

// Filter — параметры отбора для аналитики.
type Filter struct {
	Status models.Status // пустой статус означает все
	Days   int           // окно в днях; 0 — без ограничения
}

// StatusCount — количество записей одного статуса.
type StatusCount struct {
	Status models.Status `json:"status"`
	Label  string        `json:"label"`
	Count  int           `json:"count"`
}

// MonthBucket — количество закупок за месяц.
type MonthBucket struct {
	Month string `json:"month"`
	Total int    `json:"total"`
}

// Apply отбирает записи по статусу и окну дат. Запись попадает в окно,
// если хотя бы одна из её дат (покупки, последнего или следующего
// обслуживания) лежит в [today − days, today]. Записи без единой
// разбираемой даты попадают в окно всегда.
func Apply(items []*models.Equipment, today time.Time, f Filter) []*models.Equipment {
	result := make([]*models.Equipment, 0, len(items))
	for _, e := range items {
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Days > 0 && !InWindow(e, today.AddDate(0, 0, -f.Days), today) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// InWindow сообщает, попадает ли запись в интервал [from, to].
func InWindow(e *models.Equipment, from, to time.Time) bool {
	var dates []time.Time
	if t, ok := servicedate.Parse(e.PurchaseDate); ok {
		dates = append(dates, t)
	}
	if t, ok := servicedate.Parse(e.LastServiceDate); ok {
		dates = append(dates, t)
	}
	if t, source := maintenance.Resolve(e); source != servicedate.SourceNone {
		dates = append(dates, t)
	}
	if len(dates) == 0 {
		return true
	}
	for _, t := range dates {
		if !t.Before(from) && !t.After(to) {
			return true
		}
	}
	return false
}

// StatusDistribution считает записи по статусам. Всегда возвращает все три
// статуса в фиксированном порядке.
func StatusDistribution(items []*models.Equipment) []StatusCount {
	counts := make(map[models.Status]int, 3)
	for _, e := range items {
		counts[e.Status]++
	}
	result := make([]StatusCount, 0, 3)
	for _, s := range models.Statuses() {
		result = append(result, StatusCount{Status: s, Label: s.Label(), Count: counts[s]})
	}
	return result
}

// MonthlySeries строит непрерывный ряд из 13 месяцев, заканчивающийся месяцем
// today, по дате покупки. Записи с неразбираемой датой покупки пропускаются.
func MonthlySeries(items []*models.Equipment, today time.Time) []MonthBucket {
	keys := month.Trailing(today, SeriesMonthsBack)
	index := make(map[string]int, len(keys))
	series := make([]MonthBucket, len(keys))
	for i, k := range keys {
		index[k] = i
		series[i] = MonthBucket{Month: k}
	}
	for _, e := range items {
		t, ok := servicedate.Parse(e.PurchaseDate)
		if !ok {
			continue
		}
		if i, found := index[month.Key(t)]; found {
			series[i].Total++
		}
	}
	return series
}

// Percent возвращает round(part / max(total, 1) * 100).
func Percent(part, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Insights формирует текстовые выводы по агрегированным счётчикам.
// Для пустой выборки выводов нет.
func Insights(total, active int, counts maintenance.Counts) []string {
	if total == 0 {
		return []string{}
	}
	lines := make([]string, 0, 3)
	if counts.Overdue > 0 {
		lines = append(lines, fmt.Sprintf(
			"%d asset(s) are overdue for maintenance. Prioritize reviews and corrective actions.", counts.Overdue))
	} else {
		lines = append(lines, "No overdue maintenance detected in the current filters.")
	}
	if counts.DueWithin7 > 0 {
		lines = append(lines, fmt.Sprintf("%d asset(s) are due within the next 7 days.", counts.DueWithin7))
	}
	lines = append(lines, fmt.Sprintf("%d%% of assets are currently in service.", Percent(active, total)))
	return lines
}

// DataQuality возвращает оценку заполненности данных:
// round(min(с серийным номером, с датой последнего обслуживания) / всего * 100).
func DataQuality(items []*models.Equipment) int {
	if len(items) == 0 {
		return 0
	}
	var withSerial, withLastService int
	for _, e := range items {
		if strings.TrimSpace(e.SerialNumber) != "" {
			withSerial++
		}
		if strings.TrimSpace(e.LastServiceDate) != "" {
			withLastService++
		}
	}
	return Percent(min(withSerial, withLastService), len(items))
}

// RecentActivity возвращает последние limit записей по дате покупки
// по убыванию. Записи с неразбираемой датой идут в конце.
func RecentActivity(items []*models.Equipment, limit int) []*models.Equipment {
	type dated struct {
		e  *models.Equipment
		t  time.Time
		ok bool
	}
	sorted := make([]dated, 0, len(items))
	for _, e := range items {
		t, ok := servicedate.Parse(e.PurchaseDate)
		sorted = append(sorted, dated{e: e, t: t, ok: ok})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ok != sorted[j].ok {
			return sorted[i].ok
		}
		return sorted[i].t.After(sorted[j].t)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	result := make([]*models.Equipment, 0, len(sorted))
	for _, d := range sorted {
		result = append(result, d.e)
	}
	return result
}

func countStatus(items []*models.Equipment, s models.Status) int {
	n := 0
	for _, e := range items {
		if e.Status == s {
			n++
		}
	}
	return n
}
