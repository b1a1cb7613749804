// Package maintenance классифицирует оборудование по срокам обслуживания
// относительно текущей даты: просрочено, в ближайшие 7 или 30 дней.
package maintenance

import (
	"sort"
	"time"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
	"github.com/magabrotheeeer/asset-maintenance/internal/models"
)

// Окна предстоящего обслуживания в днях.
const (
	SoonWindowDays = 7
	NearWindowDays = 30
)

// Classification — результат классификации одной записи.
type Classification struct {
	Next        time.Time
	Source      servicedate.Source
	DaysDelta   int
	Overdue     bool
	DueWithin7  bool
	DueWithin30 bool
}

// HasNext сообщает, удалось ли определить дату следующего обслуживания.
func (c Classification) HasNext() bool {
	return c.Source != servicedate.SourceNone
}

// AtRisk сообщает, просрочено ли обслуживание или наступит в течение 30 дней.
func (c Classification) AtRisk() bool {
	return c.Overdue || c.DueWithin30
}

// Resolve возвращает дату следующего обслуживания записи и её происхождение.
// Сохранённая дата, которую не задавал пользователь и которая совпадает
// с последним обслуживанием плюс интервал, считается вычисленной.
func Resolve(e *models.Equipment) (time.Time, servicedate.Source) {
	next, source := servicedate.DeriveNext(e.NextServiceDate, e.LastServiceDate, e.ServiceIntervalDays)
	if source != servicedate.SourceExplicit || e.NextServiceDateManual {
		return next, source
	}
	derived, ds := servicedate.DeriveNext("", e.LastServiceDate, e.ServiceIntervalDays)
	if ds == servicedate.SourceDerived && derived.Equal(next) {
		return next, servicedate.SourceDerived
	}
	return next, source
}

// Classify классифицирует дату next относительно today.
// Обе даты должны быть календарными (полночь UTC).
func Classify(today, next time.Time, source servicedate.Source) Classification {
	c := Classification{Source: source}
	if source == servicedate.SourceNone {
		return c
	}
	c.Next = next
	c.DaysDelta = servicedate.DaysBetween(today, next)
	c.Overdue = c.DaysDelta < 0
	c.DueWithin7 = c.DaysDelta >= 0 && c.DaysDelta <= SoonWindowDays
	c.DueWithin30 = c.DaysDelta >= 0 && c.DaysDelta <= NearWindowDays
	return c
}

// ClassifyEquipment разрешает дату записи и классифицирует её.
func ClassifyEquipment(today time.Time, e *models.Equipment) Classification {
	next, source := Resolve(e)
	return Classify(today, next, source)
}

// Counts — количество записей по категориям сроков.
type Counts struct {
	Overdue     int `json:"overdue"`
	DueWithin7  int `json:"dueWithin7"`
	DueWithin30 int `json:"dueWithin30"`
}

// Count считает записи по категориям. Записи без даты не попадают ни в одну.
func Count(today time.Time, items []*models.Equipment) Counts {
	var c Counts
	for _, e := range items {
		cl := ClassifyEquipment(today, e)
		if cl.Overdue {
			c.Overdue++
		}
		if cl.DueWithin7 {
			c.DueWithin7++
		}
		if cl.DueWithin30 {
			c.DueWithin30++
		}
	}
	return c
}

// AtRiskItem — элемент списка оборудования под риском.
type AtRiskItem struct {
	Equipment               *models.Equipment `json:"equipment"`
	ResolvedNextServiceDate string            `json:"resolvedNextServiceDate"`
	DaysDelta               int               `json:"daysDelta"`
}

// AtRisk возвращает просроченные записи и записи со сроком в ближайшие 30 дней,
// отсортированные по дате обслуживания по возрастанию с сохранением исходного
// порядка при равенстве. Записи без даты отбрасываются до сортировки.
// При limit > 0 список обрезается до limit элементов.
func AtRisk(today time.Time, items []*models.Equipment, limit int) []AtRiskItem {
	type ranked struct {
		item AtRiskItem
		next time.Time
	}
	candidates := make([]ranked, 0, len(items))
	for _, e := range items {
		cl := ClassifyEquipment(today, e)
		if !cl.HasNext() || !cl.AtRisk() {
			continue
		}
		candidates = append(candidates, ranked{
			item: AtRiskItem{
				Equipment:               e,
				ResolvedNextServiceDate: servicedate.Format(cl.Next),
				DaysDelta:               cl.DaysDelta,
			},
			next: cl.Next,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].next.Before(candidates[j].next)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]AtRiskItem, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.item)
	}
	return result
}

// Schedule — сведения об обслуживании для карточки оборудования.
type Schedule struct {
	ResolvedNextServiceDate *string            `json:"resolvedNextServiceDate"`
	Source                  servicedate.Source `json:"source"`
	DaysDelta               *int               `json:"daysDelta"`
	Overdue                 bool               `json:"overdue"`
	DueWithin7              bool               `json:"dueWithin7"`
	DueWithin30             bool               `json:"dueWithin30"`
	ServiceIntervalDays     int                `json:"serviceIntervalDays"`
	ServicePolicyDays       int                `json:"servicePolicyDays"`
}

// BuildSchedule формирует Schedule записи на дату today.
func BuildSchedule(today time.Time, e *models.Equipment) Schedule {
	cl := ClassifyEquipment(today, e)
	s := Schedule{
		Source:              cl.Source,
		Overdue:             cl.Overdue,
		DueWithin7:          cl.DueWithin7,
		DueWithin30:         cl.DueWithin30,
		ServiceIntervalDays: servicedate.Interval(e.ServiceIntervalDays),
		ServicePolicyDays:   servicedate.DefaultIntervalDays,
	}
	if cl.HasNext() {
		next := servicedate.Format(cl.Next)
		delta := cl.DaysDelta
		s.ResolvedNextServiceDate = &next
		s.DaysDelta = &delta
	}
	return s
}
