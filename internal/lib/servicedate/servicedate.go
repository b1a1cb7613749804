// Package servicedate содержит безопасный разбор календарных дат и
// вычисление даты следующего обслуживания.
//
// Функции пакета никогда не паникуют и не возвращают ошибок: пустая или
// некорректная дата трактуется как отсутствие значения.
package servicedate

import (
	"strings"
	"time"
)

// Layout — формат календарной даты.
const Layout = "2006-01-02"

// DefaultIntervalDays — интервал обслуживания по умолчанию.
const DefaultIntervalDays = 180

const secondsPerDay = 24 * 60 * 60

// Source описывает происхождение даты следующего обслуживания.
type Source string

const (
	// SourceExplicit — дата задана явно.
	SourceExplicit Source = "explicit"
	// SourceDerived — дата вычислена из последнего обслуживания и интервала.
	SourceDerived Source = "derived"
	// SourceNone — дату определить невозможно.
	SourceNone Source = "none"
)

// Parse разбирает дату в формате yyyy-mm-dd или дату-время ISO,
// первые десять символов которой являются датой. Результат нормализуется
// к полуночи UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) < len(Layout) {
		return time.Time{}, false
	}
	if len(s) > len(Layout) && s[len(Layout)] != 'T' && s[len(Layout)] != ' ' {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(Layout, s[:len(Layout)], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Format возвращает дату в формате yyyy-mm-dd.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Today возвращает текущую календарную дату в зоне loc как полночь UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// Interval возвращает интервал обслуживания, подставляя значение
// по умолчанию для неположительных значений.
func Interval(days int) int {
	if days < 1 {
		return DefaultIntervalDays
	}
	return days
}

// DaysBetween возвращает число целых дней от from до to.
// Обе даты должны быть календарными (полночь UTC).
func DaysBetween(from, to time.Time) int {
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}

// AddDays сдвигает дату на n календарных дней.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DeriveNext вычисляет дату следующего обслуживания:
// явная дата next, если она разбирается; иначе last плюс интервал;
// иначе значение отсутствует.
func DeriveNext(next, last string, intervalDays int) (time.Time, Source) {
	if t, ok := Parse(next); ok {
		return t, SourceExplicit
	}
	if t, ok := Parse(last); ok {
		return AddDays(t, Interval(intervalDays)), SourceDerived
	}
	return time.Time{}, SourceNone
}

// InFuture сообщает, что дата s строго позже today.
func InFuture(s string, today time.Time) bool {
	t, ok := Parse(s)
	return ok && t.After(today)
}
