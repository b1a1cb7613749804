// Package storage содержит общие для всех хранилищ ошибки и вспомогательные
// функции преобразования дат.
package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/magabrotheeeer/asset-maintenance/internal/lib/servicedate"
)

// ErrNotFound возвращается, когда запись с указанным идентификатором отсутствует.
var ErrNotFound = errors.New("record not found")

// NullDate преобразует строковую дату в значение для колонки DATE NULL.
// Пустая или некорректная дата записывается как NULL.
func NullDate(s string) sql.NullTime {
	t, ok := servicedate.Parse(s)
	if !ok {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// DateString преобразует значение колонки DATE NULL в строку yyyy-mm-dd.
func DateString(v sql.NullTime) string {
	if !v.Valid {
		return ""
	}
	return servicedate.Format(time.Date(v.Time.Year(), v.Time.Month(), v.Time.Day(), 0, 0, 0, 0, time.UTC))
}
