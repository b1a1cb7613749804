// Package month содержит работу с календарными месяцами: ключи вида
// yyyy-mm и непрерывные окна месяцев.
package month

import "time"

// KeyLayout — формат ключа месяца.
const KeyLayout = "2006-01"

// Key возвращает ключ месяца для даты.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Start возвращает первое число месяца даты t.
func Start(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Trailing возвращает ключи месяцев от (месяц today − back) до месяца today
// включительно, в хронологическом порядке. Всего back+1 ключ без пропусков.
func Trailing(today time.Time, back int) []string {
	if back < 0 {
		back = 0
	}
	first := Start(today).AddDate(0, -back, 0)
	keys := make([]string, 0, back+1)
	for i := 0; i <= back; i++ {
		keys = append(keys, Key(first.AddDate(0, i, 0)))
	}
	return keys
}
