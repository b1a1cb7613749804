package servicedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{name: "календарная дата", input: "2025-01-01", want: date(2025, 1, 1), wantOK: true},
		{name: "дата-время ISO", input: "2025-01-01T10:00:00Z", want: date(2025, 1, 1), wantOK: true},
		{name: "пробелы по краям", input: "  2024-02-29 ", want: date(2024, 2, 29), wantOK: true},
		{name: "пустая строка", input: "", wantOK: false},
		{name: "мусор", input: "not-a-date", wantOK: false},
		{name: "несуществующий день", input: "2025-02-30", wantOK: false},
		{name: "лишний хвост", input: "2025-01-01xyz", wantOK: false},
		{name: "другой формат", input: "01-06-2025", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s", got)
			}
		})
	}
}

func TestDeriveNext(t *testing.T) {
	tests := []struct {
		name       string
		next       string
		last       string
		interval   int
		want       string
		wantSource Source
	}{
		{
			name:       "явная дата имеет приоритет",
			next:       "2025-05-01",
			last:       "2025-01-01",
			interval:   180,
			want:       "2025-05-01",
			wantSource: SourceExplicit,
		},
		{
			name:       "вычисление из последнего обслуживания",
			last:       "2025-01-01",
			interval:   180,
			want:       "2025-06-30",
			wantSource: SourceDerived,
		},
		{
			name:       "учитывается собственный интервал",
			last:       "2025-01-01",
			interval:   30,
			want:       "2025-01-31",
			wantSource: SourceDerived,
		},
		{
			name:       "неположительный интервал заменяется на 180",
			last:       "2025-01-01",
			interval:   0,
			want:       "2025-06-30",
			wantSource: SourceDerived,
		},
		{
			name:       "некорректная явная дата игнорируется",
			next:       "garbage",
			last:       "2025-01-01",
			interval:   10,
			want:       "2025-01-11",
			wantSource: SourceDerived,
		},
		{
			name:       "нет дат",
			next:       "",
			last:       "bad",
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := DeriveNext(tt.next, tt.last, tt.interval)
			require.Equal(t, tt.wantSource, source)
			if tt.wantSource == SourceNone {
				assert.True(t, got.IsZero())
				return
			}
			assert.Equal(t, tt.want, Format(got))
		})
	}
}

func TestDeriveNext_LastPlusIntervalNeverBeforeLast(t *testing.T) {
	last := date(2024, 1, 1)
	for i := -5; i < 400; i += 7 {
		got, _ := DeriveNext("", Format(last), i)
		assert.True(t, got.After(last), "interval %d", i)
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 6, 16, 2, 30, 0, 0, time.UTC)

	assert.Equal(t, date(2025, 6, 16), Today(now, time.UTC))
	assert.Equal(t, date(2025, 6, 15), Today(now, loc))
	assert.Equal(t, date(2025, 6, 16), Today(now, nil))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 15, DaysBetween(date(2025, 6, 15), date(2025, 6, 30)))
	assert.Equal(t, -45, DaysBetween(date(2025, 6, 15), date(2025, 5, 1)))
	assert.Equal(t, 0, DaysBetween(date(2025, 6, 15), date(2025, 6, 15)))
}

func TestDaysBetween_FarDates(t *testing.T) {
	assert.Equal(t, 2912642, DaysBetween(date(2025, 6, 15), date(9999, 12, 31)))
	assert.Equal(t, -739416, DaysBetween(date(2025, 6, 15), date(1, 1, 1)))

	next, ok := Parse("9999-12-31")
	require.True(t, ok)
	assert.Equal(t, 2912642, DaysBetween(date(2025, 6, 15), next))
}

func TestInFuture(t *testing.T) {
	today := date(2025, 6, 15)
	assert.True(t, InFuture("2025-06-16", today))
	assert.False(t, InFuture("2025-06-15", today))
	assert.False(t, InFuture("", today))
}
