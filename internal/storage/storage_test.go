package storage

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{name: "корректная дата", input: "2025-01-01", wantValid: true},
		{name: "пустая строка", input: "", wantValid: false},
		{name: "мусор", input: "abc", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NullDate(tt.input)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.Equal(t, tt.input, DateString(got))
			}
		})
	}
}

func TestDateString_DropsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	v := sql.NullTime{Time: time.Date(2025, 6, 15, 0, 0, 0, 0, loc), Valid: true}

	assert.Equal(t, "2025-06-15", DateString(v))
	assert.Equal(t, "", DateString(sql.NullTime{}))
}
