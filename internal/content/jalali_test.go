package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJalali(t *testing.T) {
	tests := []struct {
		in      time.Time
		y, m, d int
	}{
		{time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), 1403, 1, 1},
		{time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 1401, 10, 11},
	}
	for _, tt := range tests {
		y, m, d := Jalali(tt.in)
		assert.Equal(t, []int{tt.y, tt.m, tt.d}, []int{y, m, d}, tt.in.Format(time.DateOnly))
	}
}

func TestFormatJalali(t *testing.T) {
	assert.Equal(t, "۱۱ دی ۱۴۰۱", FormatJalali(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
}
