package mapper

import (
	"testing"
	"time"

	"github.com/garyjia/timesheet-recon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected models.TimeOfDay
	}{
		{name: "24-hour clock", value: "09:30", expected: models.NewTimeOfDay(9, 30)},
		{name: "24-hour clock with seconds", value: "17:45:12", expected: models.NewTimeOfDay(17, 45)},
		{name: "12-hour clock", value: "5:15 PM", expected: models.NewTimeOfDay(17, 15)},
		{name: "12-hour clock lowercase", value: "5:15 pm", expected: models.NewTimeOfDay(17, 15)},
		{name: "12-hour clock without space", value: "11:05AM", expected: models.NewTimeOfDay(11, 5)},
		{name: "midnight", value: "00:00", expected: models.NewTimeOfDay(0, 0)},
		{name: "excel serial fraction", value: "0.375", expected: models.NewTimeOfDay(9, 0)},
		{name: "excel serial fraction evening", value: "0.75", expected: models.NewTimeOfDay(18, 0)},
		{name: "surrounding whitespace", value: "  08:00  ", expected: models.NewTimeOfDay(8, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.value)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "free text", value: "lunch"},
		{name: "out of range serial", value: "1.5"},
		{name: "negative serial", value: "-0.25"},
		{name: "empty", value: ""},
		{name: "bare number above one", value: "930"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimeOfDay(tt.value)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadTimeValue)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Time
	}{
		{name: "ISO", value: "2025-05-02", expected: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{name: "slashes", value: "2025/05/02", expected: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{name: "US style", value: "05/02/2025", expected: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{name: "day-month-year", value: "2-May-25", expected: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{name: "excel serial", value: "45779", expected: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{name: "excel serial with time fraction", value: "45779.5", expected: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.value)

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, value := range []string{"yesterday", "", "-5", "0.5", "0.99"} {
		_, err := ParseDate(value)

		require.Error(t, err, "value %q", value)
		assert.ErrorIs(t, err, ErrBadDateValue)
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{name: "decimal", value: "8.5", expected: 8.5},
		{name: "integer", value: "8", expected: 8.0},
		{name: "clock style", value: "8:30", expected: 8.5},
		{name: "clock style zero minutes", value: "8:00", expected: 8.0},
		{name: "zero", value: "0", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHours(tt.value)

			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestParseHours_Invalid(t *testing.T) {
	for _, value := range []string{"eight", "-2", "8:75", ""} {
		_, err := ParseHours(value)

		require.Error(t, err, "value %q", value)
		assert.ErrorIs(t, err, ErrBadHoursValue)
	}
}
