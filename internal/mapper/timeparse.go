package mapper

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/garyjia/timesheet-recon/internal/models"
)

// Accepted layouts for clock times and dates. Timesheets exported from
// different systems disagree on formatting, so we try each in order.
var (
	timeLayouts = []string{
		"15:04:05",
		"15:04",
		"3:04:05 PM",
		"3:04 PM",
		"3:04PM",
	}
	dateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"1/2/2006",
		"2-Jan-06",
		"2 Jan 2006",
	}
)

// Excel stores dates as day counts from this epoch and times as
// fractions of a day.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseTimeOfDay parses a clock time. Accepts the layouts above plus an
// Excel serial fraction in [0, 1), e.g. "0.375" for 09:00.
func ParseTimeOfDay(value string) (models.TimeOfDay, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(value)); err == nil {
			return models.NewTimeOfDay(t.Hour(), t.Minute()), nil
		}
	}

	if frac, err := strconv.ParseFloat(value, 64); err == nil && frac >= 0 && frac < 1 {
		minutes := int(math.Round(frac * 24 * 60))
		return models.TimeOfDay(minutes), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrBadTimeValue, value)
}

// ParseDate parses a calendar date. Accepts the layouts above plus an
// Excel serial day number.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	// Serials below 1 are time-of-day fractions, not dates.
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial >= 1 {
		days := int(serial)
		return excelEpoch.AddDate(0, 0, days), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateValue, value)
}

// ParseHours parses an hours value: decimal ("8.5") or clock style
// ("8:30" meaning eight and a half hours).
func ParseHours(value string) (float64, error) {
	value = strings.TrimSpace(value)

	if h, m, ok := strings.Cut(value, ":"); ok {
		hours, err1 := strconv.Atoi(h)
		minutes, err2 := strconv.Atoi(m)
		if err1 == nil && err2 == nil && hours >= 0 && minutes >= 0 && minutes < 60 {
			return float64(hours) + float64(minutes)/60, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrBadHoursValue, value)
	}

	hours, err := strconv.ParseFloat(value, 64)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadHoursValue, value)
	}
	return hours, nil
}
