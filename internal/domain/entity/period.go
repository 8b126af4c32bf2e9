// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	domainerror "github.com/httpsniic/sistema-cmc-server/internal/domain/error"
)

// Period identifies one calendar month of records.
type Period struct {
	Month int
	Year  int
}

// NewPeriod builds a Period, validating the month and year ranges.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, invalidPeriod(fmt.Sprintf("month out of range: %d", month))
	}
	if year < 1900 || year > 9999 {
		return Period{}, invalidPeriod(fmt.Sprintf("year out of range: %d", year))
	}
	return Period{Month: month, Year: year}, nil
}

// PeriodOf returns the period containing the given date.
func PeriodOf(date time.Time) Period {
	return Period{Month: int(date.Month()), Year: date.Year()}
}

// ParsePeriodKey parses keys in the "<month>-<year>" form, e.g. "3-2025".
// A zero-padded month ("03-2025") is accepted as well.
func ParsePeriodKey(key string) (Period, error) {
	parts := strings.Split(strings.TrimSpace(key), "-")
	if len(parts) != 2 {
		return Period{}, invalidPeriod(fmt.Sprintf("period %q must be in M-YYYY format", key))
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, invalidPeriod(fmt.Sprintf("invalid period month %q", parts[0]))
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Period{}, invalidPeriod(fmt.Sprintf("invalid period year %q", parts[1]))
	}
	return NewPeriod(month, year)
}

func invalidPeriod(message string) error {
	return domainerror.NewRecordError(domainerror.ErrCodeInvalidPeriod, message, domainerror.ErrInvalidPeriod)
}

// Key returns the lookup key of the period.
func (p Period) Key() string {
	return fmt.Sprintf("%d-%d", p.Month, p.Year)
}

// String implements fmt.Stringer.
func (p Period) String() string {
	return p.Key()
}

// DaysInMonth returns the number of calendar days of the period.
func (p Period) DaysInMonth() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(p.Year, time.Month(p.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	return int(date.Month()) == p.Month && date.Year() == p.Year
}

// Shift moves the period by delta months, wrapping the year.
func (p Period) Shift(delta int) Period {
	first := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return PeriodOf(first)
}

// Start returns the first day of the period at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}
