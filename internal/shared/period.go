package shared

import (
	"fmt"
	"strconv"
	"time"
)

// Period identifies one accounting month. It is the unit of profit and loss
// aggregation and the storage key for generated statements.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Validate checks month and year ranges.
func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidPeriod, p.Month)
	}
	if p.Year <= 0 {
		return fmt.Errorf("%w: year must be a positive integer, got %d", ErrInvalidPeriod, p.Year)
	}
	return nil
}

// Bounds returns the half-open UTC interval [start, end) covering the period.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	start, end := p.Bounds()
	t = t.UTC()
	return !t.Before(start) && t.Before(end)
}

// String renders the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// ParsePeriod builds a validated Period from raw month/year strings, as they
// arrive in query parameters.
func ParsePeriod(month, year string) (Period, error) {
	m, err := strconv.Atoi(month)
	if err != nil {
		return Period{}, fmt.Errorf("%w: month %q is not an integer", ErrInvalidPeriod, month)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Period{}, fmt.Errorf("%w: year %q is not an integer", ErrInvalidPeriod, year)
	}
	p := Period{Month: m, Year: y}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}
