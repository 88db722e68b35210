package clock

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date form used everywhere in the
// system: database columns, API payloads and cache keys.
const DateLayout = "2006-01-02"

// DefaultZone is the single business time zone. All calendar decisions
// (which day a check-in belongs to, what counts as Sunday) are made in
// this zone regardless of the host clock; override via ATTENDANCE_TIMEZONE.
const DefaultZone = "Asia/Jakarta"

// Clock resolves "now" and calendar dates in one fixed zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func New(zoneName string) (*Clock, error) {
	if zoneName == "" {
		zoneName = DefaultZone
	}
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", zoneName, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// WithNow replaces the time source. Tests use this to pin the clock.
func (c *Clock) WithNow(now func() time.Time) *Clock {
	c.now = now
	return c
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the configured zone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current calendar date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

// DateOf returns the calendar date of t, evaluated in the configured zone.
func (c *Clock) DateOf(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// MonthBounds returns the first and last calendar date of the month
// containing date.
func (c *Clock) MonthBounds(date string) (first, last string, err error) {
	t, err := c.Parse(date)
	if err != nil {
		return "", "", err
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc)
	end := start.AddDate(0, 1, -1)
	return start.Format(DateLayout), end.Format(DateLayout), nil
}

// Parse parses a YYYY-MM-DD date into midnight in the configured zone.
func (c *Clock) Parse(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// AddDays shifts a calendar date by n days.
func (c *Clock) AddDays(date string, n int) (string, error) {
	t, err := c.Parse(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// EndOfDay returns the last instant of the given calendar date, used when
// deciding whether an employee hired on that date already counted for it.
func (c *Clock) EndOfDay(date string) (time.Time, error) {
	t, err := c.Parse(date)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// Weekday returns the day of week of a calendar date, Sunday = 0.
func (c *Clock) Weekday(date string) (time.Weekday, error) {
	t, err := c.Parse(date)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// IsSunday reports whether date falls on a Sunday, the only non-working
// day in this domain (Saturday is a working day).
func (c *Clock) IsSunday(date string) (bool, error) {
	wd, err := c.Weekday(date)
	if err != nil {
		return false, err
	}
	return wd == time.Sunday, nil
}

// DateRange enumerates every calendar date from first through last
// inclusive. Returns nil when last is before first.
func (c *Clock) DateRange(first, last string) ([]string, error) {
	start, err := c.Parse(first)
	if err != nil {
		return nil, err
	}
	end, err := c.Parse(last)
	if err != nil {
		return nil, err
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// IsValidDate reports whether s is a well-formed YYYY-MM-DD date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
