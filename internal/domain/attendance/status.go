package attendance

import (
	"math"
	"time"
)

// DayStatus is the derived classification of a record. "absent" is never
// stored; aggregation infers it for weekdays with no record.
type DayStatus string

const (
	StatusPresent DayStatus = "present"
	StatusLate    DayStatus = "late"
	StatusHalfDay DayStatus = "half-day"
	StatusAbsent  DayStatus = "absent"
)

// Time-of-day thresholds on the check-in's calendar day. A check-in at
// exactly 09:00:00 is on time; a check-out at exactly 17:00:00 is a full
// day.
const (
	LateThresholdHour       = 9
	EarlyLeaveThresholdHour = 17
)

// DeriveStatus computes the stored status and worked hours from a pair of
// timestamps. It is the single source of truth for both check-in and
// check-out; callers persist exactly what it returns.
//
// Rules: late when check-in is strictly after 09:00; early leave when
// check-out is strictly before 17:00 of the check-in's day. Early leave
// yields half-day and wins over lateness. Hours are zero until checkout,
// then the raw difference rounded to two decimals.
func DeriveStatus(checkIn time.Time, checkOut *time.Time) (DayStatus, float64) {
	lateThreshold := thresholdOn(checkIn, LateThresholdHour)
	isLate := checkIn.After(lateThreshold)

	if checkOut == nil {
		if isLate {
			return StatusLate, 0
		}
		return StatusPresent, 0
	}

	earlyLeaveThreshold := thresholdOn(checkIn, EarlyLeaveThresholdHour)
	isEarlyLeave := checkOut.Before(earlyLeaveThreshold)
	hours := RoundHours(checkOut.Sub(checkIn).Hours())

	switch {
	case isEarlyLeave:
		return StatusHalfDay, hours
	case isLate:
		return StatusLate, hours
	default:
		return StatusPresent, hours
	}
}

// Attended reports whether a stored status counts as "showed up" for
// dashboard presence, which is distinct from the per-record day status.
func (s DayStatus) Attended() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// RoundHours rounds a decimal hour count to two places.
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func thresholdOn(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
