// Package schedulepkg computes occurrence dates for recurring payments.
//
// All computations work on calendar dates: inputs are truncated to
// midnight in their own location and time-of-day never matters.
package schedulepkg

import (
	"errors"
	"time"
)

// Interval is the repetition period of a schedule.
type Interval string

// Supported intervals.
const (
	IntervalWeekly   Interval = "WEEKLY"
	IntervalBiweekly Interval = "BIWEEKLY"
	IntervalMonthly  Interval = "MONTHLY"
)

// Policy selects how missed occurrences are handled when the runner
// was down past one or more due dates.
type Policy string

// Supported catch-up policies.
const (
	// PolicyCatchUpOnce pays the configured amount once and fast-forwards
	// the schedule past today.
	PolicyCatchUpOnce Policy = "catch_up_once"
	// PolicyPayAllMissed pays once per missed occurrence.
	PolicyPayAllMissed Policy = "pay_all_missed"
)

// MaxDayOfMonth caps monthly schedules so month-end ambiguity never arises.
const MaxDayOfMonth = 28

var (
	// ErrUnknownInterval indicates an interval outside the supported set.
	ErrUnknownInterval = errors.New("unknown schedule interval")
	// ErrDayOfMonth indicates a day of month outside 1..28.
	ErrDayOfMonth = errors.New("day of month must be between 1 and 28")
	// ErrUnknownPolicy indicates an unsupported catch-up policy.
	ErrUnknownPolicy = errors.New("unknown catch-up policy")
)

// ParsePolicy validates a catch-up policy string.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyCatchUpOnce, PolicyPayAllMissed:
		return Policy(s), nil
	}

	return "", ErrUnknownPolicy
}

// Schedule is a declarative recurring payment schedule. DayOfWeek is
// used for weekly and biweekly intervals, DayOfMonth for monthly ones.
type Schedule struct {
	Interval   Interval
	DayOfWeek  time.Weekday
	DayOfMonth int
}

// Validate checks that the schedule configuration is well formed.
func (s Schedule) Validate() error {
	switch s.Interval {
	case IntervalWeekly, IntervalBiweekly:
		return nil
	case IntervalMonthly:
		if s.DayOfMonth < 1 || s.DayOfMonth > MaxDayOfMonth {
			return ErrDayOfMonth
		}

		return nil
	}

	return ErrUnknownInterval
}

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextAfter returns the first occurrence strictly after t. Used when a
// schedule is created or edited without an explicit start date.
//
// The schedule must be valid.
func (s Schedule) NextAfter(t time.Time) time.Time {
	day := Date(t)

	if s.Interval == IntervalMonthly {
		next := time.Date(day.Year(), day.Month(), s.DayOfMonth, 0, 0, 0, 0, day.Location())
		if !next.After(day) {
			next = next.AddDate(0, 1, 0)
		}

		return next
	}

	return nextWeekday(day, s.DayOfWeek)
}

// Advance returns the occurrence one interval after occ.
//
// The schedule must be valid.
func (s Schedule) Advance(occ time.Time) time.Time {
	occ = Date(occ)

	switch s.Interval {
	case IntervalWeekly:
		return alignWeekday(occ.AddDate(0, 0, 7), s.DayOfWeek)
	case IntervalBiweekly:
		return alignWeekday(occ.AddDate(0, 0, 14), s.DayOfWeek)
	default:
		return time.Date(occ.Year(), occ.Month()+1, s.DayOfMonth, 0, 0, 0, 0, occ.Location())
	}
}

// AdvancePast advances from occ one interval at a time until the
// result is strictly after today. This is the fast-forward half of the
// catch-up-once policy.
func (s Schedule) AdvancePast(occ, today time.Time) time.Time {
	today = Date(today)

	next := s.Advance(occ)
	for !next.After(today) {
		next = s.Advance(next)
	}

	return next
}

// nextWeekday returns the first date strictly after day falling on wd.
func nextWeekday(day time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(day.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}

	return day.AddDate(0, 0, days)
}

// alignWeekday moves day forward to the next date falling on wd,
// keeping day itself when it already matches.
func alignWeekday(day time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, days)
}
