package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/haderrenteria13/ronald-barber/pkg/types"
)

var (
	// ErrInvalidWeekday is returned when a rule refers to a weekday outside 0..6
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

	// ErrInvalidTimeOfDay is returned when a rule time is not a valid HH:MM value
	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// ErrInvalidWindow is returned when the working window or the break window is inconsistent
	ErrInvalidWindow = errors.New("invalid working window")
)

// WeeklyHourRule describes working hours of the shop for one weekday.
// DayOfWeek follows time.Weekday: 0 = Sunday ... 6 = Saturday.
type WeeklyHourRule struct {
	ID         int64
	DayOfWeek  time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InactiveRule returns the synthesized rule used when nothing is stored for a weekday
func InactiveRule(day time.Weekday) WeeklyHourRule {
	return WeeklyHourRule{
		DayOfWeek: day,
		StartTime: DefaultRuleStartTime,
		EndTime:   DefaultRuleEndTime,
		IsActive:  false,
	}
}

// HasBreak returns true if both break bounds are configured
func (r *WeeklyHourRule) HasBreak() bool {
	return r.BreakStart != nil && r.BreakEnd != nil &&
		!r.BreakStart.IsZero() && !r.BreakEnd.IsZero()
}

// Validate checks the rule invariants:
// startTime < endTime and, with a break, startTime <= breakStart < breakEnd <= endTime.
// A break with only one bound set is rejected as well.
func (r *WeeklyHourRule) Validate() error {
	if r.DayOfWeek < time.Sunday || r.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, r.DayOfWeek)
	}

	start, err := r.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: start_time: %v", ErrInvalidTimeOfDay, err)
	}
	end, err := r.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: end_time: %v", ErrInvalidTimeOfDay, err)
	}
	if start >= end {
		return fmt.Errorf("%w: start_time %s must be before end_time %s", ErrInvalidWindow, r.StartTime, r.EndTime)
	}

	hasStart := r.BreakStart != nil && !r.BreakStart.IsZero()
	hasEnd := r.BreakEnd != nil && !r.BreakEnd.IsZero()
	if hasStart != hasEnd {
		return fmt.Errorf("%w: break_start and break_end must be set together", ErrInvalidWindow)
	}
	if !hasStart {
		return nil
	}

	breakStart, err := r.BreakStart.Minutes()
	if err != nil {
		return fmt.Errorf("%w: break_start: %v", ErrInvalidTimeOfDay, err)
	}
	breakEnd, err := r.BreakEnd.Minutes()
	if err != nil {
		return fmt.Errorf("%w: break_end: %v", ErrInvalidTimeOfDay, err)
	}
	if breakStart < start || breakStart >= breakEnd || breakEnd > end {
		return fmt.Errorf("%w: break %s-%s must lie inside %s-%s",
			ErrInvalidWindow, *r.BreakStart, *r.BreakEnd, r.StartTime, r.EndTime)
	}

	return nil
}

// BlockedDate is a calendar date fully excluded from booking
type BlockedDate struct {
	ID        int64
	Date      time.Time // только дата, время 00:00
	Reason    *string
	CreatedAt time.Time
}
