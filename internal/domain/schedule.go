package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

var (
	ErrUnknownDayOfWeek = errors.New("domain: unknown day of week")
	ErrInvalidSchedule  = errors.New("domain: invalid schedule")
	ErrInvalidException = errors.New("domain: invalid schedule exception")
)

// DayOfWeek is a closed enum of week days
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// AllDays in ISO order, starting from Monday
var AllDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayToDay = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// ParseDayOfWeek parses a case-insensitive day name
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllDays {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDayOfWeek, s)
}

// DayOfWeekFromDate maps the weekday of date to DayOfWeek
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	return weekdayToDay[date.Weekday()]
}

// WeeklySchedule is a workshop's operating hours for one day of the week
type WeeklySchedule struct {
	ID                  int64
	WorkshopID          int64
	DayOfWeek           DayOfWeek
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	IsOpen              bool
	BreakStartTime      *types.TimeString
	BreakEndTime        *types.TimeString
	SlotDurationMinutes int
	IsActive            bool
	CreatedBy           *int64
	UpdatedBy           *int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasBreak returns true if both ends of the break window are set
func (s *WeeklySchedule) HasBreak() bool {
	return s.BreakStartTime != nil && s.BreakEndTime != nil
}

// Validate checks the hours, break window and slot duration
func (s *WeeklySchedule) Validate() error {
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidSchedule, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidSchedule, err)
	}
	if !s.CloseTime.IsAfter(s.OpenTime) {
		return fmt.Errorf("%w: close time must be after open time", ErrInvalidSchedule)
	}
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be between %d and %d minutes",
			ErrInvalidSchedule, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}

	if (s.BreakStartTime == nil) != (s.BreakEndTime == nil) {
		return fmt.Errorf("%w: both break start and break end are required", ErrInvalidSchedule)
	}
	if s.HasBreak() {
		bs, be := *s.BreakStartTime, *s.BreakEndTime
		if err := bs.Validate(); err != nil {
			return fmt.Errorf("%w: break start: %v", ErrInvalidSchedule, err)
		}
		if err := be.Validate(); err != nil {
			return fmt.Errorf("%w: break end: %v", ErrInvalidSchedule, err)
		}
		if !be.IsAfter(bs) {
			return fmt.Errorf("%w: break end must be after break start", ErrInvalidSchedule)
		}
		if bs.IsBefore(s.OpenTime) || be.IsAfter(s.CloseTime) {
			return fmt.Errorf("%w: break must be within operating hours", ErrInvalidSchedule)
		}
	}

	return nil
}

// ScheduleException overrides the weekly schedule for a specific date
type ScheduleException struct {
	ID                int64
	WorkshopID        int64
	Date              time.Time
	IsClosed          bool
	SpecialOpenTime   *types.TimeString
	SpecialCloseTime  *types.TimeString
	Reason            *string
	IsRecurringYearly bool
	IsActive          bool
	CreatedBy         *int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate checks that an open exception carries valid special hours
func (e *ScheduleException) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidException)
	}
	if e.IsClosed {
		return nil
	}
	if e.SpecialOpenTime == nil || e.SpecialCloseTime == nil {
		return fmt.Errorf("%w: special open and close times are required when not closed", ErrInvalidException)
	}
	if err := e.SpecialOpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: special open time: %v", ErrInvalidException, err)
	}
	if err := e.SpecialCloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: special close time: %v", ErrInvalidException, err)
	}
	if !e.SpecialCloseTime.IsAfter(*e.SpecialOpenTime) {
		return fmt.Errorf("%w: special close time must be after special open time", ErrInvalidException)
	}
	return nil
}

// MatchesExactly returns true if the exception is for exactly this calendar date
func (e *ScheduleException) MatchesExactly(date time.Time) bool {
	return SameDate(e.Date, date)
}

// Matches returns true for an exact date or, for recurring exceptions, the same month and day
func (e *ScheduleException) Matches(date time.Time) bool {
	if e.MatchesExactly(date) {
		return true
	}
	return e.IsRecurringYearly && e.Date.Month() == date.Month() && e.Date.Day() == date.Day()
}

// DaySchedule is the effective schedule for one concrete date
type DaySchedule struct {
	Date                time.Time
	IsOpen              bool
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	BreakStartTime      *types.TimeString
	BreakEndTime        *types.TimeString
	SlotDurationMinutes int
	// Source describes what produced the day: weekly, exception or none
	Source string
}

const (
	ScheduleSourceWeekly    = "weekly"
	ScheduleSourceException = "exception"
	ScheduleSourceNone      = "none"
)

// ClosedDay returns a closed schedule for date
func ClosedDay(date time.Time, source string) DaySchedule {
	return DaySchedule{Date: date, IsOpen: false, Source: source}
}

// HasBreak returns true if the day has a break window
func (d DaySchedule) HasBreak() bool {
	return d.BreakStartTime != nil && d.BreakEndTime != nil
}

// WorkingMinutes is the open span minus the break window
func (d DaySchedule) WorkingMinutes() int {
	if !d.IsOpen {
		return 0
	}
	minutes := d.OpenTime.MinutesUntil(d.CloseTime)
	if d.HasBreak() {
		minutes -= d.BreakStartTime.MinutesUntil(*d.BreakEndTime)
	}
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Capacity is the number of slots that fit in the working minutes
func (d DaySchedule) Capacity() int {
	if !d.IsOpen || d.SlotDurationMinutes <= 0 {
		return 0
	}
	return d.WorkingMinutes() / d.SlotDurationMinutes
}

// Contains reports whether [start, start+duration) lies within [open, close)
func (d DaySchedule) Contains(start types.TimeString, durationMinutes int) bool {
	if !d.IsOpen {
		return false
	}
	s := start.Minutes()
	if s < 0 {
		return false
	}
	return s >= d.OpenTime.Minutes() && s+durationMinutes <= d.CloseTime.Minutes()
}

// SameDate compares calendar dates ignoring time of day
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TruncateDate drops the time of day, keeping the date in UTC
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
