package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/ptr"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func tsList(values ...string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = ts(v)
	}
	return result
}

func mondayWithBreak() domain.DaySchedule {
	return domain.DaySchedule{
		IsOpen:              true,
		OpenTime:            ts("08:00"),
		CloseTime:           ts("18:00"),
		BreakStartTime:      ptr.Ptr(ts("12:00")),
		BreakEndTime:        ptr.Ptr(ts("13:00")),
		SlotDurationMinutes: 60,
	}
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		day      func() domain.DaySchedule
		expected []types.TimeString
	}{
		{
			name:     "break skipped and resumed at break end",
			day:      mondayWithBreak,
			expected: tsList("08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"),
		},
		{
			name: "no break",
			day: func() domain.DaySchedule {
				d := mondayWithBreak()
				d.BreakStartTime, d.BreakEndTime = nil, nil
				d.CloseTime = ts("12:00")
				return d
			},
			expected: tsList("08:00", "09:00", "10:00", "11:00"),
		},
		{
			name: "partial slot before close is dropped",
			day: func() domain.DaySchedule {
				d := mondayWithBreak()
				d.BreakStartTime, d.BreakEndTime = nil, nil
				d.CloseTime = ts("10:30")
				return d
			},
			expected: tsList("08:00", "09:00"),
		},
		{
			name: "step lands inside break",
			day: func() domain.DaySchedule {
				d := mondayWithBreak()
				d.SlotDurationMinutes = 90
				d.BreakStartTime = ptr.Ptr(ts("12:00"))
				d.BreakEndTime = ptr.Ptr(ts("13:15"))
				return d
			},
			// 08:00, 09:30, 11:00, 12:30 в перерыве → 13:15, 14:45, 16:15
			expected: tsList("08:00", "09:30", "11:00", "13:15", "14:45", "16:15"),
		},
		{
			name: "closed day",
			day: func() domain.DaySchedule {
				return domain.ClosedDay(domain.TruncateDate(mondayWithBreak().Date), domain.ScheduleSourceWeekly)
			},
			expected: []types.TimeString{},
		},
		{
			name: "slot longer than day",
			day: func() domain.DaySchedule {
				d := mondayWithBreak()
				d.BreakStartTime, d.BreakEndTime = nil, nil
				d.CloseTime = ts("08:30")
				return d
			},
			expected: []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSlots(tt.day()))
		})
	}
}

func TestGenerateSlots_Properties(t *testing.T) {
	day := mondayWithBreak()
	day.SlotDurationMinutes = 45

	first := GenerateSlots(day)
	second := GenerateSlots(day)
	assert.Equal(t, first, second, "generation must be deterministic")

	for _, slot := range first {
		start := slot.Minutes()
		assert.GreaterOrEqual(t, start, day.OpenTime.Minutes())
		assert.LessOrEqual(t, start+day.SlotDurationMinutes, day.CloseTime.Minutes())
		inBreak := start >= day.BreakStartTime.Minutes() && start < day.BreakEndTime.Minutes()
		assert.False(t, inBreak, "slot %s starts inside the break", slot)
	}
	assert.Contains(t, first, ts("13:00"), "slots resume exactly at break end")
}

func TestHasConflict(t *testing.T) {
	existing := []*domain.Appointment{
		{ID: 1, StartTime: ts("09:00"), DurationMinutes: 60, Status: domain.StatusConfirmed, IsActive: true},
		{ID: 2, StartTime: ts("14:00"), DurationMinutes: 60, Status: domain.StatusCancelled, IsActive: true},
	}

	assert.True(t, hasConflict(existing, ts("09:30"), 60, nil))
	assert.False(t, hasConflict(existing, ts("10:00"), 60, nil))
	assert.False(t, hasConflict(existing, ts("14:00"), 60, nil), "cancelled appointments never conflict")
	assert.False(t, hasConflict(existing, ts("09:30"), 60, ptr.Ptr(int64(1))), "excluded appointment is ignored")
}
