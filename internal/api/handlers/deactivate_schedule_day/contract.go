package deactivate_schedule_day

import "context"

type ScheduleService interface {
	DeactivateDay(ctx context.Context, workshopID, userID int64, dayName string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
