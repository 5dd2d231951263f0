package domain

const (
	DefaultSlotDurationMinutes = 60
	DefaultPriority            = PriorityNormal
)

// Business validation constants
const (
	MinSlotDurationMinutes       = 15
	MaxSlotDurationMinutes       = 480
	MinAppointmentDuration       = 15
	MaxAppointmentDuration       = 480
	DurationToleranceMinutes     = 1
	MaxTitleLength               = 255
	MaxNotesLength               = 2000
	MaxCancellationReasonLength  = 500
	MaxMultipleDates             = 31
	MaxBusyDatesRangeDays        = 90
	AppointmentNumberMaxAttempts = 100
	MostlyBookedThresholdPercent = 80
	FullyBookedThresholdPercent  = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, которые занимают слот (совпадают с частичным уникальным индексом).
// Они же считаются при определении загруженности дня.
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusRescheduled,
}
