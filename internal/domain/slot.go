package domain

import (
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// TimeSlot represents a bookable interval within a day
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DayAvailability is the availability summary of one date
type DayAvailability struct {
	Date               time.Time
	HasAvailability    bool
	AvailableSlotCount int
	AvailableSlots     []TimeSlot
}

// BusyReason classifies why a date is busy
type BusyReason string

const (
	BusyReasonFullyBooked  BusyReason = "fully_booked"
	BusyReasonMostlyBooked BusyReason = "mostly_booked"
	BusyReasonClosed       BusyReason = "closed"
)

// BusyDate is a date that is closed or heavily booked
type BusyDate struct {
	Date             time.Time
	Reason           BusyReason
	AppointmentCount int
}

// OperatingHours of a workshop on a date
type OperatingHours struct {
	OpenTime  types.TimeString
	CloseTime types.TimeString
}
