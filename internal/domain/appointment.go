package domain

import (
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "pending"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in_progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no_show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// IsValid reports whether s is one of the declared statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// ServiceType is a category of work with a fixed standard duration
type ServiceType string

const (
	ServiceConsultation     ServiceType = "consultation"
	ServiceBasicMaintenance ServiceType = "basic_maintenance"
	ServiceDiagnostic       ServiceType = "diagnostic"
	ServiceMajorRepair      ServiceType = "major_repair"
	ServiceFullService      ServiceType = "full_service"
	ServiceEmergency        ServiceType = "emergency"
)

var standardDurations = map[ServiceType]int{
	ServiceConsultation:     30,
	ServiceBasicMaintenance: 60,
	ServiceDiagnostic:       90,
	ServiceMajorRepair:      240,
	ServiceFullService:      480,
	ServiceEmergency:        120,
}

// IsValid reports whether t is a known service type
func (t ServiceType) IsValid() bool {
	_, ok := standardDurations[t]
	return ok
}

// StandardDuration returns the default duration in minutes, or 0 for unknown types
func (t ServiceType) StandardDuration() int {
	return standardDurations[t]
}

// Priority of an appointment
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// VehicleInfo is embedded into the appointment and has no lifecycle of its own
type VehicleInfo struct {
	Make         *string
	Model        *string
	Year         *int
	LicensePlate *string
	VIN          *string
	Color        *string
	Mileage      *int
}

// Appointment represents a booked visit to a workshop
type Appointment struct {
	ID                int64
	AppointmentNumber string

	ClientID          int64
	WorkshopID        int64
	EmployeeID        *int64
	ReparationOrderID *int64
	ContactID         *int64

	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	ServiceType ServiceType
	Priority    Priority
	Status      AppointmentStatus

	Title           string
	Description     *string
	Notes           *string
	EstimatedCost   *float64
	ActualCost      *float64
	CompletionNotes *string

	Vehicle VehicleInfo

	ConfirmedAt        *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	ConfirmationSent   bool

	IsActive  bool
	CreatedBy *int64
	UpdatedBy *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupies returns true if the appointment blocks its time interval for other bookings
func (a *Appointment) Occupies() bool {
	return a.IsActive && a.Status != StatusCancelled
}

// Overlaps checks half-open interval overlap against [start, start+duration)
func (a *Appointment) Overlaps(start types.TimeString, durationMinutes int) bool {
	reqStart := start.Minutes()
	reqEnd := reqStart + durationMinutes
	existingStart := a.StartTime.Minutes()
	existingEnd := existingStart + a.DurationMinutes
	return reqStart < existingEnd && reqEnd > existingStart
}

func (a *Appointment) CanConfirm() bool {
	return a.Status == StatusPending || a.Status == StatusRescheduled
}

func (a *Appointment) CanStart() bool {
	return a.Status == StatusConfirmed || a.Status == StatusRescheduled
}

func (a *Appointment) CanComplete() bool {
	return a.Status == StatusInProgress
}

func (a *Appointment) CanCancel() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusRescheduled
}

func (a *Appointment) CanReschedule() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed || a.Status == StatusRescheduled
}

func (a *Appointment) CanMarkNoShow() bool {
	return a.Status == StatusConfirmed
}

// HasReparationOrder returns true if an order has already been spawned from this appointment
func (a *Appointment) HasReparationOrder() bool {
	return a.ReparationOrderID != nil
}

// WorkshopAppointmentsFilter фильтр для выборки записей мастерской
type WorkshopAppointmentsFilter struct {
	WorkshopID      int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (включительно)
	EndDate         *time.Time         // Конец периода (включительно)
	Status          *AppointmentStatus // Фильтр по статусу
	Statuses        []AppointmentStatus
	ExcludeStatuses []AppointmentStatus
	IncludeInactive bool // Включать ли деактивированные записи
}
