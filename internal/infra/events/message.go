package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

// Типы событий жизненного цикла записи (совпадают с routing key)
const (
	AppointmentCreated     = "appointment.created"
	AppointmentConfirmed   = "appointment.confirmed"
	AppointmentCancelled   = "appointment.cancelled"
	AppointmentRescheduled = "appointment.rescheduled"
	AppointmentStarted     = "appointment.started"
	AppointmentCompleted   = "appointment.completed"
	AppointmentNoShow      = "appointment.no_show"
)

// Message тело события, публикуемого в exchange
type Message struct {
	ID          uuid.UUID          `json:"id"`
	Type        string             `json:"type"`
	OccurredAt  time.Time          `json:"occurredAt"`
	Appointment AppointmentPayload `json:"appointment"`
}

// AppointmentPayload снимок записи на момент события
type AppointmentPayload struct {
	ID                 int64      `json:"id"`
	AppointmentNumber  string     `json:"appointmentNumber"`
	ClientID           int64      `json:"clientId"`
	WorkshopID         int64      `json:"workshopId"`
	EmployeeID         *int64     `json:"employeeId,omitempty"`
	ReparationOrderID  *int64     `json:"reparationOrderId,omitempty"`
	AppointmentDate    string     `json:"appointmentDate"`
	StartTime          string     `json:"startTime"`
	EndTime            string     `json:"endTime"`
	DurationMinutes    int        `json:"durationMinutes"`
	ServiceType        string     `json:"serviceType"`
	Status             string     `json:"status"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

// NewMessage строит событие с новым идентификатором
func NewMessage(eventType string, a *domain.Appointment, now time.Time) Message {
	return Message{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: now.UTC(),
		Appointment: AppointmentPayload{
			ID:                 a.ID,
			AppointmentNumber:  a.AppointmentNumber,
			ClientID:           a.ClientID,
			WorkshopID:         a.WorkshopID,
			EmployeeID:         a.EmployeeID,
			ReparationOrderID:  a.ReparationOrderID,
			AppointmentDate:    a.AppointmentDate.Format(domain.DateFormat),
			StartTime:          a.StartTime.String(),
			EndTime:            a.EndTime.String(),
			DurationMinutes:    a.DurationMinutes,
			ServiceType:        string(a.ServiceType),
			Status:             string(a.Status),
			CancellationReason: a.CancellationReason,
			UpdatedAt:          a.UpdatedAt,
			CompletedAt:        a.CompletedAt,
		},
	}
}
