package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ConfirmRequest запрос на подтверждение записи
type ConfirmRequest struct {
	UserID     int64  `json:"userId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
}

// CancelRequest запрос на отмену записи
type CancelRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

// CompleteRequest запрос на завершение работ
type CompleteRequest struct {
	UserID     int64    `json:"userId"`
	ActualCost *float64 `json:"actualCost,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// ListWorkshopAppointmentsRequest запрос на получение записей мастерской
type ListWorkshopAppointmentsRequest struct {
	WorkshopID      int64      `json:"workshopId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListWorkshopAppointmentsRequest) ToDomainFilter() (domain.WorkshopAppointmentsFilter, error) {
	filter := domain.WorkshopAppointmentsFilter{
		WorkshopID:      r.WorkshopID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// VehicleResponse данные автомобиля
type VehicleResponse struct {
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	LicensePlate *string `json:"licensePlate,omitempty"`
	VIN          *string `json:"vin,omitempty"`
	Color        *string `json:"color,omitempty"`
	Mileage      *int    `json:"mileage,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 int64           `json:"id"`
	AppointmentNumber  string          `json:"appointmentNumber"`
	ClientID           int64           `json:"clientId"`
	WorkshopID         int64           `json:"workshopId"`
	EmployeeID         *int64          `json:"employeeId,omitempty"`
	ReparationOrderID  *int64          `json:"reparationOrderId,omitempty"`
	ContactID          *int64          `json:"contactId,omitempty"`
	AppointmentDate    string          `json:"appointmentDate"` // "2025-10-15"
	StartTime          string          `json:"startTime"`       // "10:00"
	EndTime            string          `json:"endTime"`         // "11:30"
	DurationMinutes    int             `json:"durationMinutes"`
	ServiceType        string          `json:"serviceType"`
	Priority           string          `json:"priority"`
	Status             string          `json:"status"`
	Title              string          `json:"title"`
	Description        *string         `json:"description,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	EstimatedCost      *float64        `json:"estimatedCost,omitempty"`
	ActualCost         *float64        `json:"actualCost,omitempty"`
	CompletionNotes    *string         `json:"completionNotes,omitempty"`
	Vehicle            VehicleResponse `json:"vehicle"`
	ConfirmedAt        *time.Time      `json:"confirmedAt,omitempty"`
	StartedAt          *time.Time      `json:"startedAt,omitempty"`
	CompletedAt        *time.Time      `json:"completedAt,omitempty"`
	CancelledAt        *time.Time      `json:"cancelledAt,omitempty"`
	CancellationReason *string         `json:"cancellationReason,omitempty"`
	ConfirmationSent   bool            `json:"confirmationSent"`
	IsActive           bool            `json:"isActive"`
	CreatedBy          *int64          `json:"createdBy,omitempty"`
	UpdatedBy          *int64          `json:"updatedBy,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ReparationOrderResponse созданный заказ-наряд и обновлённая запись
type ReparationOrderResponse struct {
	OrderID     int64               `json:"orderId"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	WorkshopID  int64               `json:"workshopId"`
	Status      string              `json:"status"`
	Appointment AppointmentResponse `json:"appointment"`
}

// Конвертеры

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                a.ID,
		AppointmentNumber: a.AppointmentNumber,
		ClientID:          a.ClientID,
		WorkshopID:        a.WorkshopID,
		EmployeeID:        a.EmployeeID,
		ReparationOrderID: a.ReparationOrderID,
		ContactID:         a.ContactID,
		AppointmentDate:   a.AppointmentDate.Format(domain.DateFormat),
		StartTime:         a.StartTime.String(),
		EndTime:           a.EndTime.String(),
		DurationMinutes:   a.DurationMinutes,
		ServiceType:       string(a.ServiceType),
		Priority:          string(a.Priority),
		Status:            string(a.Status),
		Title:             a.Title,
		Description:       a.Description,
		Notes:             a.Notes,
		EstimatedCost:     a.EstimatedCost,
		ActualCost:        a.ActualCost,
		CompletionNotes:   a.CompletionNotes,
		Vehicle: VehicleResponse{
			Make:         a.Vehicle.Make,
			Model:        a.Vehicle.Model,
			Year:         a.Vehicle.Year,
			LicensePlate: a.Vehicle.LicensePlate,
			VIN:          a.Vehicle.VIN,
			Color:        a.Vehicle.Color,
			Mileage:      a.Vehicle.Mileage,
		},
		ConfirmedAt:        a.ConfirmedAt,
		StartedAt:          a.StartedAt,
		CompletedAt:        a.CompletedAt,
		CancelledAt:        a.CancelledAt,
		CancellationReason: a.CancellationReason,
		ConfirmationSent:   a.ConfirmationSent,
		IsActive:           a.IsActive,
		CreatedBy:          a.CreatedBy,
		UpdatedBy:          a.UpdatedBy,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	items := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		items[i] = *FromDomainAppointment(a)
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
