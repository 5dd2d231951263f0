package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	createAppointment "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// VehicleRequest данные автомобиля
type VehicleRequest struct {
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	LicensePlate *string `json:"licensePlate,omitempty"`
	VIN          *string `json:"vin,omitempty"`
	Color        *string `json:"color,omitempty"`
	Mileage      *int    `json:"mileage,omitempty"`
}

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	AppointmentNumber *string        `json:"appointmentNumber,omitempty"`
	ClientID          int64          `json:"clientId"`
	WorkshopID        int64          `json:"workshopId"`
	EmployeeID        *int64         `json:"employeeId,omitempty"`
	ContactID         *int64         `json:"contactId,omitempty"`
	AppointmentDate   string         `json:"appointmentDate"` // "2025-10-15"
	StartTime         string         `json:"startTime"`       // "10:00"
	EndTime           *string        `json:"endTime,omitempty"`
	DurationMinutes   *int           `json:"durationMinutes,omitempty"`
	ServiceType       string         `json:"serviceType"`
	Priority          *string        `json:"priority,omitempty"`
	Title             string         `json:"title"`
	Description       *string        `json:"description,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
	EstimatedCost     *float64       `json:"estimatedCost,omitempty"`
	Vehicle           VehicleRequest `json:"vehicle"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("appointmentDate: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	var endTime *types.TimeString
	if r.EndTime != nil {
		t, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
		endTime = &t
	}

	var priority *domain.Priority
	if r.Priority != nil {
		p := domain.Priority(*r.Priority)
		priority = &p
	}

	return &createAppointment.Request{
		UserID:            userID,
		AppointmentNumber: r.AppointmentNumber,
		ClientID:          r.ClientID,
		WorkshopID:        r.WorkshopID,
		EmployeeID:        r.EmployeeID,
		ContactID:         r.ContactID,
		AppointmentDate:   date,
		StartTime:         startTime,
		EndTime:           endTime,
		DurationMinutes:   r.DurationMinutes,
		ServiceType:       domain.ServiceType(r.ServiceType),
		Priority:          priority,
		Title:             r.Title,
		Description:       r.Description,
		Notes:             r.Notes,
		EstimatedCost:     r.EstimatedCost,
		Vehicle: domain.VehicleInfo{
			Make:         r.Vehicle.Make,
			Model:        r.Vehicle.Model,
			Year:         r.Vehicle.Year,
			LicensePlate: r.Vehicle.LicensePlate,
			VIN:          r.Vehicle.VIN,
			Color:        r.Vehicle.Color,
			Mileage:      r.Vehicle.Mileage,
		},
	}, nil
}
