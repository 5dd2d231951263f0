package models

import (
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
)

// DayAvailabilityResponse сводка доступности одного дня месяца
type DayAvailabilityResponse struct {
	Date               string `json:"date"` // "2025-10-15"
	HasAvailability    bool   `json:"hasAvailability"`
	AvailableSlotCount int    `json:"availableSlotCount"`
}

// MonthlyAvailabilityResponse доступность по всем дням месяца
type MonthlyAvailabilityResponse struct {
	WorkshopID  int64                     `json:"workshopId"`
	Year        int                       `json:"year"`
	Month       int                       `json:"month"`
	ServiceType string                    `json:"serviceType"`
	Days        []DayAvailabilityResponse `json:"days"`
}

// SlotResponse свободный интервал
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DateSlotsResponse свободные интервалы на дату
type DateSlotsResponse struct {
	Date            string         `json:"date"`
	HasAvailability bool           `json:"hasAvailability"`
	AvailableSlots  []SlotResponse `json:"availableSlots"`
}

// MultipleDatesResponse доступность на набор дат
type MultipleDatesResponse struct {
	WorkshopID  int64               `json:"workshopId"`
	ServiceType string              `json:"serviceType"`
	Dates       []DateSlotsResponse `json:"dates"`
}

// BusyDateResponse занятая или закрытая дата
type BusyDateResponse struct {
	Date             string `json:"date"`
	Reason           string `json:"reason"`
	AppointmentCount int    `json:"appointmentCount"`
}

// BusyDatesResponse список занятых дат периода
type BusyDatesResponse struct {
	WorkshopID int64              `json:"workshopId"`
	StartDate  string             `json:"startDate"`
	EndDate    string             `json:"endDate"`
	BusyDates  []BusyDateResponse `json:"busyDates"`
}

// FromDomainDayAvailability конвертирует сводку дня в response
func FromDomainDayAvailability(d domain.DayAvailability) DayAvailabilityResponse {
	return DayAvailabilityResponse{
		Date:               d.Date.Format(domain.DateFormat),
		HasAvailability:    d.HasAvailability,
		AvailableSlotCount: d.AvailableSlotCount,
	}
}

// FromDomainDateSlots конвертирует доступность даты со списком интервалов в response
func FromDomainDateSlots(d domain.DayAvailability) DateSlotsResponse {
	slots := make([]SlotResponse, len(d.AvailableSlots))
	for i, s := range d.AvailableSlots {
		slots[i] = SlotResponse{StartTime: s.StartTime.String(), EndTime: s.EndTime.String()}
	}
	return DateSlotsResponse{
		Date:            d.Date.Format(domain.DateFormat),
		HasAvailability: d.HasAvailability,
		AvailableSlots:  slots,
	}
}

// FromDomainBusyDates конвертирует список занятых дат в response
func FromDomainBusyDates(workshopID int64, start, end time.Time, dates []domain.BusyDate) *BusyDatesResponse {
	items := make([]BusyDateResponse, len(dates))
	for i, d := range dates {
		items[i] = BusyDateResponse{
			Date:             d.Date.Format(domain.DateFormat),
			Reason:           string(d.Reason),
			AppointmentCount: d.AppointmentCount,
		}
	}
	return &BusyDatesResponse{
		WorkshopID: workshopID,
		StartDate:  start.Format(domain.DateFormat),
		EndDate:    end.Format(domain.DateFormat),
		BusyDates:  items,
	}
}
