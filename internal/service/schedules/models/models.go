package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

var (
	// ErrInvalidTime возвращается при некорректной строке времени
	ErrInvalidTime = errors.New("invalid time value")
)

// Request модели

// DayScheduleRequest часы работы на один день недели
type DayScheduleRequest struct {
	DayOfWeek           string  `json:"dayOfWeek"`
	IsOpen              *bool   `json:"isOpen,omitempty"` // по умолчанию true
	OpenTime            string  `json:"openTime"`
	CloseTime           string  `json:"closeTime"`
	BreakStartTime      *string `json:"breakStartTime,omitempty"`
	BreakEndTime        *string `json:"breakEndTime,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"` // по умолчанию 60
}

// SetWeeklyScheduleRequest пакетная установка расписания (до 7 дней)
type SetWeeklyScheduleRequest struct {
	WorkshopID int64
	UserID     int64
	Days       []DayScheduleRequest
}

// UpdateDayRequest частичное обновление дня недели.
// ClearBreak удаляет перерыв, если новые границы перерыва не переданы.
type UpdateDayRequest struct {
	WorkshopID          int64
	UserID              int64
	DayOfWeek           string
	IsOpen              *bool   `json:"isOpen,omitempty"`
	OpenTime            *string `json:"openTime,omitempty"`
	CloseTime           *string `json:"closeTime,omitempty"`
	BreakStartTime      *string `json:"breakStartTime,omitempty"`
	BreakEndTime        *string `json:"breakEndTime,omitempty"`
	ClearBreak          bool    `json:"clearBreak,omitempty"`
	SlotDurationMinutes *int    `json:"slotDurationMinutes,omitempty"`
}

// CreateExceptionRequest создание исключения из расписания
type CreateExceptionRequest struct {
	WorkshopID        int64
	UserID            int64
	Date              time.Time
	IsClosed          bool
	SpecialOpenTime   *string
	SpecialCloseTime  *string
	Reason            *string
	IsRecurringYearly bool
}

// ListExceptionsRequest выборка исключений за период
type ListExceptionsRequest struct {
	WorkshopID      int64
	From            *time.Time
	To              *time.Time
	IncludeInactive bool
}

// ToDomain конвертирует request в domain модель дня недели
func (r *DayScheduleRequest) ToDomain(workshopID, userID int64) (*domain.WeeklySchedule, error) {
	day, err := domain.ParseDayOfWeek(r.DayOfWeek)
	if err != nil {
		return nil, err
	}

	openTime, err := parseTime("openTime", r.OpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := parseTime("closeTime", r.CloseTime)
	if err != nil {
		return nil, err
	}
	breakStart, err := parseOptionalTime("breakStartTime", r.BreakStartTime)
	if err != nil {
		return nil, err
	}
	breakEnd, err := parseOptionalTime("breakEndTime", r.BreakEndTime)
	if err != nil {
		return nil, err
	}

	schedule := &domain.WeeklySchedule{
		WorkshopID:          workshopID,
		DayOfWeek:           day,
		OpenTime:            openTime,
		CloseTime:           closeTime,
		IsOpen:              true,
		BreakStartTime:      breakStart,
		BreakEndTime:        breakEnd,
		SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
		IsActive:            true,
	}
	if r.IsOpen != nil {
		schedule.IsOpen = *r.IsOpen
	}
	if r.SlotDurationMinutes != nil {
		schedule.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if userID > 0 {
		schedule.CreatedBy = &userID
		schedule.UpdatedBy = &userID
	}
	return schedule, nil
}

// ApplyTo применяет переданные поля к существующему дню
func (r *UpdateDayRequest) ApplyTo(s *domain.WeeklySchedule) error {
	if r.OpenTime != nil {
		t, err := parseTime("openTime", *r.OpenTime)
		if err != nil {
			return err
		}
		s.OpenTime = t
	}
	if r.CloseTime != nil {
		t, err := parseTime("closeTime", *r.CloseTime)
		if err != nil {
			return err
		}
		s.CloseTime = t
	}
	if r.ClearBreak {
		s.BreakStartTime = nil
		s.BreakEndTime = nil
	}
	if r.BreakStartTime != nil {
		t, err := parseTime("breakStartTime", *r.BreakStartTime)
		if err != nil {
			return err
		}
		s.BreakStartTime = &t
	}
	if r.BreakEndTime != nil {
		t, err := parseTime("breakEndTime", *r.BreakEndTime)
		if err != nil {
			return err
		}
		s.BreakEndTime = &t
	}
	if r.IsOpen != nil {
		s.IsOpen = *r.IsOpen
	}
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.UserID > 0 {
		s.UpdatedBy = &r.UserID
	}
	return nil
}

// ToDomain конвертирует request в domain модель исключения
func (r *CreateExceptionRequest) ToDomain() (*domain.ScheduleException, error) {
	openTime, err := parseOptionalTime("specialOpenTime", r.SpecialOpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := parseOptionalTime("specialCloseTime", r.SpecialCloseTime)
	if err != nil {
		return nil, err
	}

	exception := &domain.ScheduleException{
		WorkshopID:        r.WorkshopID,
		Date:              domain.TruncateDate(r.Date),
		IsClosed:          r.IsClosed,
		Reason:            r.Reason,
		IsRecurringYearly: r.IsRecurringYearly,
		IsActive:          true,
	}
	if !r.IsClosed {
		exception.SpecialOpenTime = openTime
		exception.SpecialCloseTime = closeTime
	}
	if r.UserID > 0 {
		exception.CreatedBy = &r.UserID
	}
	return exception, nil
}

func parseTime(field, value string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(value)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidTime, field, err)
	}
	return t, nil
}

func parseOptionalTime(field string, value *string) (*types.TimeString, error) {
	if value == nil {
		return nil, nil
	}
	t, err := parseTime(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Response модели

// DayScheduleResponse расписание одного дня недели
type DayScheduleResponse struct {
	ID                  int64     `json:"id"`
	DayOfWeek           string    `json:"dayOfWeek"`
	IsOpen              bool      `json:"isOpen"`
	OpenTime            string    `json:"openTime"`
	CloseTime           string    `json:"closeTime"`
	BreakStartTime      *string   `json:"breakStartTime,omitempty"`
	BreakEndTime        *string   `json:"breakEndTime,omitempty"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	IsActive            bool      `json:"isActive"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// WeeklyScheduleResponse недельное расписание мастерской
type WeeklyScheduleResponse struct {
	WorkshopID int64                 `json:"workshopId"`
	Days       []DayScheduleResponse `json:"days"`
}

// ExceptionResponse исключение из расписания
type ExceptionResponse struct {
	ID                int64     `json:"id"`
	WorkshopID        int64     `json:"workshopId"`
	Date              string    `json:"date"`
	IsClosed          bool      `json:"isClosed"`
	SpecialOpenTime   *string   `json:"specialOpenTime,omitempty"`
	SpecialCloseTime  *string   `json:"specialCloseTime,omitempty"`
	Reason            *string   `json:"reason,omitempty"`
	IsRecurringYearly bool      `json:"isRecurringYearly"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
}

// ExceptionListResponse список исключений
type ExceptionListResponse struct {
	WorkshopID int64               `json:"workshopId"`
	Exceptions []ExceptionResponse `json:"exceptions"`
}

// Конвертеры

// FromDomainDay конвертирует день недели в response
func FromDomainDay(s *domain.WeeklySchedule) DayScheduleResponse {
	return DayScheduleResponse{
		ID:                  s.ID,
		DayOfWeek:           string(s.DayOfWeek),
		IsOpen:              s.IsOpen,
		OpenTime:            s.OpenTime.String(),
		CloseTime:           s.CloseTime.String(),
		BreakStartTime:      timeToString(s.BreakStartTime),
		BreakEndTime:        timeToString(s.BreakEndTime),
		SlotDurationMinutes: s.SlotDurationMinutes,
		IsActive:            s.IsActive,
		UpdatedAt:           s.UpdatedAt,
	}
}

// FromDomainWeekly конвертирует список дней в response
func FromDomainWeekly(workshopID int64, days []*domain.WeeklySchedule) *WeeklyScheduleResponse {
	items := make([]DayScheduleResponse, len(days))
	for i, d := range days {
		items[i] = FromDomainDay(d)
	}
	return &WeeklyScheduleResponse{WorkshopID: workshopID, Days: items}
}

// FromDomainException конвертирует исключение в response
func FromDomainException(e *domain.ScheduleException) *ExceptionResponse {
	return &ExceptionResponse{
		ID:                e.ID,
		WorkshopID:        e.WorkshopID,
		Date:              e.Date.Format(domain.DateFormat),
		IsClosed:          e.IsClosed,
		SpecialOpenTime:   timeToString(e.SpecialOpenTime),
		SpecialCloseTime:  timeToString(e.SpecialCloseTime),
		Reason:            e.Reason,
		IsRecurringYearly: e.IsRecurringYearly,
		IsActive:          e.IsActive,
		CreatedAt:         e.CreatedAt,
	}
}

// FromDomainExceptionList конвертирует список исключений в response
func FromDomainExceptionList(workshopID int64, exceptions []*domain.ScheduleException) *ExceptionListResponse {
	items := make([]ExceptionResponse, len(exceptions))
	for i, e := range exceptions {
		items[i] = *FromDomainException(e)
	}
	return &ExceptionListResponse{WorkshopID: workshopID, Exceptions: items}
}

func timeToString(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
