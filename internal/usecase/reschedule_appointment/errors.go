package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrInvalidTransition возвращается, если запись нельзя перенести в текущем статусе
	ErrInvalidTransition = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrNewSlotNotAvailable возвращается, когда новый интервал занят или вне рабочих часов
	ErrNewSlotNotAvailable = errors.New("The new time slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
