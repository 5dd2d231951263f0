package schedules

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда день недели не настроен
	ErrScheduleNotFound = errors.New("schedules.service: schedule not found")

	// ErrExceptionNotFound возвращается, когда исключение не найдено
	ErrExceptionNotFound = errors.New("schedules.service: schedule exception not found")

	// ErrDayAlreadyExists возвращается при повторном создании дня недели
	ErrDayAlreadyExists = errors.New("schedules.service: day already configured")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedules.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedules.service: internal error")
)
