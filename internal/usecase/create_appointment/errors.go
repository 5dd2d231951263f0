package create_appointment

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда выбранный интервал занят или вне рабочих часов
	ErrSlotNotAvailable = errors.New("The selected time slot is not available")

	// ErrNumberGenerationExhausted возвращается, когда не удалось подобрать свободный номер записи
	ErrNumberGenerationExhausted = errors.New("Unable to generate unique appointment number")

	// ErrNumberTaken возвращается, когда переданный номер записи уже используется
	ErrNumberTaken = errors.New("create_appointment: appointment number already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
