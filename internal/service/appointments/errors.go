package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments.service: appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments.service: invalid input")

	// ErrInvalidTransition возвращается, если переход статуса запрещён
	ErrInvalidTransition = errors.New("appointments.service: invalid status transition")

	// ErrSlotNotAvailable возвращается, если интервал записи уже занят
	ErrSlotNotAvailable = errors.New("The selected time slot is not available")

	// ErrReparationOrderAlreadyLinked возвращается, если заказ-наряд уже создан
	ErrReparationOrderAlreadyLinked = errors.New("appointments.service: reparation order already linked")

	// ErrReparationOrderRejected возвращается, если сервис заказ-нарядов отклонил запрос
	ErrReparationOrderRejected = errors.New("appointments.service: reparation order rejected")

	// ErrReparationServiceUnavailable возвращается при недоступности сервиса заказ-нарядов
	ErrReparationServiceUnavailable = errors.New("appointments.service: reparation service unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments.service: internal error")
)
