package reparationorders

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("reparationorders client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("reparationorders client: invalid response")

	// ErrRejected возвращается, когда сервис отклонил запрос как некорректный (4xx)
	ErrRejected = errors.New("reparationorders client: request rejected")

	// ErrServiceUnavailable возвращается при недоступности сервиса или открытом circuit breaker
	ErrServiceUnavailable = errors.New("reparationorders client: service unavailable")
)
