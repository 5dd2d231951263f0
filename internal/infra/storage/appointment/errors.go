package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается при нарушении уникального индекса активного слота
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrDuplicateNumber возвращается при коллизии номера записи
	ErrDuplicateNumber = errors.New("appointment.repository: duplicate appointment number")

	// ErrReparationOrderAlreadyLinked возвращается, если к записи уже привязан заказ-наряд
	ErrReparationOrderAlreadyLinked = errors.New("appointment.repository: reparation order already linked")

	// ErrSerialization возвращается при конфликте сериализуемой транзакции
	ErrSerialization = errors.New("appointment.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
