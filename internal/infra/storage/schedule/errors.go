package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание на день не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrExceptionNotFound возвращается, когда исключение расписания не найдено
	ErrExceptionNotFound = errors.New("schedule.repository: schedule exception not found")

	// ErrDuplicateDay возвращается при попытке создать второе расписание на тот же день недели
	ErrDuplicateDay = errors.New("schedule.repository: schedule for this day already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
