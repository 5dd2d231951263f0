package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID            int64             // ID пользователя, создающего запись
	AppointmentNumber *string           // Номер записи (генерируется, если не задан)
	ClientID          int64             // ID клиента
	WorkshopID        int64             // ID мастерской
	EmployeeID        *int64            // Назначенный сотрудник (опционально)
	ContactID         *int64            // Контакт клиента (опционально)
	AppointmentDate   time.Time         // Дата записи (без времени)
	StartTime         types.TimeString  // Время начала, например "10:00"
	EndTime           *types.TimeString // Время окончания (вычисляется, если не задано)
	DurationMinutes   *int              // Длительность (по умолчанию стандартная для типа услуги)
	ServiceType       domain.ServiceType
	Priority          *domain.Priority
	Title             string
	Description       *string
	Notes             *string
	EstimatedCost     *float64
	Vehicle           domain.VehicleInfo
}
