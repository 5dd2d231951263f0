package reschedule_appointment

import (
	"time"

	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64            // ID записи
	UserID        int64            // ID пользователя, выполняющего перенос
	NewDate       time.Time        // Новая дата (без времени)
	NewStartTime  types.TimeString // Новое время начала
}
