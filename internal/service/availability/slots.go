package availability

import (
	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// GenerateSlots возвращает упорядоченные времена начала слотов на день.
//
// Слоты идут от открытия с шагом SlotDurationMinutes. Если очередной шаг попадает
// в перерыв [breakStart, breakEnd), генерация продолжается с конца перерыва.
// Слот включается, только если start + slotDuration <= closeTime.
//
// Пример: 08:00-18:00, перерыв 12:00-13:00, шаг 60 →
// 08:00, 09:00, 10:00, 11:00, 13:00, 14:00, 15:00, 16:00, 17:00
func GenerateSlots(day domain.DaySchedule) []types.TimeString {
	slots := make([]types.TimeString, 0)
	if !day.IsOpen || day.SlotDurationMinutes <= 0 {
		return slots
	}

	open := day.OpenTime.Minutes()
	closeAt := day.CloseTime.Minutes()
	if open < 0 || closeAt < 0 {
		return slots
	}

	breakStart, breakEnd := -1, -1
	if day.HasBreak() {
		breakStart = day.BreakStartTime.Minutes()
		breakEnd = day.BreakEndTime.Minutes()
	}

	for current := open; current+day.SlotDurationMinutes <= closeAt; {
		if breakStart >= 0 && current >= breakStart && current < breakEnd {
			current = breakEnd
			continue
		}

		slot, err := types.NewTimeStringFromMinutes(current)
		if err != nil {
			break
		}
		slots = append(slots, slot)
		current += day.SlotDurationMinutes
	}

	return slots
}

// hasConflict проверяет пересечение [start, start+duration) с занятыми интервалами.
// Запись с excludeID (переносимая) не учитывается.
//
// Граничащие интервалы не пересекаются:
// - 09:00-10:00 и 10:00-11:00 → НЕТ пересечения
// - 09:00-10:00 и 09:30-10:30 → ЕСТЬ пересечение
func hasConflict(appointments []*domain.Appointment, start types.TimeString, duration int, excludeID *int64) bool {
	for _, a := range appointments {
		if !a.Occupies() {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.Overlaps(start, duration) {
			return true
		}
	}
	return false
}

// isAvailable шаги 1-4 проверки доступности на уже загруженных данных
func isAvailable(day domain.DaySchedule, appointments []*domain.Appointment, start types.TimeString, duration int, excludeID *int64) bool {
	// 1. Мастерская закрыта
	if !day.IsOpen {
		return false
	}
	// 2. Интервал выходит за часы работы
	if !day.Contains(start, duration) {
		return false
	}
	// 3-4. Пересечение с существующими записями
	return !hasConflict(appointments, start, duration, excludeID)
}
