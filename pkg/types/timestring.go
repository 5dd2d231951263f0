package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time string out of day range")
)

// timePattern принимает часы без ведущего нуля ("9:00"), при сохранении время нормализуется до "09:00"
var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TimeString время суток в формате "HH:MM" (24 часа)
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString валидирует и нормализует строку времени
func NewTimeStringFromString(s string) (TimeString, error) {
	s = strings.TrimSpace(s)
	if !timePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	parts := strings.SplitN(s, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	return NewTimeStringFromMinutes(hours*minutesPerHour + minutes)
}

// NewTimeStringFromMinutes создает TimeString из количества минут от начала суток
func NewTimeStringFromMinutes(total int) (TimeString, error) {
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, total)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/minutesPerHour, total%minutesPerHour)), nil
}

// MustTimeString паникует на невалидной строке, используется для констант и в тестах
func MustTimeString(s string) TimeString {
	t, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	if !timePattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от начала суток, -1 для невалидного значения
func (t TimeString) Minutes() int {
	if err := t.Validate(); err != nil {
		return -1
	}
	parts := strings.SplitN(string(t), ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*minutesPerHour + minutes
}

// AddMinutes возвращает время, сдвинутое на указанное количество минут
// Переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current := t.Minutes()
	if current < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Equal сравнивает время без учета форматирования ("9:00" == "09:00")
func (t TimeString) Equal(other TimeString) bool {
	return t.Minutes() == other.Minutes()
}

// MinutesUntil возвращает количество минут от t до other (может быть отрицательным)
func (t TimeString) MinutesUntil(other TimeString) int {
	return other.Minutes() - t.Minutes()
}

// OnDate возвращает момент времени на указанную дату в её часовом поясе
func (t TimeString) OnDate(date time.Time) time.Time {
	m := t.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/minutesPerHour, m%minutesPerHour, 0, 0, date.Location())
}

// Scan реализует sql.Scanner
// Postgres отдает TIME как "HH:MM:SS", секунды отбрасываются
func (t *TimeString) Scan(src interface{}) error {
	var raw string

	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}

	if len(raw) > 5 && strings.Count(raw, ":") == 2 {
		raw = raw[:strings.LastIndex(raw, ":")]
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
