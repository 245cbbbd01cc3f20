package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeStringLayout   = "15:04"
	timeStringLayoutDB = "15:04:05"
)

// ErrInvalidTimeString возвращается, когда строка не соответствует формату HH:MM
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM" (без даты и часового пояса).
// Значение может быть невалидным (например, пришло из БД или из формы), поэтому
// все операции, которым нужно число минут, возвращают ошибку.
type TimeString string

// NewTimeStringFromString создает TimeString из строки с проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeString создает TimeString из time.Time (берутся только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// Validate проверяет, что строка имеет формат HH:MM и задает реальное время суток
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	s := string(t)
	if len(s) != len(timeStringLayout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	parsed, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// On возвращает момент времени t в календарный день date (в часовом поясе date)
func (t TimeString) On(date time.Time) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner.
// Postgres отдает колонку TIME как "HH:MM:SS" (или как time.Time через lib/pq)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	s = strings.TrimSpace(s)
	if parsed, err := time.Parse(timeStringLayoutDB, s); err == nil {
		*t = NewTimeString(parsed)
		return nil
	}
	// Невалидное значение сохраняем как есть: решение о нем принимает вызывающий код
	*t = TimeString(s)
	return nil
}
