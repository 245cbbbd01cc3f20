package storage

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeExclusionViolation  = "23P01"
)

// IsExclusionViolation возвращает true для нарушения EXCLUDE ограничения (пересечение записей)
func IsExclusionViolation(err error) bool {
	return hasCode(err, codeExclusionViolation)
}

// IsUniqueViolation возвращает true для нарушения UNIQUE ограничения
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsForeignKeyViolation возвращает true для нарушения внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
