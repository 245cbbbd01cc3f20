package health

import "context"

// Check проверка зависимости (БД, Redis). nil - зависимость доступна
type Check func(ctx context.Context) error

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
