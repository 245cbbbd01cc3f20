package catalog

import (
	"context"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
