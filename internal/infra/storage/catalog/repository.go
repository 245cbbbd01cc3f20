package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/pkg/dbmetrics"
	"github.com/haderrenteria13/ronald-barber/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"price",
	"duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все услуги, от дешевых к дорогим
func (r *Repository) List(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("price ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var (
		service              domain.Service
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.DurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
