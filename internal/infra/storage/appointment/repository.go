package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/internal/infra/storage"
	"github.com/haderrenteria13/ronald-barber/pkg/dbmetrics"
	"github.com/haderrenteria13/ronald-barber/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"a.id",
	"a.service_id",
	"a.client_name",
	"a.client_phone",
	"a.notes",
	"a.start_time",
	"a.end_time",
	"a.status",
	"COALESCE(s.name, '')",
	"a.cancelled_at",
	"a.created_at",
	"a.updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подтвержденную запись.
// Пересечение с другой подтвержденной записью отклоняется базой (EXCLUDE USING gist)
// и возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"service_id",
			"client_name",
			"client_phone",
			"notes",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			appt.ServiceID,
			appt.ClientName,
			appt.ClientPhone,
			appt.Notes,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &createdAt, &updatedAt)
	switch {
	case storage.IsExclusionViolation(err):
		return nil, ErrSlotNotAvailable
	case storage.IsForeignKeyViolation(err):
		return nil, ErrServiceNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectAppointments().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// GetByFilter возвращает записи, начинающиеся в [From, To), упорядоченные по времени начала.
// Внутри транзакции выборка одного дня блокируется (FOR UPDATE), чтобы параллельные
// бронирования этого дня выполнялись последовательно.
func (r *Repository) GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildFilterQuery(filter, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appts := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFilter - scan row: %w", ErrScanRow, err)
		}
		appts = append(appts, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %w", ErrScanRow, err)
	}

	return appts, nil
}

// Cancel переводит подтвержденную запись в статус cancelled
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Ничего не обновили: записи нет или она уже отменена
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrCannotCancel
}

func selectAppointments() squirrel.SelectBuilder {
	return psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		LeftJoin("services s ON s.id = a.service_id")
}

func buildFilterQuery(filter domain.AppointmentsFilter, inTx bool) (string, []interface{}, error) {
	builder := selectAppointments()

	switch {
	case filter.From != nil && filter.Overlapping:
		builder = builder.Where(squirrel.Gt{"a.end_time": *filter.From})
	case filter.From != nil:
		builder = builder.Where(squirrel.GtOrEq{"a.start_time": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"a.start_time": *filter.To})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	}

	builder = builder.OrderBy("a.start_time ASC", "a.id ASC")

	if inTx && filter.IsSingleDay() {
		builder = builder.Suffix("FOR UPDATE OF a")
	}

	return builder.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.ServiceID,
		&appt.ClientName,
		&appt.ClientPhone,
		&appt.Notes,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.ServiceName,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		appt.CancelledAt = &cancelledAt.Time
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}
