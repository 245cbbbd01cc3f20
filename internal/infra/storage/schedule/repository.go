package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/haderrenteria13/ronald-barber/internal/domain"
	"github.com/haderrenteria13/ronald-barber/internal/infra/storage"
	"github.com/haderrenteria13/ronald-barber/pkg/dbmetrics"
	"github.com/haderrenteria13/ronald-barber/pkg/psqlbuilder"
	"github.com/haderrenteria13/ronald-barber/pkg/types"
)

var ruleColumns = []string{
	"id",
	"day_of_week",
	"start_time",
	"end_time",
	"break_start",
	"break_end",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий рабочих часов и заблокированных дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRuleByWeekday возвращает правило для дня недели.
// Если правило не сохранено, возвращает ErrRuleNotFound.
func (r *Repository) GetRuleByWeekday(ctx context.Context, day time.Weekday) (*domain.WeeklyHourRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("business_hours").
		Where(squirrel.Eq{"day_of_week": int(day)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleByWeekday - scan rule: %w", ErrScanRow, err)
	}

	return rule, nil
}

// ListRules возвращает все сохраненные правила, упорядоченные по дню недели
func (r *Repository) ListRules(ctx context.Context) ([]*domain.WeeklyHourRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("business_hours").
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRules - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.WeeklyHourRule, 0, domain.DaysPerWeek)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRules - scan rule: %w", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRules - rows error: %w", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceRules удаляет все правила и сохраняет переданные.
// Должен вызываться внутри транзакции (txManager.Do), иначе неделя может остаться пустой.
func (r *Repository) ReplaceRules(ctx context.Context, rules []*domain.WeeklyHourRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("business_hours").ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceRules - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceRules - execute delete: %w", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("business_hours").
		Columns("day_of_week", "start_time", "end_time", "break_start", "break_end", "is_active")
	for _, rule := range rules {
		insert = insert.Values(
			int(rule.DayOfWeek),
			rule.StartTime,
			rule.EndTime,
			nullableTime(rule.BreakStart),
			nullableTime(rule.BreakEnd),
			rule.IsActive,
		)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceRules - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceRules - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// IsDateBlocked проверяет, закрыта ли дата для записи
func (r *Repository) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("blocked_dates").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - build select query: %v", ErrBuildQuery, err)
	}

	var blocked bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&blocked); err != nil {
		return false, fmt.Errorf("%w: IsDateBlocked - scan: %w", ErrScanRow, err)
	}

	return blocked, nil
}

// ListBlockedDates возвращает заблокированные даты начиная с from (включительно)
func (r *Repository) ListBlockedDates(ctx context.Context, from time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "reason", "created_at").
		From("blocked_dates").
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		var (
			blocked domain.BlockedDate
			date    time.Time
		)
		if err := rows.Scan(&blocked.ID, &date, &blocked.Reason, &blocked.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %w", ErrScanRow, err)
		}
		blocked.Date = calendarDate(date, from.Location())
		dates = append(dates, &blocked)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %w", ErrScanRow, err)
	}

	return dates, nil
}

// CreateBlockedDate блокирует дату. Повторная блокировка возвращает ErrDuplicateBlockedDate.
func (r *Repository) CreateBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("date", "reason").
		Values(blocked.Date.Format(domain.DateFormat), blocked.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&blocked.ID, &blocked.CreatedAt)
	if storage.IsUniqueViolation(err) {
		return nil, ErrDuplicateBlockedDate
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %w", ErrExecQuery, err)
	}

	return blocked, nil
}

// DeleteBlockedDate снимает блокировку даты
func (r *Repository) DeleteBlockedDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.WeeklyHourRule, error) {
	var (
		rule                 domain.WeeklyHourRule
		day                  int
		breakStart, breakEnd types.TimeString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&rule.ID,
		&day,
		&rule.StartTime,
		&rule.EndTime,
		&breakStart,
		&breakEnd,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.DayOfWeek = time.Weekday(day)
	if !breakStart.IsZero() {
		rule.BreakStart = &breakStart
	}
	if !breakEnd.IsZero() {
		rule.BreakEnd = &breakEnd
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func nullableTime(t *types.TimeString) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return *t
}

// calendarDate переносит дату колонки DATE (lib/pq отдает ее в UTC) в часовой пояс loc
func calendarDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
