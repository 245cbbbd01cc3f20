package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/haderrenteria13/ronald-barber/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики connection pool
const DefaultStatsInterval = 15 * time.Second

// DB обертка над *sql.DB, которая пишет длительность запросов и статистику пула в prometheus.
// С nil метриками работает как обычный *sql.DB.
type DB struct {
	*sql.DB
	metrics *metrics.Metrics
	name    string
}

// Wrap оборачивает *sql.DB без метрик
func Wrap(db *sql.DB) *DB {
	return &DB{DB: db}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, name string, stopCh <-chan struct{}) *DB {
	wrapped := &DB{DB: db, metrics: m, name: name}
	go wrapped.collectStats(DefaultStatsInterval, stopCh)
	return wrapped
}

// ExecContext выполняет запрос с записью метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.DB.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("exec", err, time.Since(start))
	return res, err
}

// QueryContext выполняет запрос с записью метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.DB.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query", err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос с записью метрик (ошибка становится известна только при Scan)
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.DB.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery("query_row", nil, time.Since(start))
	return row
}

// BeginTx начинает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (d *DB) collectStats(interval time.Duration, stopCh <-chan struct{}) {
	if d.metrics == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordStats()
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

func (d *DB) recordStats() {
	stats := d.DB.Stats()
	d.metrics.DBOpenConnections.WithLabelValues(d.name).Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.WithLabelValues(d.name).Set(float64(stats.InUse))
	d.metrics.DBIdleConnections.WithLabelValues(d.name).Set(float64(stats.Idle))
	d.metrics.DBWaitCount.WithLabelValues(d.name).Set(float64(stats.WaitCount))
	d.metrics.DBWaitDurationTotal.WithLabelValues(d.name).Set(stats.WaitDuration.Seconds())
}
