package loader

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/metrics"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"go.uber.org/zap"
)

// sqlLoader queries a database/sql connection. Backends differ only in the
// driver and the placeholder format.
type sqlLoader struct {
	db      *sql.DB
	sq      squirrel.StatementBuilderType
	backend string
	table   string
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func newSQLLoader(db *sql.DB, backend string, placeholder squirrel.PlaceholderFormat, o options) *sqlLoader {
	return &sqlLoader{
		db:      db,
		sq:      squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		backend: backend,
		table:   o.table,
		logger:  o.logger.Named("loader." + backend),
		metrics: o.metrics,
	}
}

// row is one scanned record. Prices are scanned as text so decimal series
// keep the stored digits.
type row struct {
	time                           time.Time
	open, high, low, close, volume string
}

func (l *sqlLoader) Backend() string {
	return l.backend
}

func (l *sqlLoader) Close() error {
	return l.db.Close()
}

// Load implements Loader.
func (l *sqlLoader) Load(ctx context.Context, q Query) (*series.BarSeries, error) {
	started := time.Now()
	s, err := l.load(ctx, q)

	count := 0
	if s != nil {
		count = s.BarCount()
	}

	l.metrics.ObserveLoad(l.backend, count, time.Since(started), err)

	return s, err
}

func (l *sqlLoader) load(ctx context.Context, q Query) (*series.BarSeries, error) {
	if q.Factory == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "num factory is required")
	}

	query, args, err := l.statement(q)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	l.logger.Debug("Loading bars", zap.String("query", query), zap.Int("args", len(args)))

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query %s", l.table)
	}
	defer rows.Close()

	var records []row

	for rows.Next() {
		var r row
		if err := rows.Scan(&r.time, &r.open, &r.high, &r.low, &r.close, &r.volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read rows", err)
	}

	if len(records) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no bars found in %s", l.table)
	}

	if q.Last > 0 {
		slices.Reverse(records)
	}

	bars, err := toBars(q, records)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Loaded bars", zap.Int("count", len(bars)), zap.Time("first", bars[0].BeginTime))

	return series.NewBuilder().
		WithName(q.Name).
		WithNumFactory(q.Factory).
		WithMaxBarCount(q.MaxBarCount).
		WithLogger(l.logger).
		WithBars(bars...).
		Build()
}

// statement renders q as SQL for this backend.
func (l *sqlLoader) statement(q Query) (string, []any, error) {
	builder := l.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From(l.table)

	if q.Symbol.IsSome() {
		builder = builder.Where(squirrel.Eq{"symbol": q.Symbol.Unwrap()})
	}

	if q.Start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": q.Start.Unwrap()})
	}

	if q.End.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"time": q.End.Unwrap()})
	}

	if q.Last > 0 {
		builder = builder.OrderBy("time DESC").Limit(uint64(q.Last))
	} else {
		builder = builder.OrderBy("time ASC")
	}

	return builder.ToSql()
}

func toBars(q Query, records []row) ([]series.Bar, error) {
	period := inferPeriod(records)
	if q.Period.IsSome() && q.Period.Unwrap() > 0 {
		period = q.Period.Unwrap()
	}

	bars := make([]series.Bar, 0, len(records))

	for _, r := range records {
		values, err := parse(q.Factory, r.open, r.high, r.low, r.close, r.volume)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "invalid bar at %s", r.time.Format(time.RFC3339))
		}

		open, high, low, closePrice, volume := values[0], values[1], values[2], values[3], values[4]
		begin := r.time.UTC()
		bars = append(bars, series.NewBar(period, begin.Add(period), open, high, low, closePrice, volume, closePrice.Multiply(volume)))
	}

	return bars, nil
}

func inferPeriod(records []row) time.Duration {
	if len(records) < 2 {
		return DefaultPeriod
	}

	if period := records[1].time.Sub(records[0].time); period > 0 {
		return period
	}

	return DefaultPeriod
}

func parse(f num.NumFactory, fields ...string) ([]num.Num, error) {
	values := make([]num.Num, len(fields))

	for i, field := range fields {
		v, err := f.NumOfString(field)
		if err != nil {
			return nil, err
		}

		values[i] = v
	}

	return values, nil
}
