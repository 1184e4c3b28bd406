// Package loader builds bar series from tabular market data.
//
// Every backend reads the same columns from a market data table:
//
//	time TIMESTAMP, open, high, low, close, volume  (numeric)
//
// and optionally a symbol column when the query filters by symbol. The time
// column holds the bar begin time.
package loader

import (
	"context"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/metrics"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// DefaultTable is the table or view queried when no table is configured.
const DefaultTable = "market_data"

// DefaultPeriod is the bar period used when it can not be inferred from the data.
const DefaultPeriod = time.Minute

// Loader reads bars into a new BarSeries.
type Loader interface {
	// Load runs q and returns the bars in ascending time order.
	Load(ctx context.Context, q Query) (*series.BarSeries, error)
	// Backend names the storage engine, e.g. "duckdb".
	Backend() string
	Close() error
}

// Query selects the bars of one series.
type Query struct {
	Name    string
	Factory num.NumFactory
	// Period is inferred from the first two rows when unset.
	Period optional.Option[time.Duration]
	Symbol optional.Option[string]
	Start  optional.Option[time.Time]
	End    optional.Option[time.Time]
	// Last keeps only the most recent rows when positive.
	Last        int
	MaxBarCount int
}

type options struct {
	table   string
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// Option configures a loader created by New.
type Option func(*options)

// WithTable overrides the queried table for database backends.
func WithTable(table string) Option {
	return func(o *options) {
		o.table = table
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records load counts and durations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// New opens a loader for source. Supported sources:
//
//	bars.parquet, bars.csv       read in place through an in-memory DuckDB
//	duckdb:///path/to/file.db    a DuckDB database file
//	sqlite:///path/to/file.db    a SQLite database file
//	postgres://user@host/db      a PostgreSQL database
func New(source string, opts ...Option) (Loader, error) {
	o := options{
		table:   DefaultTable,
		logger:  logger.NewNopLogger(),
		metrics: nil,
	}
	for _, opt := range opts {
		opt(&o)
	}

	lower := strings.ToLower(source)

	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return newFileLoader(source, "read_parquet", o)
	case strings.HasSuffix(lower, ".csv"):
		return newFileLoader(source, "read_csv_auto", o)
	case strings.HasPrefix(lower, "duckdb://"):
		return newDuckDBLoader(strings.TrimPrefix(source, "duckdb://"), o)
	case strings.HasPrefix(lower, "sqlite://"):
		return newSQLiteLoader(strings.TrimPrefix(source, "sqlite://"), o)
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return newPostgresLoader(source, o)
	case source == "":
		return nil, errors.New(errors.ErrCodeMissingParameter, "data source is required")
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported data source %q", source)
	}
}
