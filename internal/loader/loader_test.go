package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/metrics"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/stretchr/testify/suite"
)

type record struct {
	time                           time.Time
	symbol                         string
	open, high, low, close, volume float64
}

type LoaderTestSuite struct {
	suite.Suite
	tmpDir  string
	records []record
	metrics *metrics.Metrics
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderTestSuite))
}

func (suite *LoaderTestSuite) SetupTest() {
	suite.tmpDir = suite.T().TempDir()
	suite.metrics = metrics.NewMetrics()
	suite.records = nil

	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		for _, symbol := range []string{"AAPL", "MSFT"} {
			offset := 0.0
			if symbol == "MSFT" {
				offset = 200
			}

			suite.records = append(suite.records, record{
				time:   base.Add(time.Duration(i) * 5 * time.Minute),
				symbol: symbol,
				open:   100 + offset + float64(i),
				high:   101 + offset + float64(i),
				low:    99 + offset + float64(i),
				close:  100.5 + offset + float64(i),
				volume: 1000 + float64(i*100),
			})
		}
	}
}

func (suite *LoaderTestSuite) open(source string) Loader {
	l, err := New(source, WithLogger(logger.NewNopLogger()), WithMetrics(suite.metrics))
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { _ = l.Close() })

	return l
}

func (suite *LoaderTestSuite) writeDuckDB(path string, export string) {
	db, err := sql.Open("duckdb", path)
	suite.Require().NoError(err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	suite.Require().NoError(err)

	for _, r := range suite.records {
		_, err = db.Exec(`INSERT INTO market_data VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.time, r.symbol, r.open, r.high, r.low, r.close, r.volume)
		suite.Require().NoError(err)
	}

	if export != "" {
		_, err = db.Exec(export)
		suite.Require().NoError(err)
	}
}

func (suite *LoaderTestSuite) writeParquet() string {
	path := filepath.Join(suite.tmpDir, "bars.parquet")
	suite.writeDuckDB("", fmt.Sprintf(`COPY market_data TO '%s' (FORMAT PARQUET)`, path))

	return path
}

func (suite *LoaderTestSuite) writeCSV() string {
	path := filepath.Join(suite.tmpDir, "bars.csv")

	var b strings.Builder
	b.WriteString("time,symbol,open,high,low,close,volume\n")
	for _, r := range suite.records {
		fmt.Fprintf(&b, "%s,%s,%g,%g,%g,%g,%g\n",
			r.time.Format("2006-01-02 15:04:05"), r.symbol, r.open, r.high, r.low, r.close, r.volume)
	}

	suite.Require().NoError(os.WriteFile(path, []byte(b.String()), 0o600))

	return path
}

func (suite *LoaderTestSuite) writeSQLite() string {
	path := filepath.Join(suite.tmpDir, "bars.db")

	db, err := sql.Open("sqlite3", path)
	suite.Require().NoError(err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol TEXT,
			open REAL,
			high REAL,
			low REAL,
			close REAL,
			volume REAL
		)
	`)
	suite.Require().NoError(err)

	for _, r := range suite.records {
		_, err = db.Exec(`INSERT INTO market_data VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.time, r.symbol, r.open, r.high, r.low, r.close, r.volume)
		suite.Require().NoError(err)
	}

	return path
}

func (suite *LoaderTestSuite) query() Query {
	return Query{
		Name:        "AAPL",
		Factory:     num.DecimalNumFactory(num.DefaultPrecision),
		Period:      optional.None[time.Duration](),
		Symbol:      optional.Some("AAPL"),
		Start:       optional.None[time.Time](),
		End:         optional.None[time.Time](),
		Last:        0,
		MaxBarCount: 0,
	}
}

func (suite *LoaderTestSuite) TestLoadParquet() {
	l := suite.open(suite.writeParquet())
	suite.Equal("duckdb", l.Backend())

	s, err := l.Load(context.Background(), suite.query())
	suite.Require().NoError(err)

	suite.Equal("AAPL", s.Name())
	suite.Equal(10, s.BarCount())

	first, err := s.Bar(0)
	suite.Require().NoError(err)
	suite.Equal(5*time.Minute, first.TimePeriod)
	suite.Equal(suite.records[0].time, first.BeginTime)
	suite.Equal(suite.records[0].time.Add(5*time.Minute), first.EndTime)
	suite.Equal("100.5", first.Close.String())
	suite.Equal("1000", first.Volume.String())
	suite.Equal("100500", first.Amount.String())

	last, err := s.Bar(s.EndIndex())
	suite.Require().NoError(err)
	suite.Equal("109.5", last.Close.String())

	suite.Equal(10.0, testutil.ToFloat64(suite.metrics.BarsLoaded.WithLabelValues("duckdb")))
}

func (suite *LoaderTestSuite) TestLoadCSV() {
	l := suite.open(suite.writeCSV())

	q := suite.query()
	q.Symbol = optional.Some("MSFT")
	q.Factory = num.DoubleNumFactory()

	s, err := l.Load(context.Background(), q)
	suite.Require().NoError(err)
	suite.Equal(10, s.BarCount())

	first, err := s.Bar(0)
	suite.Require().NoError(err)
	suite.Equal(300.5, first.Close.Float64())
	suite.Equal(num.FamilyDouble, first.Close.Family())
}

func (suite *LoaderTestSuite) TestLoadDuckDBFile() {
	path := filepath.Join(suite.tmpDir, "bars.duckdb")
	suite.writeDuckDB(path, "")

	l := suite.open("duckdb://" + path)

	q := suite.query()
	q.Period = optional.Some(time.Minute)

	s, err := l.Load(context.Background(), q)
	suite.Require().NoError(err)
	suite.Equal(10, s.BarCount())

	first, err := s.Bar(0)
	suite.Require().NoError(err)
	suite.Equal(time.Minute, first.TimePeriod)
}

func (suite *LoaderTestSuite) TestLoadSQLite() {
	l := suite.open("sqlite://" + suite.writeSQLite())
	suite.Equal("sqlite", l.Backend())

	q := suite.query()
	q.Start = optional.Some(suite.records[0].time.Add(10 * time.Minute))
	q.End = optional.Some(suite.records[0].time.Add(30 * time.Minute))

	s, err := l.Load(context.Background(), q)
	suite.Require().NoError(err)
	suite.Equal(5, s.BarCount())

	first, err := s.Bar(0)
	suite.Require().NoError(err)
	suite.Equal("102.5", first.Close.String())
}

func (suite *LoaderTestSuite) TestTimeRange() {
	l := suite.open(suite.writeParquet())

	q := suite.query()
	q.Start = optional.Some(suite.records[0].time.Add(15 * time.Minute))
	q.End = optional.Some(suite.records[0].time.Add(25 * time.Minute))

	s, err := l.Load(context.Background(), q)
	suite.Require().NoError(err)
	suite.Equal(3, s.BarCount())

	first, err := s.Bar(0)
	suite.Require().NoError(err)
	suite.Equal("103.5", first.Close.String())
}

func (suite *LoaderTestSuite) TestLastAndMaxBarCount() {
	l := suite.open(suite.writeParquet())

	q := suite.query()
	q.Last = 4
	q.MaxBarCount = 3

	s, err := l.Load(context.Background(), q)
	suite.Require().NoError(err)
	suite.Equal(3, s.BarCount())
	suite.Equal(1, s.BeginIndex())
	suite.Equal(3, s.EndIndex())

	last, err := s.Bar(s.EndIndex())
	suite.Require().NoError(err)
	suite.Equal("109.5", last.Close.String())

	first, err := s.Bar(s.BeginIndex())
	suite.Require().NoError(err)
	suite.Equal("107.5", first.Close.String())
}

func (suite *LoaderTestSuite) TestNoBars() {
	l := suite.open(suite.writeParquet())

	q := suite.query()
	q.Symbol = optional.Some("TSLA")

	_, err := l.Load(context.Background(), q)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.LoadErrors.WithLabelValues("duckdb")))
}

func (suite *LoaderTestSuite) TestMissingFactory() {
	l := suite.open(suite.writeParquet())

	q := suite.query()
	q.Factory = nil

	_, err := l.Load(context.Background(), q)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *LoaderTestSuite) TestMissingTable() {
	l, err := New("sqlite://"+filepath.Join(suite.tmpDir, "empty.db"), WithTable("candles"))
	suite.Require().NoError(err)
	defer l.Close()

	_, err = l.Load(context.Background(), suite.query())
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *LoaderTestSuite) TestUnreadableFile() {
	_, err := New(filepath.Join(suite.tmpDir, "missing.parquet"))
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}

func (suite *LoaderTestSuite) TestUnsupportedSource() {
	_, err := New("mysql://localhost/bars")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	_, err = New("")
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *LoaderTestSuite) TestPostgresStatement() {
	l, err := New("postgres://ta@localhost:5432/bars?sslmode=disable", WithTable("candles"))
	suite.Require().NoError(err)
	defer l.Close()

	suite.Equal("postgres", l.Backend())

	q := suite.query()
	q.Start = optional.Some(suite.records[0].time)
	q.Last = 50

	query, args, err := l.(*sqlLoader).statement(q)
	suite.Require().NoError(err)
	suite.Equal("SELECT time, open, high, low, close, volume FROM candles WHERE symbol = $1 AND time >= $2 ORDER BY time DESC LIMIT 50", query)
	suite.Equal([]any{"AAPL", suite.records[0].time}, args)
}

func (suite *LoaderTestSuite) TestSQLitePlaceholders() {
	l := suite.open("sqlite://" + suite.writeSQLite())

	q := suite.query()
	q.End = optional.Some(suite.records[0].time)

	query, _, err := l.(*sqlLoader).statement(q)
	suite.Require().NoError(err)
	suite.Equal("SELECT time, open, high, low, close, volume FROM market_data WHERE symbol = ? AND time <= ? ORDER BY time ASC", query)
}
