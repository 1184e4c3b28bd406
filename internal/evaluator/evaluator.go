// Package evaluator runs a configured set of indicators and criteria over a
// loaded bar series and collects the results into a Report.
package evaluator

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-ta/internal/config"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/metrics"
	"github.com/rxtech-lab/argo-ta/pkg/criteria"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/rxtech-lab/argo-ta/pkg/trading"
	"go.uber.org/zap"
)

// Report is the outcome of one evaluation.
type Report struct {
	Series     string   `yaml:"series"`
	Bars       int      `yaml:"bars"`
	BeginIndex int      `yaml:"begin_index"`
	EndIndex   int      `yaml:"end_index"`
	Columns    []Column `yaml:"columns"`
	Rows       []Row    `yaml:"rows"`
	Positions  int      `yaml:"positions"`
	Scores     []Score  `yaml:"scores,omitempty"`
}

// Column describes one configured indicator.
type Column struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	UnstableBars int    `yaml:"unstable_bars"`
}

// Row holds the indicator values at one bar, in column order.
type Row struct {
	Index  int       `yaml:"index"`
	Time   time.Time `yaml:"time"`
	Close  string    `yaml:"close"`
	Values []Value   `yaml:"values"`
}

type Value struct {
	Value string `yaml:"value"`
	// Stable is false while the indicator is still warming up.
	Stable bool `yaml:"stable"`
}

// Score is the value of one analysis criterion over the configured trades.
type Score struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Evaluator builds indicators through a registry.
type Evaluator struct {
	registry indicator.Registry
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// NewEvaluator creates an evaluator. A nil logger discards output and nil metrics are skipped.
func NewEvaluator(registry indicator.Registry, l *logger.Logger, m *metrics.Metrics) *Evaluator {
	if l == nil {
		l = logger.NewNopLogger()
	}

	return &Evaluator{
		registry: registry,
		logger:   l.Named("evaluator"),
		metrics:  m,
	}
}

// Evaluate computes every configured indicator over the trailing c.Last bars
// of s and scores the configured trades.
func (e *Evaluator) Evaluate(ctx context.Context, s *series.BarSeries, c *config.Config) (*Report, error) {
	started := time.Now()
	defer func() { e.metrics.ObserveEvaluationDuration(time.Since(started)) }()

	indicators, err := e.Build(s, c.Indicators)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Series:     s.Name(),
		Bars:       s.BarCount(),
		BeginIndex: s.BeginIndex(),
		EndIndex:   s.EndIndex(),
		Columns:    make([]Column, len(indicators)),
		Rows:       nil,
		Positions:  0,
		Scores:     nil,
	}

	for i, ind := range indicators {
		report.Columns[i] = Column{
			Name:         c.Indicators[i].Name,
			Type:         c.Indicators[i].Type,
			UnstableBars: ind.UnstableBars(),
		}
	}

	if !s.IsEmpty() {
		from := max(s.BeginIndex(), s.EndIndex()-c.Last+1)

		for index := from; index <= s.EndIndex(); index++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			row, err := e.row(s, indicators, index)
			if err != nil {
				return nil, err
			}

			report.Rows = append(report.Rows, row)
		}

		for i, ind := range c.Indicators {
			e.metrics.ObserveEvaluation(ind.Type, len(report.Rows))
			e.logger.Debug("Evaluated indicator",
				zap.String("name", ind.Name),
				zap.String("type", ind.Type),
				zap.Int("unstable_bars", report.Columns[i].UnstableBars))
		}
	}

	if len(c.Trades) > 0 || len(c.Criteria) > 0 {
		record, err := Record(s, c)
		if err != nil {
			return nil, err
		}

		report.Positions = record.PositionCount()

		report.Scores, err = e.score(s, record, c.Criteria)
		if err != nil {
			return nil, err
		}
	}

	e.logger.Info("Evaluation finished",
		zap.String("series", s.Name()),
		zap.Int("indicators", len(indicators)),
		zap.Int("rows", len(report.Rows)),
		zap.Int("scores", len(report.Scores)),
		zap.Duration("elapsed", time.Since(started)))

	return report, nil
}

// Build creates the configured indicators in order. A source names a price
// type of the registry or an indicator declared earlier in the list.
func (e *Evaluator) Build(s *series.BarSeries, configs []config.Indicator) ([]indicator.Indicator, error) {
	built := make(map[string]indicator.Indicator, len(configs))
	indicators := make([]indicator.Indicator, 0, len(configs))

	for _, ic := range configs {
		source, err := e.source(s, ic.Source, built)
		if err != nil {
			return nil, errors.Wrapf(errors.GetCode(err), err, "indicator %s", ic.Name)
		}

		ind, err := e.registry.Create(indicator.IndicatorType(ic.Type), s, indicator.Params{
			Source:     source,
			Period:     ic.Period,
			Period2:    ic.Period2,
			Period3:    ic.Period3,
			Multiplier: ic.Multiplier,
		})
		if err != nil {
			return nil, errors.Wrapf(errors.GetCode(err), err, "indicator %s", ic.Name)
		}

		built[ic.Name] = ind
		indicators = append(indicators, ind)
	}

	return indicators, nil
}

func (e *Evaluator) source(s *series.BarSeries, name string, built map[string]indicator.Indicator) (indicator.Indicator, error) {
	if name == "" {
		return nil, nil
	}

	if ind, ok := built[name]; ok {
		return ind, nil
	}

	ind, err := e.registry.Create(indicator.IndicatorType(name), s, indicator.Params{
		Source:     nil,
		Period:     0,
		Period2:    0,
		Period3:    0,
		Multiplier: 0,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "unknown source %q", name)
	}

	return ind, nil
}

func (e *Evaluator) row(s *series.BarSeries, indicators []indicator.Indicator, index int) (Row, error) {
	bar, err := s.Bar(index)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Index:  index,
		Time:   bar.EndTime,
		Close:  text(bar.Close),
		Values: make([]Value, len(indicators)),
	}

	for i, ind := range indicators {
		v, err := ind.GetValue(index)
		if err != nil {
			return Row{}, err
		}

		row.Values[i] = Value{
			Value:  v.String(),
			Stable: indicator.Stable(ind, index),
		}
	}

	return row, nil
}

// text renders n, or an empty string for a bar that has no price yet.
func text(n num.Num) string {
	if n == nil {
		return ""
	}

	return n.String()
}

func (e *Evaluator) score(s *series.BarSeries, record *trading.TradingRecord, names []string) ([]Score, error) {
	scores := make([]Score, 0, len(names))

	for _, name := range names {
		criterion, err := criteria.ByName(name)
		if err != nil {
			return nil, err
		}

		v, err := criterion.CalculateRecord(s, record)
		if err != nil {
			return nil, errors.Wrapf(errors.GetCode(err), err, "criterion %s", name)
		}

		e.metrics.ObserveCriterion(name)
		scores = append(scores, Score{Name: name, Value: v.String()})
	}

	return scores, nil
}

// Record replays the configured trades at the close of their bars.
func Record(s *series.BarSeries, c *config.Config) (*trading.TradingRecord, error) {
	f := s.NumFactory()
	startingType := trading.Buy

	if len(c.Trades) > 0 && c.Trades[0].Type == "sell" {
		startingType = trading.Sell
	}

	record := trading.NewTradingRecord(f, startingType, trading.NewLinearTransactionCost(c.TransactionFee))
	record.Name = s.Name()

	for _, t := range c.Trades {
		bar, err := s.Bar(t.Index)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidTrade, err, "%s trade at index %d", t.Type, t.Index)
		}

		if _, err := record.Operate(t.Index, bar.Close, f.NumOf(t.Amount)); err != nil {
			return nil, err
		}
	}

	return record, nil
}
