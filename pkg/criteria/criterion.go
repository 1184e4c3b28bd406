// Package criteria scores positions and trading records over a bar series.
//
// Every criterion is a pure function of its inputs: it reads bar values
// through indicators and never mutates the series, the record or any Num.
// Record level criteria only look at closed positions. A position held for
// zero bars scores the neutral value of its criterion: 1 for multiplicative
// returns and 0 for additive sums.
package criteria

import (
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/rxtech-lab/argo-ta/pkg/trading"
)

// AnalysisCriterion scores a strategy run.
type AnalysisCriterion interface {
	// Calculate scores a single position.
	Calculate(s *series.BarSeries, position *trading.Position) (num.Num, error)
	// CalculateRecord scores every closed position of a record.
	CalculateRecord(s *series.BarSeries, record *trading.TradingRecord) (num.Num, error)
	// BetterThan reports whether a is a strictly better score than b.
	BetterThan(a, b num.Num) bool
}

type higherIsBetter struct{}

func (higherIsBetter) BetterThan(a, b num.Num) bool {
	return a.IsGreaterThan(b)
}

type lowerIsBetter struct{}

func (lowerIsBetter) BetterThan(a, b num.Num) bool {
	return a.IsLessThan(b)
}

// sumPositions adds the score of every closed position of r.
func sumPositions(s *series.BarSeries, r *trading.TradingRecord, c AnalysisCriterion) (num.Num, error) {
	total := s.NumFactory().Zero()
	for _, p := range r.Positions() {
		v, err := c.Calculate(s, p)
		if err != nil {
			return nil, err
		}

		total = total.Plus(v)
	}

	return total, nil
}

// productPositions multiplies the score of every closed position of r.
func productPositions(s *series.BarSeries, r *trading.TradingRecord, c AnalysisCriterion) (num.Num, error) {
	total := s.NumFactory().One()
	for _, p := range r.Positions() {
		v, err := c.Calculate(s, p)
		if err != nil {
			return nil, err
		}

		total = total.Multiply(v)
	}

	return total, nil
}

func countPositions(r *trading.TradingRecord, keep func(*trading.Position) bool) int {
	n := 0
	for _, p := range r.Positions() {
		if keep(p) {
			n++
		}
	}

	return n
}

// only returns v when keep accepts it and zero otherwise.
func only(v num.Num, keep num.Tester) num.Num {
	if keep(v) {
		return v
	}

	return v.Factory().Zero()
}
