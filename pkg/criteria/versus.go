package criteria

import (
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/rxtech-lab/argo-ta/pkg/trading"
)

// VersusCriterion divides the score of a strategy by the score the same
// criterion gives to buying at the first bar and selling at the last.
// A zero buy and hold score fails with ErrCodeDivisionByZero.
type VersusCriterion struct {
	Criterion AnalysisCriterion
}

func NewVersusCriterion(c AnalysisCriterion) *VersusCriterion {
	return &VersusCriterion{Criterion: c}
}

func (v *VersusCriterion) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	if !p.IsClosed() {
		return s.NumFactory().One(), nil
	}

	hold, err := buyAndHold(s, p.Entry.Unwrap().Index, p.Exit.Unwrap().Index)
	if err != nil {
		return nil, err
	}

	score, err := v.Criterion.Calculate(s, p)
	if err != nil {
		return nil, err
	}

	return v.versus(s, score, hold)
}

func (v *VersusCriterion) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	hold, err := buyAndHold(s, r.StartIndex(s), r.EndIndex(s))
	if err != nil {
		return nil, err
	}

	score, err := v.Criterion.CalculateRecord(s, r)
	if err != nil {
		return nil, err
	}

	return v.versus(s, score, hold)
}

func (v *VersusCriterion) versus(s *series.BarSeries, score num.Num, hold *trading.TradingRecord) (num.Num, error) {
	base, err := v.Criterion.CalculateRecord(s, hold)
	if err != nil {
		return nil, err
	}

	return score.DividedBy(base)
}

// BetterThan follows the wrapped criterion.
func (v *VersusCriterion) BetterThan(a, b num.Num) bool {
	return v.Criterion.BetterThan(a, b)
}

// buyAndHold is a record with one position bought at start and sold at end,
// both at the close price with an amount of one.
func buyAndHold(s *series.BarSeries, start, end int) (*trading.TradingRecord, error) {
	f := s.NumFactory()
	closePrice := indicator.NewClosePrice(s)

	entryPrice, err := closePrice.GetValue(start)
	if err != nil {
		return nil, err
	}

	exitPrice, err := closePrice.GetValue(end)
	if err != nil {
		return nil, err
	}

	entry, err := trading.NewTrade(start, trading.Buy, entryPrice, f.One(), nil)
	if err != nil {
		return nil, err
	}

	exit, err := trading.NewTrade(end, trading.Sell, exitPrice, f.One(), nil)
	if err != nil {
		return nil, err
	}

	r, err := trading.NewTradingRecordOf(f, entry, exit)
	if err != nil {
		return nil, err
	}

	return r.WithRange(start, end), nil
}
