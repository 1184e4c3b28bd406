package criteria

import (
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/rxtech-lab/argo-ta/pkg/trading"
)

// CashFlow is the equity curve of a record, starting at 1 on its first bar
// and following the close price while a position is held.
type CashFlow struct {
	start  int
	values []num.Num
}

// NewCashFlow builds the equity curve of r over [r.StartIndex, r.EndIndex].
func NewCashFlow(s *series.BarSeries, r *trading.TradingRecord) (*CashFlow, error) {
	start, end := r.StartIndex(s), r.EndIndex(s)
	cf := &CashFlow{start: start, values: nil}
	if end < start {
		return cf, nil
	}

	closePrice := indicator.NewClosePrice(s)
	one := s.NumFactory().One()
	two := s.NumFactory().Two()

	cf.values = make([]num.Num, 0, end-start+1)
	cf.values = append(cf.values, one)

	for _, p := range r.Positions() {
		entry, exit := p.Entry.Unwrap().Index, p.Exit.Unwrap().Index
		if exit < start || entry > end {
			continue
		}

		entry, exit = max(entry, start), min(exit, end)
		cf.fill(entry)

		base := cf.values[entry-start]
		entryPrice, err := closePrice.GetValue(entry)
		if err != nil {
			return nil, err
		}

		for i := entry + 1; i <= exit; i++ {
			price, err := closePrice.GetValue(i)
			if err != nil {
				return nil, err
			}

			ratio, err := price.DividedBy(entryPrice)
			if err != nil {
				return nil, err
			}

			if p.StartingType == trading.Sell {
				ratio = two.Minus(ratio)
			}

			cf.set(i, base.Multiply(ratio))
		}
	}

	cf.fill(end)

	return cf, nil
}

// fill carries the last value forward up to index.
func (cf *CashFlow) fill(index int) {
	last := cf.values[len(cf.values)-1]
	for i := cf.start + len(cf.values); i <= index; i++ {
		cf.values = append(cf.values, last)
	}
}

func (cf *CashFlow) set(index int, v num.Num) {
	cf.fill(index - 1)
	if offset := index - cf.start; offset < len(cf.values) {
		cf.values[offset] = v

		return
	}

	cf.values = append(cf.values, v)
}

// Size is the number of bars the curve covers.
func (cf *CashFlow) Size() int {
	return len(cf.values)
}

// Value returns the equity at absolute index i.
func (cf *CashFlow) Value(i int) num.Num {
	return cf.values[i-cf.start]
}

// MaximumDrawdown is the largest relative drop of the equity curve from a
// previous peak, in [0, 1].
type MaximumDrawdown struct{ lowerIsBetter }

func (c MaximumDrawdown) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	if !p.IsClosed() {
		return s.NumFactory().Zero(), nil
	}

	entry, exit := p.Entry.Unwrap(), p.Exit.Unwrap()

	r, err := trading.NewTradingRecordOf(s.NumFactory(), entry, exit)
	if err != nil {
		return nil, err
	}

	return c.CalculateRecord(s, r.WithRange(entry.Index, exit.Index))
}

func (MaximumDrawdown) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	cf, err := NewCashFlow(s, r)
	if err != nil {
		return nil, err
	}

	drawdown := s.NumFactory().Zero()
	if cf.Size() == 0 {
		return drawdown, nil
	}

	peak := cf.values[0]
	for _, v := range cf.values {
		peak = peak.Max(v)
		if peak.IsZero() {
			continue
		}

		dd, err := peak.Minus(v).DividedBy(peak)
		if err != nil {
			return nil, err
		}

		drawdown = drawdown.Max(dd)
	}

	return drawdown, nil
}
