package criteria

import (
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/rxtech-lab/argo-ta/pkg/trading"
)

// NetReturn is the compounded return after costs, 1 + profit / entry value
// per position. A record without closed positions returns 1.
type NetReturn struct{ higherIsBetter }

func (NetReturn) Calculate(_ *series.BarSeries, p *trading.Position) (num.Num, error) {
	return p.NetReturn()
}

func (c NetReturn) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return productPositions(s, r, c)
}

// GrossReturn is the compounded return before costs.
type GrossReturn struct{ higherIsBetter }

func (GrossReturn) Calculate(_ *series.BarSeries, p *trading.Position) (num.Num, error) {
	return p.GrossReturn()
}

func (c GrossReturn) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return productPositions(s, r, c)
}

// AverageReturnPerBar is NetReturn ^ (1 / NumberOfBars), the per bar return
// that compounds to the net return. It is 1 when no bar was held.
type AverageReturnPerBar struct{ higherIsBetter }

func (AverageReturnPerBar) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	bars, err := NumberOfBars{}.Calculate(s, p)
	if err != nil {
		return nil, err
	}

	ret, err := NetReturn{}.Calculate(s, p)
	if err != nil {
		return nil, err
	}

	return perBar(ret, bars)
}

func (AverageReturnPerBar) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	bars, err := NumberOfBars{}.CalculateRecord(s, r)
	if err != nil {
		return nil, err
	}

	ret, err := NetReturn{}.CalculateRecord(s, r)
	if err != nil {
		return nil, err
	}

	return perBar(ret, bars)
}

func perBar(ret, bars num.Num) (num.Num, error) {
	one := ret.Factory().One()
	if bars.IsZero() {
		return one, nil
	}

	exponent, err := one.DividedBy(bars)
	if err != nil {
		return nil, err
	}

	return ret.Pow(exponent)
}

// BuyAndHoldReturn is the return of holding from the first close to the last:
// close(exit) / close(entry) for a position, close(end) / close(start) over
// the record's range. Short holds return 2 - ratio.
type BuyAndHoldReturn struct{ higherIsBetter }

func (BuyAndHoldReturn) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	if !p.IsClosed() {
		return s.NumFactory().One(), nil
	}

	return holdReturn(s, p.StartingType, p.Entry.Unwrap().Index, p.Exit.Unwrap().Index)
}

func (BuyAndHoldReturn) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return holdReturn(s, r.StartingType(), r.StartIndex(s), r.EndIndex(s))
}

func holdReturn(s *series.BarSeries, side trading.TradeType, start, end int) (num.Num, error) {
	closePrice := indicator.NewClosePrice(s)

	first, err := closePrice.GetValue(start)
	if err != nil {
		return nil, err
	}

	last, err := closePrice.GetValue(end)
	if err != nil {
		return nil, err
	}

	ratio, err := last.DividedBy(first)
	if err != nil {
		return nil, err
	}

	if side == trading.Sell {
		return s.NumFactory().Two().Minus(ratio), nil
	}

	return ratio, nil
}
