package criteria

import (
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/rxtech-lab/argo-ta/pkg/trading"
)

// ProfitLoss is the net profit of every closed position, wins and losses.
type ProfitLoss struct{ higherIsBetter }

func (ProfitLoss) Calculate(_ *series.BarSeries, p *trading.Position) (num.Num, error) {
	return p.Profit(), nil
}

func (c ProfitLoss) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return sumPositions(s, r, c)
}

// NetProfit adds the net profit of winning positions.
type NetProfit struct{ higherIsBetter }

func (NetProfit) Calculate(_ *series.BarSeries, p *trading.Position) (num.Num, error) {
	return only(p.Profit(), num.PositiveTester), nil
}

func (c NetProfit) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return sumPositions(s, r, c)
}

// GrossProfit adds the profit before costs of winning positions.
type GrossProfit struct{ higherIsBetter }

func (GrossProfit) Calculate(_ *series.BarSeries, p *trading.Position) (num.Num, error) {
	return only(p.GrossProfit(), num.PositiveTester), nil
}

func (c GrossProfit) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return sumPositions(s, r, c)
}

// NetLoss adds the net profit of losing positions. The result is zero or
// negative, and values closer to zero are better.
type NetLoss struct{ higherIsBetter }

func (NetLoss) Calculate(_ *series.BarSeries, p *trading.Position) (num.Num, error) {
	return only(p.Profit(), num.NegativeTester), nil
}

func (c NetLoss) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return sumPositions(s, r, c)
}

// GrossLoss adds the profit before costs of losing positions.
type GrossLoss struct{ higherIsBetter }

func (GrossLoss) Calculate(_ *series.BarSeries, p *trading.Position) (num.Num, error) {
	return only(p.GrossProfit(), num.NegativeTester), nil
}

func (c GrossLoss) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return sumPositions(s, r, c)
}

// NetAverageProfit is NetProfit divided by the number of winning positions,
// zero when there are none.
type NetAverageProfit struct{ higherIsBetter }

func (NetAverageProfit) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	return NetProfit{}.Calculate(s, p)
}

func (NetAverageProfit) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return average(s, r, NetProfit{}, (*trading.Position).IsProfitable)
}

// NetAverageLoss is NetLoss divided by the number of losing positions, zero
// when there are none. A smaller average loss is better: -17.5 beats -19.325.
type NetAverageLoss struct{ higherIsBetter }

func (NetAverageLoss) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	return NetLoss{}.Calculate(s, p)
}

func (NetAverageLoss) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return average(s, r, NetLoss{}, (*trading.Position).IsLosing)
}

func average(s *series.BarSeries, r *trading.TradingRecord, total AnalysisCriterion, keep func(*trading.Position) bool) (num.Num, error) {
	f := s.NumFactory()

	n := countPositions(r, keep)
	if n == 0 {
		return f.Zero(), nil
	}

	sum, err := total.CalculateRecord(s, r)
	if err != nil {
		return nil, err
	}

	return sum.DividedBy(f.NumOfInt(int64(n)))
}
