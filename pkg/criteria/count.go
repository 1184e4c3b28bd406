package criteria

import (
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/rxtech-lab/argo-ta/pkg/trading"
)

// NumberOfBars is the number of bars positions were held, exit index minus
// entry index. Open positions count zero.
type NumberOfBars struct{ lowerIsBetter }

func (NumberOfBars) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	return s.NumFactory().NumOfInt(int64(p.HoldingBars())), nil
}

func (NumberOfBars) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	total := 0
	for _, p := range r.Positions() {
		total += p.HoldingBars()
	}

	return s.NumFactory().NumOfInt(int64(total)), nil
}

// NumberOfPositions counts closed positions.
type NumberOfPositions struct{ lowerIsBetter }

func (NumberOfPositions) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	if !p.IsClosed() {
		return s.NumFactory().Zero(), nil
	}

	return s.NumFactory().One(), nil
}

func (NumberOfPositions) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return s.NumFactory().NumOfInt(int64(r.PositionCount())), nil
}

// NumberOfWinningPositions counts closed positions with a net profit.
type NumberOfWinningPositions struct{ higherIsBetter }

func (NumberOfWinningPositions) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	return indicate(s, p.IsProfitable()), nil
}

func (NumberOfWinningPositions) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return s.NumFactory().NumOfInt(int64(countPositions(r, (*trading.Position).IsProfitable))), nil
}

// NumberOfLosingPositions counts closed positions with a net loss.
type NumberOfLosingPositions struct{ lowerIsBetter }

func (NumberOfLosingPositions) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	return indicate(s, p.IsLosing()), nil
}

func (NumberOfLosingPositions) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	return s.NumFactory().NumOfInt(int64(countPositions(r, (*trading.Position).IsLosing))), nil
}

// WinningPositionsRatio is the share of closed positions with a net profit,
// zero when there are none.
type WinningPositionsRatio struct{ higherIsBetter }

func (WinningPositionsRatio) Calculate(s *series.BarSeries, p *trading.Position) (num.Num, error) {
	return indicate(s, p.IsProfitable()), nil
}

func (WinningPositionsRatio) CalculateRecord(s *series.BarSeries, r *trading.TradingRecord) (num.Num, error) {
	f := s.NumFactory()
	if r.PositionCount() == 0 {
		return f.Zero(), nil
	}

	winners := f.NumOfInt(int64(countPositions(r, (*trading.Position).IsProfitable)))

	return winners.DividedBy(f.NumOfInt(int64(r.PositionCount())))
}

func indicate(s *series.BarSeries, ok bool) num.Num {
	if ok {
		return s.NumFactory().One()
	}

	return s.NumFactory().Zero()
}
