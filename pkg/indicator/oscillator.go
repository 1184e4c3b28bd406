package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// RSI is the relative strength index built from Wilder averages of gains and
// losses. It is 100 when the average loss is zero and 0 when both averages are.
type RSI struct {
	*Cached
	averageGain *MMA
	averageLoss *MMA
	period      int
}

func NewRSI(src Indicator, period int) (*RSI, error) {
	if err := checkPeriod("rsi", period); err != nil {
		return nil, err
	}

	averageGain, err := NewMMA(NewGain(src), period)
	if err != nil {
		return nil, err
	}

	averageLoss, err := NewMMA(NewLoss(src), period)
	if err != nil {
		return nil, err
	}

	r := &RSI{Cached: nil, averageGain: averageGain, averageLoss: averageLoss, period: period}
	r.Cached = NewCached(src.BarSeries(), maxUnstable(averageGain, averageLoss), r.calculate)

	return r, nil
}

func (r *RSI) Period() int {
	return r.period
}

func (r *RSI) calculate(index int) (num.Num, error) {
	f := r.series.NumFactory()

	gain, err := r.averageGain.GetValue(index)
	if err != nil {
		return nil, err
	}

	loss, err := r.averageLoss.GetValue(index)
	if err != nil {
		return nil, err
	}

	if loss.IsZero() {
		if gain.IsZero() {
			return f.Zero(), nil
		}

		return f.Hundred(), nil
	}

	rs, err := gain.DividedBy(loss)
	if err != nil {
		return nil, err
	}

	ratio, err := f.Hundred().DividedBy(f.One().Plus(rs))
	if err != nil {
		return nil, err
	}

	return f.Hundred().Minus(ratio), nil
}

// TrueRange is max(high - low, |high - previous close|, |previous close - low|).
// The first retained bar uses high - low.
type TrueRange struct {
	*Cached
}

func NewTrueRange(s *series.BarSeries) *TrueRange {
	tr := &TrueRange{Cached: nil}
	tr.Cached = NewCached(s, 1, tr.calculate)

	return tr
}

func (tr *TrueRange) calculate(index int) (num.Num, error) {
	bar, err := tr.series.Bar(index)
	if err != nil {
		return nil, err
	}

	if bar.High == nil || bar.Low == nil {
		return tr.series.NumFactory().Zero(), nil
	}

	highLow := bar.High.Minus(bar.Low).Abs()
	if index <= tr.series.BeginIndex() {
		return highLow, nil
	}

	previous, err := tr.series.Bar(index - 1)
	if err != nil {
		return nil, err
	}

	if previous.Close == nil {
		return highLow, nil
	}

	return num.MaxOf(
		highLow,
		bar.High.Minus(previous.Close).Abs(),
		previous.Close.Minus(bar.Low).Abs(),
	), nil
}

// ATR is the average true range, a Wilder average of TrueRange.
type ATR struct {
	*MMA
}

func NewATR(s *series.BarSeries, period int) (*ATR, error) {
	mma, err := NewMMA(NewTrueRange(s), period)
	if err != nil {
		return nil, err
	}

	return &ATR{MMA: mma}, nil
}

// MACD is EMA(short) - EMA(long) of src.
type MACD struct {
	*Combine
}

func NewMACD(src Indicator, shortPeriod, longPeriod int) (*MACD, error) {
	if err := checkPeriod("macd", shortPeriod); err != nil {
		return nil, err
	}

	if err := checkPeriod("macd", longPeriod); err != nil {
		return nil, err
	}

	if shortPeriod >= longPeriod {
		return nil, invalidPeriods("macd", shortPeriod, longPeriod)
	}

	short, err := NewEMA(src, shortPeriod)
	if err != nil {
		return nil, err
	}

	long, err := NewEMA(src, longPeriod)
	if err != nil {
		return nil, err
	}

	combine, err := NewCombine(short, long, Minus)
	if err != nil {
		return nil, err
	}

	return &MACD{Combine: combine}, nil
}

// Signal is the EMA of the MACD line.
func (m *MACD) Signal(period int) (*EMA, error) {
	return NewEMA(m, period)
}

// Histogram is the MACD line minus its signal line.
func (m *MACD) Histogram(period int) (*Combine, error) {
	signal, err := m.Signal(period)
	if err != nil {
		return nil, err
	}

	return NewCombine(m, signal, Minus)
}

// BollingerBands holds the middle band (SMA) and the bands k standard
// deviations above and below it.
type BollingerBands struct {
	Middle *SMA
	Upper  *Combine
	Lower  *Combine
	// Deviation is the standard deviation the bands are offset by
	Deviation *StandardDeviation
}

func NewBollingerBands(src Indicator, period int, k num.Num) (*BollingerBands, error) {
	if f := src.BarSeries().NumFactory(); k == nil || !f.Produces(k) {
		return nil, errors.Newf(errors.ErrCodeInvalidOperand, "bollinger bands: multiplier must be a %s num", f.Family())
	}

	middle, err := NewSMA(src, period)
	if err != nil {
		return nil, err
	}

	sd, err := NewStandardDeviation(src, period)
	if err != nil {
		return nil, err
	}

	offset := NewTransform(sd, MultiplyConst(k))

	upper, err := NewCombine(middle, offset, Plus)
	if err != nil {
		return nil, err
	}

	lower, err := NewCombine(middle, offset, Minus)
	if err != nil {
		return nil, err
	}

	return &BollingerBands{Middle: middle, Upper: upper, Lower: lower, Deviation: sd}, nil
}
