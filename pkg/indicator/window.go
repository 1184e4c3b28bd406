package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// windowStart is the first index of the n-bar window ending at index. Windows
// never reach below the first retained bar, so after eviction they shrink
// instead of repeating it.
func windowStart(s *series.BarSeries, index, n int) int {
	start := index - n + 1
	if begin := s.BeginIndex(); start < begin {
		start = begin
	}

	if start > index {
		start = index
	}

	return start
}

// window collects the values of src over the n-bar window ending at index.
func window(src Indicator, index, n int) ([]num.Num, error) {
	return Values(src, windowStart(src.BarSeries(), index, n), index)
}

// Sum is the running sum of src over n bars.
type Sum struct {
	*Cached
	src Indicator
	n   int
}

func NewSum(src Indicator, n int) (*Sum, error) {
	if err := checkPeriod("sum", n); err != nil {
		return nil, err
	}

	s := &Sum{Cached: nil, src: src, n: n}
	s.Cached = NewCached(src.BarSeries(), max(n, src.UnstableBars()), s.calculate)

	return s, nil
}

func (s *Sum) calculate(index int) (num.Num, error) {
	values, err := window(s.src, index, s.n)
	if err != nil {
		return nil, err
	}

	return num.Sum(s.series.NumFactory(), values), nil
}

// Highest is the largest value of src over n bars.
type Highest struct {
	*Cached
	src Indicator
	n   int
}

func NewHighest(src Indicator, n int) (*Highest, error) {
	if err := checkPeriod("highest", n); err != nil {
		return nil, err
	}

	h := &Highest{Cached: nil, src: src, n: n}
	h.Cached = NewCached(src.BarSeries(), max(n, src.UnstableBars()), h.calculate)

	return h, nil
}

func (h *Highest) calculate(index int) (num.Num, error) {
	values, err := window(h.src, index, h.n)
	if err != nil {
		return nil, err
	}

	return num.MaxOf(values...), nil
}

// Lowest is the smallest value of src over n bars.
type Lowest struct {
	*Cached
	src Indicator
	n   int
}

func NewLowest(src Indicator, n int) (*Lowest, error) {
	if err := checkPeriod("lowest", n); err != nil {
		return nil, err
	}

	l := &Lowest{Cached: nil, src: src, n: n}
	l.Cached = NewCached(src.BarSeries(), max(n, src.UnstableBars()), l.calculate)

	return l, nil
}

func (l *Lowest) calculate(index int) (num.Num, error) {
	values, err := window(l.src, index, l.n)
	if err != nil {
		return nil, err
	}

	return num.MinOf(values...), nil
}

// SMA is the simple moving average of src over n bars. Before n bars exist
// the average covers the bars available.
type SMA struct {
	*Cached
	src    Indicator
	period int
}

func NewSMA(src Indicator, period int) (*SMA, error) {
	if err := checkPeriod("sma", period); err != nil {
		return nil, err
	}

	s := &SMA{Cached: nil, src: src, period: period}
	s.Cached = NewCached(src.BarSeries(), max(period, src.UnstableBars()), s.calculate)

	return s, nil
}

func (s *SMA) Period() int {
	return s.period
}

func (s *SMA) calculate(index int) (num.Num, error) {
	values, err := window(s.src, index, s.period)
	if err != nil {
		return nil, err
	}

	return num.Average(s.series.NumFactory(), values)
}

// Variance is the population variance of src over n bars.
type Variance struct {
	*Cached
	src    Indicator
	period int
}

func NewVariance(src Indicator, period int) (*Variance, error) {
	if err := checkPeriod("variance", period); err != nil {
		return nil, err
	}

	v := &Variance{Cached: nil, src: src, period: period}
	v.Cached = NewCached(src.BarSeries(), max(period, src.UnstableBars()), v.calculate)

	return v, nil
}

func (v *Variance) calculate(index int) (num.Num, error) {
	f := v.series.NumFactory()

	values, err := window(v.src, index, v.period)
	if err != nil {
		return nil, err
	}

	mean, err := num.Average(f, values)
	if err != nil {
		return nil, err
	}

	squares := make([]num.Num, len(values))
	for i, x := range values {
		d := x.Minus(mean)
		squares[i] = d.Multiply(d)
	}

	return num.Average(f, squares)
}

// StandardDeviation is the population standard deviation of src over n bars.
type StandardDeviation struct {
	*Cached
	variance *Variance
}

func NewStandardDeviation(src Indicator, period int) (*StandardDeviation, error) {
	variance, err := NewVariance(src, period)
	if err != nil {
		return nil, err
	}

	sd := &StandardDeviation{Cached: nil, variance: variance}
	sd.Cached = NewCached(src.BarSeries(), variance.UnstableBars(), sd.calculate)

	return sd, nil
}

func (sd *StandardDeviation) calculate(index int) (num.Num, error) {
	v, err := sd.variance.GetValue(index)
	if err != nil {
		return nil, err
	}

	return v.Sqrt()
}
