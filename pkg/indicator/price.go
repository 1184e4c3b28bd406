package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// Price reads one field of the bar at each index.
type Price struct {
	*Cached
	field string
	read  func(series.Bar) num.Num
}

func newPrice(s *series.BarSeries, field string, read func(series.Bar) num.Num) *Price {
	p := &Price{Cached: nil, field: field, read: read}
	p.Cached = NewCached(s, 0, p.calculate)

	return p
}

func (p *Price) calculate(index int) (num.Num, error) {
	bar, err := p.series.Bar(index)
	if err != nil {
		return nil, err
	}

	v := p.read(bar)
	if v == nil {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "bar %d has no %s", index, p.field)
	}

	return v, nil
}

// Field names the bar field the indicator reads.
func (p *Price) Field() string {
	return p.field
}

func NewClosePrice(s *series.BarSeries) *Price {
	return newPrice(s, "close price", func(b series.Bar) num.Num { return b.Close })
}

func NewOpenPrice(s *series.BarSeries) *Price {
	return newPrice(s, "open price", func(b series.Bar) num.Num { return b.Open })
}

func NewHighPrice(s *series.BarSeries) *Price {
	return newPrice(s, "high price", func(b series.Bar) num.Num { return b.High })
}

func NewLowPrice(s *series.BarSeries) *Price {
	return newPrice(s, "low price", func(b series.Bar) num.Num { return b.Low })
}

func NewVolume(s *series.BarSeries) *Price {
	return newPrice(s, "volume", func(b series.Bar) num.Num { return b.Volume })
}

func NewAmount(s *series.BarSeries) *Price {
	return newPrice(s, "amount", func(b series.Bar) num.Num { return b.Amount })
}

// NewTypicalPrice is (high + low + close) / 3.
func NewTypicalPrice(s *series.BarSeries) *Price {
	f := s.NumFactory()

	return newPrice(s, "typical price", func(b series.Bar) num.Num {
		if b.High == nil || b.Low == nil || b.Close == nil {
			return nil
		}

		v, err := b.High.Plus(b.Low).Plus(b.Close).DividedBy(f.Three())
		if err != nil {
			return nil
		}

		return v
	})
}

// NewMedianPrice is (high + low) / 2.
func NewMedianPrice(s *series.BarSeries) *Price {
	f := s.NumFactory()

	return newPrice(s, "median price", func(b series.Bar) num.Num {
		if b.High == nil || b.Low == nil {
			return nil
		}

		v, err := b.High.Plus(b.Low).DividedBy(f.Two())
		if err != nil {
			return nil
		}

		return v
	})
}

// Constant returns the same value at every index.
type Constant struct {
	series *series.BarSeries
	value  num.Num
}

// NewConstant creates a constant indicator. value must come from the series' factory.
func NewConstant(s *series.BarSeries, value num.Num) (*Constant, error) {
	if value == nil || !s.NumFactory().Produces(value) {
		return nil, errors.Newf(errors.ErrCodeInvalidOperand, "constant must be a %s num", s.NumFactory().Family())
	}

	return &Constant{series: s, value: value}, nil
}

func (c *Constant) GetValue(index int) (num.Num, error) {
	if end := c.series.EndIndex(); index < 0 || index > end {
		return nil, errors.IndexOutOfBounds(index, c.series.BeginIndex(), end)
	}

	return c.value, nil
}

func (c *Constant) UnstableBars() int {
	return 0
}

func (c *Constant) BarSeries() *series.BarSeries {
	return c.series
}

// Fixed replays explicit values, one per absolute index starting at 0.
type Fixed struct {
	series *series.BarSeries
	values []num.Num
}

// NewFixed creates a fixed indicator from float64 values converted by the
// series' factory.
func NewFixed(s *series.BarSeries, values ...float64) *Fixed {
	f := s.NumFactory()

	nums := make([]num.Num, len(values))
	for i, v := range values {
		nums[i] = f.NumOf(v)
	}

	return &Fixed{series: s, values: nums}
}

func (x *Fixed) GetValue(index int) (num.Num, error) {
	if index < 0 || index >= len(x.values) {
		return nil, errors.IndexOutOfBounds(index, 0, len(x.values)-1)
	}

	return x.values[index], nil
}

func (x *Fixed) UnstableBars() int {
	return 0
}

func (x *Fixed) BarSeries() *series.BarSeries {
	return x.series
}
