package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

func checkPeriod(name string, period int) error {
	if period < 1 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s: period must be a positive integer, got %d", name, period)
	}

	return nil
}

func invalidPeriods(name string, short, long int) error {
	return errors.Newf(errors.ErrCodeInvalidPeriod, "%s: short period %d must be below long period %d", name, short, long)
}

// Previous returns the value of src k bars earlier. Indices below k are zero.
type Previous struct {
	*Cached
	src Indicator
	k   int
}

func NewPrevious(src Indicator, k int) (*Previous, error) {
	if err := checkPeriod("previous", k); err != nil {
		return nil, err
	}

	p := &Previous{Cached: nil, src: src, k: k}
	p.Cached = NewCached(src.BarSeries(), src.UnstableBars()+k, p.calculate)

	return p, nil
}

func (p *Previous) calculate(index int) (num.Num, error) {
	if index < p.k {
		return p.series.NumFactory().Zero(), nil
	}

	return p.src.GetValue(index - p.k)
}

// Change is src(i) - src(i-n). Indices below n are zero.
type Change struct {
	*Cached
	src Indicator
	n   int
}

func NewChange(src Indicator, n int) (*Change, error) {
	if err := checkPeriod("change", n); err != nil {
		return nil, err
	}

	c := &Change{Cached: nil, src: src, n: n}
	c.Cached = NewCached(src.BarSeries(), max(n, src.UnstableBars()), c.calculate)

	return c, nil
}

// NewChangeFromSeries is the one-bar change of the close price.
func NewChangeFromSeries(s *series.BarSeries) *Change {
	c, _ := NewChange(NewClosePrice(s), 1)

	return c
}

func (c *Change) calculate(index int) (num.Num, error) {
	if index < c.n {
		return c.series.NumFactory().Zero(), nil
	}

	current, err := c.src.GetValue(index)
	if err != nil {
		return nil, err
	}

	previous, err := c.src.GetValue(index - c.n)
	if err != nil {
		return nil, err
	}

	return current.Minus(previous), nil
}

// ROC is the rate of change over n bars in percent:
// (src(i) - src(i-n)) / src(i-n) * 100. Indices below n are zero.
type ROC struct {
	*Cached
	src Indicator
	n   int
}

func NewROC(src Indicator, n int) (*ROC, error) {
	if err := checkPeriod("roc", n); err != nil {
		return nil, err
	}

	r := &ROC{Cached: nil, src: src, n: n}
	r.Cached = NewCached(src.BarSeries(), max(n, src.UnstableBars()), r.calculate)

	return r, nil
}

func (r *ROC) calculate(index int) (num.Num, error) {
	f := r.series.NumFactory()
	if index < r.n {
		return f.Zero(), nil
	}

	current, err := r.src.GetValue(index)
	if err != nil {
		return nil, err
	}

	previous, err := r.src.GetValue(index - r.n)
	if err != nil {
		return nil, err
	}

	ratio, err := current.Minus(previous).DividedBy(previous)
	if err != nil {
		return nil, err
	}

	return ratio.Multiply(f.Hundred()), nil
}

// Gain is the positive part of the one-bar change of src.
type Gain struct {
	*Cached
	src Indicator
}

func NewGain(src Indicator) *Gain {
	g := &Gain{Cached: nil, src: src}
	g.Cached = NewCached(src.BarSeries(), max(1, src.UnstableBars()), g.calculate)

	return g
}

func (g *Gain) calculate(index int) (num.Num, error) {
	change, err := oneBarChange(g.src, index)
	if err != nil {
		return nil, err
	}

	if change.IsPositive() {
		return change, nil
	}

	return g.series.NumFactory().Zero(), nil
}

// Loss is the magnitude of the negative part of the one-bar change of src.
type Loss struct {
	*Cached
	src Indicator
}

func NewLoss(src Indicator) *Loss {
	l := &Loss{Cached: nil, src: src}
	l.Cached = NewCached(src.BarSeries(), max(1, src.UnstableBars()), l.calculate)

	return l
}

func (l *Loss) calculate(index int) (num.Num, error) {
	change, err := oneBarChange(l.src, index)
	if err != nil {
		return nil, err
	}

	if change.IsNegative() {
		return change.Negate(), nil
	}

	return l.series.NumFactory().Zero(), nil
}

func oneBarChange(src Indicator, index int) (num.Num, error) {
	if index < 1 {
		return src.BarSeries().NumFactory().Zero(), nil
	}

	current, err := src.GetValue(index)
	if err != nil {
		return nil, err
	}

	previous, err := src.GetValue(index - 1)
	if err != nil {
		return nil, err
	}

	return current.Minus(previous), nil
}
