package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/num"
)

// exponential is the recursive moving average
//
//	v(begin) = src(begin)
//	v(i)     = v(i-1) + (src(i) - v(i-1)) * multiplier
type exponential struct {
	*RecursiveCached
	src        Indicator
	period     int
	multiplier num.Num
}

func newExponential(src Indicator, period int, multiplier num.Num) *exponential {
	e := &exponential{RecursiveCached: nil, src: src, period: period, multiplier: multiplier}
	e.RecursiveCached = NewRecursiveCached(src.BarSeries(), max(period, src.UnstableBars()), e.calculate)

	return e
}

func (e *exponential) Period() int {
	return e.period
}

func (e *exponential) calculate(index int) (num.Num, error) {
	current, err := e.src.GetValue(index)
	if err != nil {
		return nil, err
	}

	if index <= e.series.BeginIndex() {
		return current, nil
	}

	previous, err := e.GetValue(index - 1)
	if err != nil {
		return nil, err
	}

	return previous.Plus(current.Minus(previous).Multiply(e.multiplier)), nil
}

// EMA is the exponential moving average with multiplier 2 / (period + 1).
type EMA struct {
	*exponential
}

func NewEMA(src Indicator, period int) (*EMA, error) {
	if err := checkPeriod("ema", period); err != nil {
		return nil, err
	}

	f := src.BarSeries().NumFactory()

	multiplier, err := f.Two().DividedBy(f.NumOfInt(int64(period + 1)))
	if err != nil {
		return nil, err
	}

	return &EMA{exponential: newExponential(src, period, multiplier)}, nil
}

// MMA is the modified (Wilder) moving average with multiplier 1 / period.
type MMA struct {
	*exponential
}

func NewMMA(src Indicator, period int) (*MMA, error) {
	if err := checkPeriod("mma", period); err != nil {
		return nil, err
	}

	f := src.BarSeries().NumFactory()

	multiplier, err := f.One().DividedBy(f.NumOfInt(int64(period)))
	if err != nil {
		return nil, err
	}

	return &MMA{exponential: newExponential(src, period, multiplier)}, nil
}
