package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
)

// BinaryOperator combines the values of two indicators at the same index.
type BinaryOperator func(a, b num.Num) (num.Num, error)

var (
	Plus BinaryOperator = func(a, b num.Num) (num.Num, error) {
		return a.Plus(b), nil
	}
	Minus BinaryOperator = func(a, b num.Num) (num.Num, error) {
		return a.Minus(b), nil
	}
	Multiply BinaryOperator = func(a, b num.Num) (num.Num, error) {
		return a.Multiply(b), nil
	}
	Divide BinaryOperator = func(a, b num.Num) (num.Num, error) {
		return a.DividedBy(b)
	}
	Max BinaryOperator = func(a, b num.Num) (num.Num, error) {
		return a.Max(b), nil
	}
	Min BinaryOperator = func(a, b num.Num) (num.Num, error) {
		return a.Min(b), nil
	}
)

// Combine applies a BinaryOperator to two indicators of the same series.
type Combine struct {
	*Cached
	left, right Indicator
	op          BinaryOperator
}

// NewCombine creates a combinator. Both operands must be built on the same
// series, otherwise the result would mix factories.
func NewCombine(left, right Indicator, op BinaryOperator) (*Combine, error) {
	if left.BarSeries() != right.BarSeries() {
		return nil, errors.New(errors.ErrCodeInvalidOperand, "combine: operands belong to different series")
	}

	c := &Combine{Cached: nil, left: left, right: right, op: op}
	c.Cached = NewCached(left.BarSeries(), maxUnstable(left, right), c.calculate)

	return c, nil
}

func (c *Combine) calculate(index int) (num.Num, error) {
	a, err := c.left.GetValue(index)
	if err != nil {
		return nil, err
	}

	b, err := c.right.GetValue(index)
	if err != nil {
		return nil, err
	}

	return c.op(a, b)
}

// UnaryOperator maps one value.
type UnaryOperator func(v num.Num) (num.Num, error)

var (
	Abs UnaryOperator = func(v num.Num) (num.Num, error) {
		return v.Abs(), nil
	}
	Negate UnaryOperator = func(v num.Num) (num.Num, error) {
		return v.Negate(), nil
	}
	Sqrt UnaryOperator = func(v num.Num) (num.Num, error) {
		return v.Sqrt()
	}
	Log UnaryOperator = func(v num.Num) (num.Num, error) {
		return v.Log()
	}
)

func PlusConst(c num.Num) UnaryOperator {
	return func(v num.Num) (num.Num, error) { return v.Plus(c), nil }
}

func MinusConst(c num.Num) UnaryOperator {
	return func(v num.Num) (num.Num, error) { return v.Minus(c), nil }
}

func MultiplyConst(c num.Num) UnaryOperator {
	return func(v num.Num) (num.Num, error) { return v.Multiply(c), nil }
}

func DivideConst(c num.Num) UnaryOperator {
	return func(v num.Num) (num.Num, error) { return v.DividedBy(c) }
}

func MinConst(c num.Num) UnaryOperator {
	return func(v num.Num) (num.Num, error) { return v.Min(c), nil }
}

func MaxConst(c num.Num) UnaryOperator {
	return func(v num.Num) (num.Num, error) { return v.Max(c), nil }
}

// Transform applies a UnaryOperator to every value of an indicator.
type Transform struct {
	*Cached
	src Indicator
	op  UnaryOperator
}

func NewTransform(src Indicator, op UnaryOperator) *Transform {
	t := &Transform{Cached: nil, src: src, op: op}
	t.Cached = NewCached(src.BarSeries(), src.UnstableBars(), t.calculate)

	return t
}

func (t *Transform) calculate(index int) (num.Num, error) {
	v, err := t.src.GetValue(index)
	if err != nil {
		return nil, err
	}

	return t.op(v)
}
