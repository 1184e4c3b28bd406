package num

import (
	"math"
	"strconv"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// DoubleNum is a Num backed by a float64.
type DoubleNum float64

type doubleNumFactory struct{}

// DoubleNumFactory returns the factory producing DoubleNum values.
func DoubleNumFactory() NumFactory {
	return doubleNumFactory{}
}

func (doubleNumFactory) Zero() Num     { return DoubleNum(0) }
func (doubleNumFactory) One() Num      { return DoubleNum(1) }
func (doubleNumFactory) Two() Num      { return DoubleNum(2) }
func (doubleNumFactory) Three() Num    { return DoubleNum(3) }
func (doubleNumFactory) Hundred() Num  { return DoubleNum(100) }
func (doubleNumFactory) Thousand() Num { return DoubleNum(1000) }
func (doubleNumFactory) MinusOne() Num { return DoubleNum(-1) }

// NumOf panics on NaN and infinities so that comparisons stay a total order.
func (doubleNumFactory) NumOf(v float64) Num {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(errors.Newf(errors.ErrCodeInvalidParameter, "cannot represent %v as a double num", v))
	}

	return DoubleNum(v)
}

func (doubleNumFactory) NumOfInt(v int64) Num {
	return DoubleNum(float64(v))
}

func (doubleNumFactory) NumOfString(s string) (Num, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid number %q", s)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "invalid number %q", s)
	}

	return DoubleNum(v), nil
}

func (doubleNumFactory) Family() Family {
	return FamilyDouble
}

func (doubleNumFactory) Produces(n Num) bool {
	_, ok := n.(DoubleNum)

	return ok
}

func (n DoubleNum) operand(op string, other Num) DoubleNum {
	d, ok := other.(DoubleNum)
	if !ok {
		panic(invalidOperand(op, n, other))
	}

	return d
}

func (n DoubleNum) Plus(augend Num) Num {
	return n + n.operand("plus", augend)
}

func (n DoubleNum) Minus(subtrahend Num) Num {
	return n - n.operand("minus", subtrahend)
}

func (n DoubleNum) Multiply(multiplicand Num) Num {
	return n * n.operand("multiply", multiplicand)
}

func (n DoubleNum) DividedBy(divisor Num) (Num, error) {
	d, ok := divisor.(DoubleNum)
	if !ok {
		return nil, invalidOperand("divide", n, divisor)
	}

	if d == 0 {
		return nil, divisionByZero("divide", n)
	}

	return n / d, nil
}

func (n DoubleNum) Remainder(divisor Num) (Num, error) {
	d, ok := divisor.(DoubleNum)
	if !ok {
		return nil, invalidOperand("remainder", n, divisor)
	}

	if d == 0 {
		return nil, divisionByZero("remainder", n)
	}

	return DoubleNum(math.Mod(float64(n), float64(d))), nil
}

func (n DoubleNum) Pow(exponent Num) (Num, error) {
	return pow(n, exponent)
}

func (n DoubleNum) PowInt(exponent int) (Num, error) {
	return powInt(n, exponent)
}

func (n DoubleNum) Sqrt() (Num, error) {
	if n < 0 {
		return nil, domainError("sqrt", n)
	}

	return DoubleNum(math.Sqrt(float64(n))), nil
}

func (n DoubleNum) Log() (Num, error) {
	if n <= 0 {
		return nil, domainError("log", n)
	}

	return DoubleNum(math.Log(float64(n))), nil
}

func (n DoubleNum) Exp() (Num, error) {
	v := math.Exp(float64(n))
	if math.IsInf(v, 0) {
		return nil, domainError("exp", n)
	}

	return DoubleNum(v), nil
}

func (n DoubleNum) Abs() Num {
	return DoubleNum(math.Abs(float64(n)))
}

func (n DoubleNum) Negate() Num {
	return -n
}

func (n DoubleNum) Min(other Num) Num {
	if d := n.operand("min", other); d < n {
		return d
	}

	return n
}

func (n DoubleNum) Max(other Num) Num {
	if d := n.operand("max", other); d > n {
		return d
	}

	return n
}

func (n DoubleNum) Floor() Num {
	return DoubleNum(math.Floor(float64(n)))
}

func (n DoubleNum) Ceil() Num {
	return DoubleNum(math.Ceil(float64(n)))
}

func (n DoubleNum) Compare(other Num) int {
	d := n.operand("compare", other)

	switch {
	case n < d:
		return -1
	case n > d:
		return 1
	default:
		return 0
	}
}

func (n DoubleNum) IsEqual(other Num) bool              { return n.Compare(other) == 0 }
func (n DoubleNum) IsGreaterThan(other Num) bool        { return n.Compare(other) > 0 }
func (n DoubleNum) IsGreaterThanOrEqual(other Num) bool { return n.Compare(other) >= 0 }
func (n DoubleNum) IsLessThan(other Num) bool           { return n.Compare(other) < 0 }
func (n DoubleNum) IsLessThanOrEqual(other Num) bool    { return n.Compare(other) <= 0 }

func (n DoubleNum) IsZero() bool           { return n == 0 }
func (n DoubleNum) IsPositive() bool       { return n > 0 }
func (n DoubleNum) IsPositiveOrZero() bool { return n >= 0 }
func (n DoubleNum) IsNegative() bool       { return n < 0 }
func (n DoubleNum) IsNegativeOrZero() bool { return n <= 0 }

func (n DoubleNum) Sign() int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func (n DoubleNum) Float64() float64 {
	return float64(n)
}

func (n DoubleNum) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (n DoubleNum) Family() Family {
	return FamilyDouble
}

func (n DoubleNum) Factory() NumFactory {
	return doubleNumFactory{}
}
