package num

import (
	"math"
	"sync"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of significant digits kept by DecimalNum
// when no precision is configured.
const DefaultPrecision = 32

// guardDigits are carried by transcendental operations before the final rounding.
const guardDigits = 4

// DecimalNum is an arbitrary precision Num. Every result is rounded half up
// (half away from zero) to the precision of its factory, counted in
// significant digits.
type DecimalNum struct {
	delegate  decimal.Decimal
	precision int32
}

type decimalNumFactory struct {
	precision int32

	zero, one, two, three, hundred, thousand, minusOne DecimalNum
}

var decimalFactories sync.Map

// DecimalNumFactory returns the factory producing DecimalNum values rounded to
// the given number of significant digits. A non-positive precision selects
// DefaultPrecision. Factories are shared per precision.
func DecimalNumFactory(precision int) NumFactory {
	p := int32(precision)
	if p <= 0 {
		p = DefaultPrecision
	}

	if f, ok := decimalFactories.Load(p); ok {
		return f.(*decimalNumFactory)
	}

	constant := func(v int64) DecimalNum {
		return DecimalNum{delegate: decimal.NewFromInt(v), precision: p}
	}

	f, _ := decimalFactories.LoadOrStore(p, &decimalNumFactory{
		precision: p,
		zero:      constant(0),
		one:       constant(1),
		two:       constant(2),
		three:     constant(3),
		hundred:   constant(100),
		thousand:  constant(1000),
		minusOne:  constant(-1),
	})

	return f.(*decimalNumFactory)
}

func (f decimalNumFactory) Zero() Num     { return f.zero }
func (f decimalNumFactory) One() Num      { return f.one }
func (f decimalNumFactory) Two() Num      { return f.two }
func (f decimalNumFactory) Three() Num    { return f.three }
func (f decimalNumFactory) Hundred() Num  { return f.hundred }
func (f decimalNumFactory) Thousand() Num { return f.thousand }
func (f decimalNumFactory) MinusOne() Num { return f.minusOne }

// NumOf converts v using its shortest decimal representation, so 0.1 becomes
// exactly 0.1. It panics on NaN and infinities, which have no decimal form.
func (f decimalNumFactory) NumOf(v float64) Num {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(errors.Newf(errors.ErrCodeInvalidParameter, "cannot represent %v as a decimal num", v))
	}

	return newDecimal(decimal.NewFromFloat(v), f.precision)
}

func (f decimalNumFactory) NumOfInt(v int64) Num {
	return newDecimal(decimal.NewFromInt(v), f.precision)
}

func (f decimalNumFactory) NumOfString(s string) (Num, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid number %q", s)
	}

	return newDecimal(d, f.precision), nil
}

func (f decimalNumFactory) Family() Family {
	return FamilyDecimal
}

func (f decimalNumFactory) Produces(n Num) bool {
	_, ok := n.(DecimalNum)

	return ok
}

// Precision returns the number of significant digits of the factory.
func (f decimalNumFactory) Precision() int {
	return int(f.precision)
}

func newDecimal(d decimal.Decimal, precision int32) DecimalNum {
	return DecimalNum{delegate: roundSignificant(d, precision), precision: precision}
}

// magnitude is the position of the most significant digit relative to the
// decimal point: 123.4 -> 3, 0.012 -> -1.
func magnitude(d decimal.Decimal) int32 {
	return int32(d.NumDigits()) + d.Exponent()
}

func roundSignificant(d decimal.Decimal, precision int32) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}

	places := precision - magnitude(d)
	if d.Exponent() >= -places {
		return d
	}

	return d.Round(places)
}

// divide rounds the exact quotient once, to precision significant digits.
func divide(a, b decimal.Decimal, precision int32) decimal.Decimal {
	if a.IsZero() {
		return decimal.Zero
	}

	places := precision - (magnitude(a) - magnitude(b)) - 1
	q := a.DivRound(b, places)
	if magnitude(q)+places < precision {
		q = a.DivRound(b, places+1)
	}

	return q
}

func (n DecimalNum) prec() int32 {
	if n.precision <= 0 {
		return DefaultPrecision
	}

	return n.precision
}

func (n DecimalNum) wrap(d decimal.Decimal) DecimalNum {
	return newDecimal(d, n.prec())
}

func (n DecimalNum) operand(op string, other Num) decimal.Decimal {
	d, ok := other.(DecimalNum)
	if !ok {
		panic(invalidOperand(op, n, other))
	}

	return d.delegate
}

// Decimal returns the underlying decimal value.
func (n DecimalNum) Decimal() decimal.Decimal {
	return n.delegate
}

func (n DecimalNum) Plus(augend Num) Num {
	return n.wrap(n.delegate.Add(n.operand("plus", augend)))
}

func (n DecimalNum) Minus(subtrahend Num) Num {
	return n.wrap(n.delegate.Sub(n.operand("minus", subtrahend)))
}

func (n DecimalNum) Multiply(multiplicand Num) Num {
	return n.wrap(n.delegate.Mul(n.operand("multiply", multiplicand)))
}

func (n DecimalNum) DividedBy(divisor Num) (Num, error) {
	d, ok := divisor.(DecimalNum)
	if !ok {
		return nil, invalidOperand("divide", n, divisor)
	}

	if d.delegate.IsZero() {
		return nil, divisionByZero("divide", n)
	}

	return n.wrap(divide(n.delegate, d.delegate, n.prec())), nil
}

func (n DecimalNum) Remainder(divisor Num) (Num, error) {
	d, ok := divisor.(DecimalNum)
	if !ok {
		return nil, invalidOperand("remainder", n, divisor)
	}

	if d.delegate.IsZero() {
		return nil, divisionByZero("remainder", n)
	}

	return n.wrap(n.delegate.Mod(d.delegate)), nil
}

func (n DecimalNum) Pow(exponent Num) (Num, error) {
	return pow(n, exponent)
}

func (n DecimalNum) PowInt(exponent int) (Num, error) {
	return powInt(n, exponent)
}

// Sqrt uses Newton's iteration seeded from the float64 square root.
func (n DecimalNum) Sqrt() (Num, error) {
	if n.delegate.IsNegative() {
		return nil, domainError("sqrt", n)
	}

	if n.delegate.IsZero() {
		return n.wrap(decimal.Zero), nil
	}

	work := n.prec() + guardDigits
	two := decimal.NewFromInt(2)

	x := n.delegate
	if seed := math.Sqrt(n.delegate.InexactFloat64()); seed > 0 && !math.IsInf(seed, 0) {
		x = decimal.NewFromFloat(seed)
	}

	for i := 0; i < 100; i++ {
		next := roundSignificant(divide(x.Add(divide(n.delegate, x, work)), two, work), work)
		if next.Equal(x) {
			break
		}

		x = next
	}

	return n.wrap(x), nil
}

func (n DecimalNum) Log() (Num, error) {
	if !n.delegate.IsPositive() {
		return nil, domainError("log", n)
	}

	if n.delegate.Equal(decimal.NewFromInt(1)) {
		return n.wrap(decimal.Zero), nil
	}

	places := n.prec() + guardDigits
	// ln(x) is close to x-1 near one, so more places are needed there.
	if delta := n.delegate.Sub(decimal.NewFromInt(1)); !delta.IsZero() && magnitude(delta) < 0 {
		places -= magnitude(delta)
	}

	ln, err := n.delegate.Ln(places)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDomainError, "log of "+n.String(), err)
	}

	return n.wrap(ln), nil
}

func (n DecimalNum) Exp() (Num, error) {
	if n.delegate.IsZero() {
		return n.wrap(decimal.NewFromInt(1)), nil
	}

	exp, err := n.delegate.Abs().ExpHullAbrham(uint32(n.prec() + guardDigits))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDomainError, "exp of "+n.String(), err)
	}

	if n.delegate.IsNegative() {
		exp = divide(decimal.NewFromInt(1), exp, n.prec()+guardDigits)
	}

	return n.wrap(exp), nil
}

func (n DecimalNum) Abs() Num {
	return DecimalNum{delegate: n.delegate.Abs(), precision: n.prec()}
}

func (n DecimalNum) Negate() Num {
	return DecimalNum{delegate: n.delegate.Neg(), precision: n.prec()}
}

func (n DecimalNum) Min(other Num) Num {
	if n.delegate.Cmp(n.operand("min", other)) > 0 {
		return other
	}

	return n
}

func (n DecimalNum) Max(other Num) Num {
	if n.delegate.Cmp(n.operand("max", other)) < 0 {
		return other
	}

	return n
}

func (n DecimalNum) Floor() Num {
	return n.wrap(n.delegate.Floor())
}

func (n DecimalNum) Ceil() Num {
	return n.wrap(n.delegate.Ceil())
}

func (n DecimalNum) Compare(other Num) int {
	return n.delegate.Cmp(n.operand("compare", other))
}

func (n DecimalNum) IsEqual(other Num) bool              { return n.Compare(other) == 0 }
func (n DecimalNum) IsGreaterThan(other Num) bool        { return n.Compare(other) > 0 }
func (n DecimalNum) IsGreaterThanOrEqual(other Num) bool { return n.Compare(other) >= 0 }
func (n DecimalNum) IsLessThan(other Num) bool           { return n.Compare(other) < 0 }
func (n DecimalNum) IsLessThanOrEqual(other Num) bool    { return n.Compare(other) <= 0 }

func (n DecimalNum) IsZero() bool           { return n.delegate.IsZero() }
func (n DecimalNum) IsPositive() bool       { return n.delegate.IsPositive() }
func (n DecimalNum) IsPositiveOrZero() bool { return !n.delegate.IsNegative() }
func (n DecimalNum) IsNegative() bool       { return n.delegate.IsNegative() }
func (n DecimalNum) IsNegativeOrZero() bool { return !n.delegate.IsPositive() }
func (n DecimalNum) Sign() int              { return n.delegate.Sign() }

func (n DecimalNum) Float64() float64 {
	return n.delegate.InexactFloat64()
}

func (n DecimalNum) String() string {
	return n.delegate.String()
}

func (n DecimalNum) Family() Family {
	return FamilyDecimal
}

func (n DecimalNum) Factory() NumFactory {
	return DecimalNumFactory(int(n.prec()))
}
