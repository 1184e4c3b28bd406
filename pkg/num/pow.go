package num

import (
	"math"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// pow implements the exponent rules shared by every family:
//
//	0^y = 0 for y > 0, undefined for y <= 0
//	x^0 = 1, 1^y = 1
//	integral y: exponentiation by squaring
//	fractional y: exp(y * ln(x)), x > 0
func pow(base, exponent Num) (Num, error) {
	if !Compatible(base, exponent) {
		return nil, invalidOperand("pow", base, exponent)
	}

	f := base.Factory()
	if base.IsZero() {
		if exponent.IsPositive() {
			return f.Zero(), nil
		}

		return nil, errors.Newf(errors.ErrCodeDivisionByZero, "pow: 0 raised to %s", exponent.String())
	}

	if exponent.IsZero() || base.IsEqual(f.One()) {
		return f.One(), nil
	}

	if n, ok := integral(exponent); ok {
		return base.PowInt(n)
	}

	if base.IsNegative() {
		return nil, errors.Newf(errors.ErrCodeDomainError, "pow: negative base %s with fractional exponent %s", base.String(), exponent.String())
	}

	ln, err := base.Log()
	if err != nil {
		return nil, err
	}

	return exponent.Multiply(ln).Exp()
}

// integral returns exponent as an int when it has no fractional part and fits
// the range exponentiation by squaring is used for.
func integral(exponent Num) (int, bool) {
	if !exponent.Floor().IsEqual(exponent) {
		return 0, false
	}

	f := exponent.Float64()
	if math.Abs(f) > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}

func powInt(base Num, n int) (Num, error) {
	f := base.Factory()
	if base.IsZero() && n <= 0 {
		return nil, errors.Newf(errors.ErrCodeDivisionByZero, "pow: 0 raised to %d", n)
	}

	if n == 0 {
		return f.One(), nil
	}

	negative := n < 0
	if negative {
		n = -n
	}

	result := f.One()
	square := base

	for n > 0 {
		if n&1 == 1 {
			result = result.Multiply(square)
		}

		n >>= 1
		if n > 0 {
			square = square.Multiply(square)
		}
	}

	if negative {
		return f.One().DividedBy(result)
	}

	return result, nil
}
