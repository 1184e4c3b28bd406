// Package num provides the numeric abstraction shared by bar series,
// indicators and criteria.
//
// A Num is an immutable value produced by a NumFactory. Two families exist: a
// float64 backed DoubleNum and an arbitrary precision DecimalNum. Every Num
// taking part in one operation must belong to the same family. Operations
// that return an error report mixing as ErrCodeInvalidOperand; the chainable
// operations (Plus, Minus, Multiply, Min, Max and comparisons) panic with the
// same coded error, since mixing families is a programming error.
package num

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Family identifies the backing representation of a Num.
type Family int

const (
	FamilyDouble Family = iota + 1
	FamilyDecimal
)

func (f Family) String() string {
	switch f {
	case FamilyDouble:
		return "double"
	case FamilyDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// Num is an immutable numeric value.
type Num interface {
	Plus(augend Num) Num
	Minus(subtrahend Num) Num
	Multiply(multiplicand Num) Num
	// DividedBy fails with ErrCodeDivisionByZero when divisor is zero.
	DividedBy(divisor Num) (Num, error)
	Remainder(divisor Num) (Num, error)
	// Pow raises the receiver to exponent. Fractional exponents are computed
	// as exp(exponent * ln(receiver)) and require a positive receiver.
	Pow(exponent Num) (Num, error)
	PowInt(n int) (Num, error)
	Sqrt() (Num, error)
	// Log is the natural logarithm.
	Log() (Num, error)
	Exp() (Num, error)
	Abs() Num
	Negate() Num
	Min(other Num) Num
	Max(other Num) Num
	Floor() Num
	Ceil() Num

	// Compare returns -1, 0 or +1.
	Compare(other Num) int
	IsEqual(other Num) bool
	IsGreaterThan(other Num) bool
	IsGreaterThanOrEqual(other Num) bool
	IsLessThan(other Num) bool
	IsLessThanOrEqual(other Num) bool

	IsZero() bool
	IsPositive() bool
	IsPositiveOrZero() bool
	IsNegative() bool
	IsNegativeOrZero() bool
	Sign() int

	Float64() float64
	String() string
	Family() Family
	Factory() NumFactory
}

// NumFactory creates Nums of one family. A bar series owns exactly one
// factory and every value derived from the series comes from it.
type NumFactory interface {
	Zero() Num
	One() Num
	Two() Num
	Three() Num
	Hundred() Num
	Thousand() Num
	MinusOne() Num
	NumOf(v float64) Num
	NumOfInt(v int64) Num
	NumOfString(s string) (Num, error)
	Family() Family
	// Produces reports whether n belongs to the factory's family.
	Produces(n Num) bool
}

// Compatible reports whether a and b can take part in the same operation.
func Compatible(a, b Num) bool {
	return a != nil && b != nil && a.Family() == b.Family()
}

func invalidOperand(op string, a, b Num) *errors.Error {
	if b == nil {
		return errors.Newf(errors.ErrCodeInvalidOperand, "%s: nil operand for %s num", op, a.Family())
	}

	return errors.Newf(errors.ErrCodeInvalidOperand, "%s: cannot combine %s and %s nums", op, a.Family(), b.Family())
}

func divisionByZero(op string, n Num) *errors.Error {
	return errors.Newf(errors.ErrCodeDivisionByZero, "%s: %s by zero", op, n.String())
}

func domainError(op string, n Num) *errors.Error {
	return errors.Newf(errors.ErrCodeDomainError, "%s undefined for %s", op, n.String())
}
