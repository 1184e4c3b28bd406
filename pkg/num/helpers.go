package num

// Sum adds values starting from f.Zero().
func Sum(f NumFactory, values []Num) Num {
	s := f.Zero()
	for _, value := range values {
		s = s.Plus(value)
	}

	return s
}

// Average returns the arithmetic mean of values, or zero for an empty slice.
func Average(f NumFactory, values []Num) (Num, error) {
	if len(values) == 0 {
		return f.Zero(), nil
	}

	return Sum(f, values).DividedBy(f.NumOfInt(int64(len(values))))
}

// MaxOf returns the largest of values, or nil when values is empty.
func MaxOf(values ...Num) Num {
	var m Num
	for _, v := range values {
		if m == nil || v.IsGreaterThan(m) {
			m = v
		}
	}

	return m
}

// MinOf returns the smallest of values, or nil when values is empty.
func MinOf(values ...Num) Num {
	var m Num
	for _, v := range values {
		if m == nil || v.IsLessThan(m) {
			m = v
		}
	}

	return m
}

type Tester func(value Num) bool

func PositiveTester(value Num) bool {
	return value.IsPositive()
}

func NegativeTester(value Num) bool {
	return value.IsNegative()
}

func Filter(values []Num, f Tester) (slice []Num) {
	for _, v := range values {
		if f(v) {
			slice = append(slice, v)
		}
	}

	return slice
}
