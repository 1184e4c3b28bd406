// Package indicator implements a lazily evaluated, cached graph of technical
// indicators over a bar series.
//
// Every indicator maps an absolute bar index to a Num produced by the
// series' factory. Values are computed on first request and memoized; the
// value of the still open last bar is recomputed whenever the series reports
// a new tail revision.
//
// An indicator graph is owned by one goroutine at a time. Reads of cached
// closed-bar values are safe to share, first time queries are not.
package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// Indicator is a node in the computation graph.
type Indicator interface {
	// GetValue returns the value at the absolute bar index. Indices outside
	// [0, series.EndIndex()] fail with ErrCodeIndexOutOfBounds. Errors from
	// upstream indicators and from Num operations are returned unchanged.
	GetValue(index int) (num.Num, error)
	// UnstableBars is the number of leading indices whose value is defined
	// but does not yet reflect a full warm-up window.
	UnstableBars() int
	// BarSeries returns the series the indicator is computed over.
	BarSeries() *series.BarSeries
}

// Values returns the values of ind for every index in [from, to].
func Values(ind Indicator, from, to int) ([]num.Num, error) {
	if to < from {
		return nil, nil
	}

	out := make([]num.Num, 0, to-from+1)
	for i := from; i <= to; i++ {
		v, err := ind.GetValue(i)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Stable reports whether the value at index is past the warm-up window of ind.
func Stable(ind Indicator, index int) bool {
	return index >= ind.BarSeries().BeginIndex()+ind.UnstableBars()
}

func maxUnstable(indicators ...Indicator) int {
	m := 0
	for _, ind := range indicators {
		if u := ind.UnstableBars(); u > m {
			m = u
		}
	}

	return m
}
