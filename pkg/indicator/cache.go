package indicator

import (
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// RecursionThreshold is the largest gap between a requested index and the
// highest computed index a RecursiveCached indicator resolves by recursion.
// Larger gaps are filled iteratively first.
const RecursionThreshold = 100

// Calculator computes the uncached value at index.
type Calculator func(index int) (num.Num, error)

type entry struct {
	value num.Num
	// revision is the tail revision the value was computed at, for values of
	// the open bar only.
	revision uint64
	open     bool
}

// Cached memoizes a Calculator per bar index. Concrete indicators embed it
// and supply their calculation at construction time.
type Cached struct {
	series    *series.BarSeries
	calculate Calculator
	unstable  int

	values  map[int]entry
	highest int
	pruned  int
}

// NewCached creates a cached indicator over s with the given warm-up length.
func NewCached(s *series.BarSeries, unstable int, calculate Calculator) *Cached {
	return &Cached{
		series:    s,
		calculate: calculate,
		unstable:  unstable,
		values:    make(map[int]entry),
		highest:   -1,
		pruned:    0,
	}
}

func (c *Cached) BarSeries() *series.BarSeries {
	return c.series
}

func (c *Cached) UnstableBars() int {
	return c.unstable
}

// GetValue returns the memoized value at index, computing it on first use.
// The open bar's value is recomputed once its tail revision is stale.
func (c *Cached) GetValue(index int) (num.Num, error) {
	end := c.series.EndIndex()
	if index < 0 || index > end {
		return nil, errors.IndexOutOfBounds(index, c.series.BeginIndex(), end)
	}

	c.prune()

	revision := c.series.TailRevision()
	if e, ok := c.values[index]; ok && (!e.open || e.revision == revision) {
		return e.value, nil
	}

	v, err := c.calculate(index)
	if err != nil {
		return nil, err
	}

	c.values[index] = entry{value: v, revision: revision, open: index == end}
	if index > c.highest {
		c.highest = index
	}

	return v, nil
}

// prune drops values of evicted bars.
func (c *Cached) prune() {
	begin := c.series.BeginIndex()
	if begin <= c.pruned {
		return
	}

	for i := range c.values {
		if i < begin {
			delete(c.values, i)
		}
	}

	c.pruned = begin
}

// RecursiveCached is a Cached indicator whose value at index depends on its
// own value at index-1. Large gaps are filled from the highest computed index
// upwards so the recursion depth stays below RecursionThreshold.
type RecursiveCached struct {
	*Cached
}

func NewRecursiveCached(s *series.BarSeries, unstable int, calculate Calculator) *RecursiveCached {
	return &RecursiveCached{Cached: NewCached(s, unstable, calculate)}
}

func (r *RecursiveCached) GetValue(index int) (num.Num, error) {
	if index <= r.series.EndIndex() {
		start := r.series.BeginIndex()
		if r.highest > start {
			start = r.highest
		}

		if index-start > RecursionThreshold {
			for i := start; i < index; i++ {
				if _, err := r.Cached.GetValue(i); err != nil {
					return nil, err
				}
			}
		}
	}

	return r.Cached.GetValue(index)
}
