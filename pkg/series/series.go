// Package series holds the bar sequences indicators are computed over.
//
// A BarSeries owns the NumFactory used for every value derived from it.
// Indices are absolute: after the oldest bars are evicted by the maximum bar
// count, index i still refers to the i-th bar ever added, and the retained
// window is [BeginIndex, EndIndex].
package series

import (
	"sync"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"go.uber.org/zap"
)

// DefaultName is used when a series is built without a name.
const DefaultName = "unnamed_series"

// BarSeries is an ordered sequence of bars sharing one NumFactory.
//
// Appending and tail updates take the write lock and reads take the read
// lock. The last bar is the open bar: it can be updated until the next bar
// is appended. TailRevision changes whenever that happens.
type BarSeries struct {
	mu sync.RWMutex

	name        string
	factory     num.NumFactory
	bars        []Bar
	maxBarCount int
	removed     int
	revision    uint64
	logger      *logger.Logger
}

func (s *BarSeries) Name() string {
	return s.name
}

// NumFactory returns the factory every value of the series must come from.
func (s *BarSeries) NumFactory() num.NumFactory {
	return s.factory
}

// AddBar appends bar as the new open bar. Its EndTime must be after the end
// time of the current last bar.
func (s *BarSeries) AddBar(bar Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(bar); err != nil {
		return err
	}

	if n := len(s.bars); n > 0 && !bar.EndTime.After(s.bars[n-1].EndTime) {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"cannot add a bar ending at %s to series %s ending at %s",
			bar.EndTime, s.name, s.bars[n-1].EndTime)
	}

	s.bars = append(s.bars, bar)
	s.revision++
	s.evict()

	return nil
}

// ReplaceLastBar replaces the open bar with bar.
func (s *BarSeries) ReplaceLastBar(bar Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(bar); err != nil {
		return err
	}

	n := len(s.bars)
	if n == 0 {
		return errors.Newf(errors.ErrCodeDataNotFound, "series %s has no bar to replace", s.name)
	}

	if n > 1 && !bar.EndTime.After(s.bars[n-2].EndTime) {
		return errors.Newf(errors.ErrCodeInvalidParameter,
			"replacement bar ending at %s does not follow %s", bar.EndTime, s.bars[n-2].EndTime)
	}

	s.bars[n-1] = bar
	s.revision++

	return nil
}

// AddPrice updates the close, high and low of the open bar.
func (s *BarSeries) AddPrice(price num.Num) error {
	return s.updateTail("add price", []num.Num{price}, func(b Bar) Bar {
		return b.withPrice(price)
	})
}

// AddTrade folds a trade of volume at price into the open bar.
func (s *BarSeries) AddTrade(volume, price num.Num) error {
	return s.updateTail("add trade", []num.Num{volume, price}, func(b Bar) Bar {
		return b.withTrade(volume, price)
	})
}

func (s *BarSeries) updateTail(op string, values []num.Num, update func(Bar) Bar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range values {
		if v == nil || !s.factory.Produces(v) {
			return s.foreign(op, v)
		}
	}

	n := len(s.bars)
	if n == 0 {
		return errors.Newf(errors.ErrCodeDataNotFound, "%s: series %s has no open bar", op, s.name)
	}

	s.bars[n-1] = update(s.bars[n-1])
	s.revision++

	return nil
}

// Bar returns the bar at absolute index i. Indices of evicted bars are
// redirected to the first retained bar.
func (s *BarSeries) Bar(i int) (Bar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bars) == 0 || i < 0 || i > s.endIndex() {
		return Bar{}, errors.IndexOutOfBounds(i, s.removed, s.endIndex())
	}

	if i < s.removed {
		s.logger.Debug("redirecting evicted bar index",
			zap.String("series", s.name),
			zap.Int("index", i),
			zap.Int("beginIndex", s.removed))

		return s.bars[0], nil
	}

	return s.bars[i-s.removed], nil
}

// FirstBar returns the first retained bar.
func (s *BarSeries) FirstBar() optional.Option[Bar] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bars) == 0 {
		return optional.None[Bar]()
	}

	return optional.Some(s.bars[0])
}

// LastBar returns the open bar.
func (s *BarSeries) LastBar() optional.Option[Bar] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.bars) == 0 {
		return optional.None[Bar]()
	}

	return optional.Some(s.bars[len(s.bars)-1])
}

// BarCount is the number of retained bars.
func (s *BarSeries) BarCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bars)
}

func (s *BarSeries) IsEmpty() bool {
	return s.BarCount() == 0
}

// BeginIndex is the absolute index of the first retained bar.
func (s *BarSeries) BeginIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.removed
}

// EndIndex is the absolute index of the open bar, or BeginIndex-1 when empty.
func (s *BarSeries) EndIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.endIndex()
}

func (s *BarSeries) endIndex() int {
	return s.removed + len(s.bars) - 1
}

// RemovedBarsCount is the number of bars evicted by the maximum bar count.
func (s *BarSeries) RemovedBarsCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.removed
}

// MaxBarCount returns the eviction limit; zero means unbounded.
func (s *BarSeries) MaxBarCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.maxBarCount
}

// SetMaxBarCount changes the eviction limit and evicts immediately if the
// series holds more bars.
func (s *BarSeries) SetMaxBarCount(maxBarCount int) error {
	if maxBarCount < 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "max bar count must not be negative, got %d", maxBarCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxBarCount = maxBarCount
	s.evict()

	return nil
}

// TailRevision identifies the current state of the open bar. It changes on
// every append, replacement and tail update.
func (s *BarSeries) TailRevision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.revision
}

// SubSeries returns a new series holding copies of the bars in [start, end).
// The bounds are clamped to the retained window and the new series starts
// at index 0.
func (s *BarSeries) SubSeries(start, end int) (*BarSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if start < s.removed {
		start = s.removed
	}

	if last := s.endIndex() + 1; end > last {
		end = last
	}

	if start >= end {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"sub series of %s needs start < end, got [%d, %d)", s.name, start, end)
	}

	bars := make([]Bar, end-start)
	copy(bars, s.bars[start-s.removed:end-s.removed])

	//nolint:exhaustruct
	return &BarSeries{
		name:        s.name,
		factory:     s.factory,
		bars:        bars,
		maxBarCount: s.maxBarCount,
		logger:      s.logger,
	}, nil
}

func (s *BarSeries) check(bar Bar) error {
	for _, v := range bar.nums() {
		if v != nil && !s.factory.Produces(v) {
			return s.foreign("add bar", v)
		}
	}

	return nil
}

func (s *BarSeries) foreign(op string, v num.Num) error {
	if v == nil {
		return errors.Newf(errors.ErrCodeInvalidOperand, "%s: nil num for series %s", op, s.name)
	}

	return errors.Newf(errors.ErrCodeInvalidOperand, "%s: %s num in %s series %s",
		op, v.Family(), s.factory.Family(), s.name)
}

// evict drops the oldest bars above the maximum bar count.
func (s *BarSeries) evict() {
	if s.maxBarCount <= 0 || len(s.bars) <= s.maxBarCount {
		return
	}

	n := len(s.bars) - s.maxBarCount
	s.bars = append(s.bars[:0:0], s.bars[n:]...)
	s.removed += n

	s.logger.Debug("evicted bars",
		zap.String("series", s.name),
		zap.Int("evicted", n),
		zap.Int("removedBarsCount", s.removed))
}
