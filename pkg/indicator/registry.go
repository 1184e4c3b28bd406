package indicator

import (
	"sort"
	"sync"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// IndicatorType names an indicator constructor in a Registry.
type IndicatorType string

const (
	IndicatorTypeClose           IndicatorType = "close"
	IndicatorTypeOpen            IndicatorType = "open"
	IndicatorTypeHigh            IndicatorType = "high"
	IndicatorTypeLow             IndicatorType = "low"
	IndicatorTypeVolume          IndicatorType = "volume"
	IndicatorTypeAmount          IndicatorType = "amount"
	IndicatorTypeTypical         IndicatorType = "typical"
	IndicatorTypeMedian          IndicatorType = "median"
	IndicatorTypeSMA             IndicatorType = "sma"
	IndicatorTypeEMA             IndicatorType = "ema"
	IndicatorTypeMMA             IndicatorType = "mma"
	IndicatorTypeRSI             IndicatorType = "rsi"
	IndicatorTypeTrueRange       IndicatorType = "tr"
	IndicatorTypeATR             IndicatorType = "atr"
	IndicatorTypeChange          IndicatorType = "change"
	IndicatorTypeROC             IndicatorType = "roc"
	IndicatorTypePrevious        IndicatorType = "previous"
	IndicatorTypeSum             IndicatorType = "sum"
	IndicatorTypeHighest         IndicatorType = "highest"
	IndicatorTypeLowest          IndicatorType = "lowest"
	IndicatorTypeVariance        IndicatorType = "variance"
	IndicatorTypeSD              IndicatorType = "sd"
	IndicatorTypeMACD            IndicatorType = "macd"
	IndicatorTypeMACDSignal      IndicatorType = "macd_signal"
	IndicatorTypeMACDHistogram   IndicatorType = "macd_histogram"
	IndicatorTypeBollingerMiddle IndicatorType = "bb_middle"
	IndicatorTypeBollingerUpper  IndicatorType = "bb_upper"
	IndicatorTypeBollingerLower  IndicatorType = "bb_lower"
)

// Params configures an indicator created through a Registry. Source is the
// indicator the new one is computed from; nil selects the close price.
type Params struct {
	Source     Indicator
	Period     int
	Period2    int
	Period3    int
	Multiplier float64
}

func (p Params) source(s *series.BarSeries) Indicator {
	if p.Source != nil {
		return p.Source
	}

	return NewClosePrice(s)
}

// Constructor creates an indicator over s.
type Constructor func(s *series.BarSeries, p Params) (Indicator, error)

// Registry maps indicator types to constructors.
type Registry interface {
	Register(name IndicatorType, constructor Constructor) error
	Create(name IndicatorType, s *series.BarSeries, p Params) (Indicator, error)
	List() []IndicatorType
	Remove(name IndicatorType) error
}

// RegistryV1 is a Registry safe for concurrent use.
type RegistryV1 struct {
	constructors map[IndicatorType]Constructor
	mu           sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() Registry {
	return &RegistryV1{
		constructors: make(map[IndicatorType]Constructor),
		mu:           sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry holding every built-in indicator.
func NewDefaultRegistry() Registry {
	r := &RegistryV1{
		constructors: builtins(),
		mu:           sync.RWMutex{},
	}

	return r
}

// Register adds a constructor to the registry.
func (r *RegistryV1) Register(name IndicatorType, constructor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; exists {
		return errors.Newf(errors.ErrCodeIndicatorAlreadyExists, "indicator %s already registered", name)
	}

	r.constructors[name] = constructor

	return nil
}

// Create builds an indicator of the named type.
func (r *RegistryV1) Create(name IndicatorType, s *series.BarSeries, p Params) (Indicator, error) {
	r.mu.RLock()
	constructor, exists := r.constructors[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s not found", name)
	}

	if p.Source != nil && p.Source.BarSeries() != s {
		return nil, errors.Newf(errors.ErrCodeInvalidOperand, "%s: source belongs to a different series", name)
	}

	return constructor(s, p)
}

// List returns the registered indicator types in lexical order.
func (r *RegistryV1) List() []IndicatorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]IndicatorType, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// Remove removes a constructor from the registry.
func (r *RegistryV1) Remove(name IndicatorType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[name]; !exists {
		return errors.Newf(errors.ErrCodeIndicatorNotFound, "indicator %s not found", name)
	}

	delete(r.constructors, name)

	return nil
}

func price(newPrice func(*series.BarSeries) *Price) Constructor {
	return func(s *series.BarSeries, _ Params) (Indicator, error) {
		return newPrice(s), nil
	}
}

// periodic adapts a constructor of the form NewX(src, period).
func periodic[T Indicator](create func(Indicator, int) (T, error)) Constructor {
	return func(s *series.BarSeries, p Params) (Indicator, error) {
		return created(create(p.source(s), p.Period))
	}
}

// created converts a concrete constructor result, keeping a nil Indicator on error.
func created[T Indicator](ind T, err error) (Indicator, error) {
	if err != nil {
		return nil, err
	}

	return ind, nil
}

func builtins() map[IndicatorType]Constructor {
	return map[IndicatorType]Constructor{
		IndicatorTypeClose:    price(NewClosePrice),
		IndicatorTypeOpen:     price(NewOpenPrice),
		IndicatorTypeHigh:     price(NewHighPrice),
		IndicatorTypeLow:      price(NewLowPrice),
		IndicatorTypeVolume:   price(NewVolume),
		IndicatorTypeAmount:   price(NewAmount),
		IndicatorTypeTypical:  price(NewTypicalPrice),
		IndicatorTypeMedian:   price(NewMedianPrice),
		IndicatorTypeSMA:      periodic(NewSMA),
		IndicatorTypeEMA:      periodic(NewEMA),
		IndicatorTypeMMA:      periodic(NewMMA),
		IndicatorTypeRSI:      periodic(NewRSI),
		IndicatorTypeChange:   periodic(NewChange),
		IndicatorTypeROC:      periodic(NewROC),
		IndicatorTypePrevious: periodic(NewPrevious),
		IndicatorTypeSum:      periodic(NewSum),
		IndicatorTypeHighest:  periodic(NewHighest),
		IndicatorTypeLowest:   periodic(NewLowest),
		IndicatorTypeVariance: periodic(NewVariance),
		IndicatorTypeSD:       periodic(NewStandardDeviation),
		IndicatorTypeTrueRange: func(s *series.BarSeries, _ Params) (Indicator, error) {
			return NewTrueRange(s), nil
		},
		IndicatorTypeATR: func(s *series.BarSeries, p Params) (Indicator, error) {
			return created(NewATR(s, p.Period))
		},
		IndicatorTypeMACD: func(s *series.BarSeries, p Params) (Indicator, error) {
			return created(NewMACD(p.source(s), p.Period, p.Period2))
		},
		IndicatorTypeMACDSignal: func(s *series.BarSeries, p Params) (Indicator, error) {
			m, err := NewMACD(p.source(s), p.Period, p.Period2)
			if err != nil {
				return nil, err
			}

			return created(m.Signal(p.Period3))
		},
		IndicatorTypeMACDHistogram: func(s *series.BarSeries, p Params) (Indicator, error) {
			m, err := NewMACD(p.source(s), p.Period, p.Period2)
			if err != nil {
				return nil, err
			}

			return created(m.Histogram(p.Period3))
		},
		IndicatorTypeBollingerMiddle: bollinger(func(b *BollingerBands) Indicator { return b.Middle }),
		IndicatorTypeBollingerUpper:  bollinger(func(b *BollingerBands) Indicator { return b.Upper }),
		IndicatorTypeBollingerLower:  bollinger(func(b *BollingerBands) Indicator { return b.Lower }),
	}
}

func bollinger(band func(*BollingerBands) Indicator) Constructor {
	return func(s *series.BarSeries, p Params) (Indicator, error) {
		k := p.Multiplier
		if k == 0 {
			k = 2
		}

		b, err := NewBollingerBands(p.source(s), p.Period, s.NumFactory().NumOf(k))
		if err != nil {
			return nil, err
		}

		return band(b), nil
	}
}
