package series

import (
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
)

// Builder configures and creates a BarSeries.
type Builder struct {
	name        string
	factory     num.NumFactory
	maxBarCount int
	logger      *logger.Logger
	bars        []Bar
}

// NewBuilder creates a builder for a decimal series with the default precision.
func NewBuilder() *Builder {
	//nolint:exhaustruct
	return &Builder{
		name:    DefaultName,
		factory: num.DecimalNumFactory(num.DefaultPrecision),
	}
}

func (b *Builder) WithName(name string) *Builder {
	b.name = name

	return b
}

// WithNumFactory selects the numeric backing of the series.
func (b *Builder) WithNumFactory(factory num.NumFactory) *Builder {
	b.factory = factory

	return b
}

// WithMaxBarCount bounds the number of retained bars; zero keeps every bar.
func (b *Builder) WithMaxBarCount(maxBarCount int) *Builder {
	b.maxBarCount = maxBarCount

	return b
}

func (b *Builder) WithLogger(l *logger.Logger) *Builder {
	b.logger = l

	return b
}

// WithBars adds initial bars, appended in order by Build.
func (b *Builder) WithBars(bars ...Bar) *Builder {
	b.bars = append(b.bars, bars...)

	return b
}

// Build creates the series and appends the initial bars.
func (b *Builder) Build() (*BarSeries, error) {
	if b.factory == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "num factory is required")
	}

	if b.maxBarCount < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "max bar count must not be negative, got %d", b.maxBarCount)
	}

	name := b.name
	if name == "" {
		name = DefaultName
	}

	l := b.logger
	if l == nil {
		l = logger.NewNopLogger()
	}

	//nolint:exhaustruct
	s := &BarSeries{
		name:        name,
		factory:     b.factory,
		bars:        make([]Bar, 0, len(b.bars)),
		maxBarCount: b.maxBarCount,
		logger:      l.Named("series"),
	}

	for _, bar := range b.bars {
		if err := s.AddBar(bar); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// MustBuild is like Build but panics on error. Intended for tests and fixtures.
func (b *Builder) MustBuild() *BarSeries {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}

	return s
}
