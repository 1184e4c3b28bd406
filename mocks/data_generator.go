package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// DataGenerator generates realistic bars for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// Name is the name of the generated series
	Name string
	// StartTime is the begin time of the first bar
	StartTime time.Time
	// Interval is the period of each bar
	Interval time.Duration
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical volatility per bar)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Name:           "TEST",
		StartTime:      time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          10000,
		InitialPrice:   100.0,
		Volatility:     0.002, // 0.2% per bar
		Trend:          0.0,   // neutral
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// Generate creates bars whose values come from factory.
// Prices follow a geometric Brownian motion model.
func (g *DataGenerator) Generate(config GeneratorConfig, factory num.NumFactory) []series.Bar {
	bars := make([]series.Bar, config.Count)
	currentPrice := config.InitialPrice
	endTime := config.StartTime.Add(config.Interval)

	for i := 0; i < config.Count; i++ {
		openPrice := currentPrice

		// Box-Muller transform for a normally distributed shock
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count) // Distribute trend across bars

		closePrice := openPrice * (1 + priceChange + drift)
		if closePrice <= 0 {
			closePrice = openPrice * 0.99 // Prevent negative prices
		}

		// High and low are within the open-close range plus some extension
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * openPrice * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * openPrice * 0.5)

		highPrice := math.Max(openPrice, closePrice) + highExtension
		lowPrice := math.Min(openPrice, closePrice) - lowExtension
		if lowPrice <= 0 {
			lowPrice = math.Min(openPrice, closePrice) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = series.NewBarOf(factory, config.Interval, endTime,
			roundToDecimals(openPrice, 4),
			roundToDecimals(highPrice, 4),
			roundToDecimals(lowPrice, 4),
			roundToDecimals(closePrice, 4),
			roundToDecimals(volume, 2),
		)

		currentPrice = closePrice
		endTime = endTime.Add(config.Interval)
	}

	return bars
}

// GenerateSeries generates bars into a new series backed by factory.
func (g *DataGenerator) GenerateSeries(config GeneratorConfig, factory num.NumFactory) (*series.BarSeries, error) {
	return series.NewBuilder().
		WithName(config.Name).
		WithNumFactory(factory).
		WithBars(g.Generate(config, factory)...).
		Build()
}

// Generate10K is a convenience function to generate a 10,000 bar series
// with default settings for benchmarking.
func Generate10K(factory num.NumFactory) *series.BarSeries {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 10000

	s, err := gen.GenerateSeries(config, factory)
	if err != nil {
		panic(err)
	}

	return s
}

// SeriesOf builds a one-minute series whose bars open, close and range at
// the given close prices, with a volume of one.
func SeriesOf(factory num.NumFactory, closes ...float64) *series.BarSeries {
	start := DefaultConfig().StartTime

	bars := make([]series.Bar, len(closes))
	for i, c := range closes {
		bars[i] = series.NewBarOf(factory, time.Minute, start.Add(time.Duration(i+1)*time.Minute), c, c, c, c, 1)
	}

	return series.NewBuilder().WithNumFactory(factory).WithBars(bars...).MustBuild()
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
