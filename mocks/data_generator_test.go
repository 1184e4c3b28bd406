package mocks

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-ta/pkg/num"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	bars := gen.Generate(config, num.DoubleNumFactory())

	if len(bars) != 100 {
		t.Errorf("expected 100 bars, got %d", len(bars))
	}

	// Verify bars are in chronological order
	for i := 1; i < len(bars); i++ {
		if !bars[i].EndTime.After(bars[i-1].EndTime) {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}

	// Verify OHLC values are positive
	for i, b := range bars {
		if !b.Open.IsPositive() || !b.High.IsPositive() || !b.Low.IsPositive() || !b.Close.IsPositive() {
			t.Errorf("invalid OHLC values at index %d: %s", i, b)
		}
	}

	// Verify High >= Low
	for i, b := range bars {
		if b.High.IsLessThan(b.Low) {
			t.Errorf("High < Low at index %d: %s", i, b)
		}
	}

	// Verify time intervals
	for i := 1; i < len(bars); i++ {
		actualInterval := bars[i].EndTime.Sub(bars[i-1].EndTime)
		if actualInterval != config.Interval {
			t.Errorf("unexpected interval at index %d: expected %v, got %v",
				i, config.Interval, actualInterval)
		}
	}

	if !bars[0].BeginTime.Equal(config.StartTime) {
		t.Errorf("expected first bar to begin at %v, got %v", config.StartTime, bars[0].BeginTime)
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	// Same seed should produce same results
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(42)

	config := DefaultConfig()
	config.Count = 10

	bars1 := gen1.Generate(config, num.DoubleNumFactory())
	bars2 := gen2.Generate(config, num.DoubleNumFactory())

	for i := range bars1 {
		if !bars1[i].Close.IsEqual(bars2[i].Close) {
			t.Errorf("bars not reproducible at index %d: got %s and %s",
				i, bars1[i].Close, bars2[i].Close)
		}
	}
}

func TestDataGenerator_Different_Seeds(t *testing.T) {
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(123)

	config := DefaultConfig()
	config.Count = 10

	bars1 := gen1.Generate(config, num.DoubleNumFactory())
	bars2 := gen2.Generate(config, num.DoubleNumFactory())

	// Different seeds should produce different results
	sameCount := 0
	for i := range bars1 {
		if bars1[i].Close.IsEqual(bars2[i].Close) {
			sameCount++
		}
	}

	if sameCount == len(bars1) {
		t.Error("different seeds produced identical bars")
	}
}

func TestDataGenerator_DecimalSeries(t *testing.T) {
	config := DefaultConfig()
	config.Count = 50

	s, err := NewDataGenerator(7).GenerateSeries(config, num.DecimalNumFactory(num.DefaultPrecision))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.BarCount() != 50 {
		t.Errorf("expected 50 bars, got %d", s.BarCount())
	}

	if s.Name() != "TEST" {
		t.Errorf("expected series name TEST, got %s", s.Name())
	}

	if s.NumFactory().Family() != num.FamilyDecimal {
		t.Errorf("expected decimal series, got %s", s.NumFactory().Family())
	}
}

func TestGenerate10K(t *testing.T) {
	s := Generate10K(num.DoubleNumFactory())

	if s.BarCount() != 10000 {
		t.Errorf("expected 10000 bars, got %d", s.BarCount())
	}
}

func TestSeriesOf(t *testing.T) {
	s := SeriesOf(num.DoubleNumFactory(), 10, 11, 9, 12)

	if s.BarCount() != 4 {
		t.Fatalf("expected 4 bars, got %d", s.BarCount())
	}

	bar, err := s.Bar(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bar.Close.Float64() != 9 {
		t.Errorf("expected close 9, got %s", bar.Close)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Count != 10000 {
		t.Errorf("expected default count 10000, got %d", config.Count)
	}

	if config.Name != "TEST" {
		t.Errorf("expected default name TEST, got %s", config.Name)
	}

	if config.Interval != time.Minute {
		t.Errorf("expected default interval 1m, got %v", config.Interval)
	}

	if config.InitialPrice != 100.0 {
		t.Errorf("expected default initial price 100.0, got %f", config.InitialPrice)
	}
}
