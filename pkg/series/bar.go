package series

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-ta/pkg/num"
)

// Bar is one OHLCV record for a fixed time interval ending at EndTime.
// Price fields are nil until the first price of the interval is known.
type Bar struct {
	BeginTime  time.Time     `csv:"begin_time"`
	EndTime    time.Time     `csv:"end_time"`
	TimePeriod time.Duration `csv:"time_period"`

	Open   num.Num `csv:"open"`
	High   num.Num `csv:"high"`
	Low    num.Num `csv:"low"`
	Close  num.Num `csv:"close"`
	Volume num.Num `csv:"volume"`
	// Amount is the traded value (price times volume) in the quote currency
	Amount num.Num `csv:"amount"`
	// Trades is the number of trades aggregated into the bar
	Trades int64 `csv:"trades"`
}

// NewBar creates a bar covering the period that ends at endTime.
func NewBar(period time.Duration, endTime time.Time, openPrice, highPrice, lowPrice, closePrice, volume, amount num.Num) Bar {
	return Bar{
		BeginTime:  endTime.Add(-period),
		EndTime:    endTime,
		TimePeriod: period,
		Open:       openPrice,
		High:       highPrice,
		Low:        lowPrice,
		Close:      closePrice,
		Volume:     volume,
		Amount:     amount,
		Trades:     0,
	}
}

// NewBarOf creates a bar from float64 prices using the given factory.
// The amount is left at zero.
func NewBarOf(f num.NumFactory, period time.Duration, endTime time.Time, openPrice, highPrice, lowPrice, closePrice, volume float64) Bar {
	return NewBar(period, endTime,
		f.NumOf(openPrice), f.NumOf(highPrice), f.NumOf(lowPrice), f.NumOf(closePrice), f.NumOf(volume), f.Zero())
}

// NewEmptyBar creates an open bar with no prices yet, ready for AddPrice or AddTrade.
func NewEmptyBar(f num.NumFactory, period time.Duration, endTime time.Time) Bar {
	return NewBar(period, endTime, nil, nil, nil, nil, f.Zero(), f.Zero())
}

// InPeriod reports whether t falls in [BeginTime, EndTime).
func (b Bar) InPeriod(t time.Time) bool {
	return !t.Before(b.BeginTime) && t.Before(b.EndTime)
}

// IsBullish reports whether the bar closed above its open.
func (b Bar) IsBullish() bool {
	return b.Open != nil && b.Close != nil && b.Open.IsLessThan(b.Close)
}

// IsBearish reports whether the bar closed below its open.
func (b Bar) IsBearish() bool {
	return b.Open != nil && b.Close != nil && b.Open.IsGreaterThan(b.Close)
}

func (b Bar) String() string {
	return fmt.Sprintf("{end time: %s, close price: %s, open price: %s, low price: %s, high price: %s, volume: %s}",
		b.EndTime.Format(time.RFC3339), str(b.Close), str(b.Open), str(b.Low), str(b.High), str(b.Volume))
}

func (b Bar) nums() []num.Num {
	return []num.Num{b.Open, b.High, b.Low, b.Close, b.Volume, b.Amount}
}

// withPrice folds price into the open bar.
func (b Bar) withPrice(price num.Num) Bar {
	if b.Open == nil {
		b.Open = price
	}

	if b.High == nil || price.IsGreaterThan(b.High) {
		b.High = price
	}

	if b.Low == nil || price.IsLessThan(b.Low) {
		b.Low = price
	}

	b.Close = price

	return b
}

// withTrade folds one trade into the open bar.
func (b Bar) withTrade(volume, price num.Num) Bar {
	b = b.withPrice(price)
	b.Volume = b.Volume.Plus(volume)
	b.Amount = b.Amount.Plus(volume.Multiply(price))
	b.Trades++

	return b
}

func str(n num.Num) string {
	if n == nil {
		return "n/a"
	}

	return n.String()
}
