// Package trading records the entry and exit trades that criteria score.
// Nothing in this package mutates a series or an indicator.
package trading

import (
	"fmt"

	"github.com/rxtech-lab/argo-ta/pkg/num"
)

// TradeType is the side of a trade.
type TradeType int

const (
	Buy TradeType = iota + 1
	Sell
)

// Complement returns the side that closes a position opened with t.
func (t TradeType) Complement() TradeType {
	if t == Buy {
		return Sell
	}

	return Buy
}

func (t TradeType) String() string {
	switch t {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Trade is one fill at a bar index.
type Trade struct {
	Type  TradeType
	Index int
	// PricePerAsset is the quoted price of the fill
	PricePerAsset num.Num
	// NetPrice is the price per asset after transaction costs
	NetPrice num.Num
	Amount   num.Num
	// Cost is the transaction cost of the whole trade
	Cost num.Num
}

// NewTrade creates a trade and applies the cost model to it.
func NewTrade(index int, tradeType TradeType, price, amount num.Num, model CostModel) (Trade, error) {
	if model == nil {
		model = ZeroCost{}
	}

	cost := model.Calculate(price, amount)

	netPrice := price
	if !amount.IsZero() {
		perAsset, err := cost.DividedBy(amount)
		if err != nil {
			return Trade{}, err
		}

		if tradeType == Buy {
			netPrice = price.Plus(perAsset)
		} else {
			netPrice = price.Minus(perAsset)
		}
	}

	return Trade{
		Type:          tradeType,
		Index:         index,
		PricePerAsset: price,
		NetPrice:      netPrice,
		Amount:        amount,
		Cost:          cost,
	}, nil
}

func (t Trade) IsBuy() bool {
	return t.Type == Buy
}

func (t Trade) IsSell() bool {
	return t.Type == Sell
}

// Value is the quoted price times the amount.
func (t Trade) Value() num.Num {
	return t.PricePerAsset.Multiply(t.Amount)
}

func (t Trade) String() string {
	return fmt.Sprintf("%s %s @ %s (index %d)", t.Type, t.Amount, t.PricePerAsset, t.Index)
}
