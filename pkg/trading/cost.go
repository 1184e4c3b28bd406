package trading

import (
	"github.com/rxtech-lab/argo-ta/pkg/num"
)

// CostModel computes the transaction cost of a trade.
type CostModel interface {
	Calculate(price, amount num.Num) num.Num
}

// ZeroCost charges nothing.
type ZeroCost struct{}

func (ZeroCost) Calculate(price, _ num.Num) num.Num {
	return price.Factory().Zero()
}

// LinearTransactionCost charges a fixed ratio of the traded value,
// e.g. 0.001 for 0.1%.
type LinearTransactionCost struct {
	FeeRatio float64
}

func NewLinearTransactionCost(feeRatio float64) LinearTransactionCost {
	return LinearTransactionCost{FeeRatio: feeRatio}
}

func (c LinearTransactionCost) Calculate(price, amount num.Num) num.Num {
	fee := price.Factory().NumOf(c.FeeRatio)

	return price.Multiply(amount).Multiply(fee)
}
