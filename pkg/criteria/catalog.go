package criteria

import (
	"slices"
	"strings"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// VersusPrefix selects the buy and hold comparison of a criterion by name,
// e.g. "versus:net_return".
const VersusPrefix = "versus:"

var catalog = map[string]AnalysisCriterion{
	"number_of_bars":              NumberOfBars{},
	"number_of_positions":         NumberOfPositions{},
	"number_of_winning_positions": NumberOfWinningPositions{},
	"number_of_losing_positions":  NumberOfLosingPositions{},
	"winning_positions_ratio":     WinningPositionsRatio{},
	"profit_loss":                 ProfitLoss{},
	"net_profit":                  NetProfit{},
	"gross_profit":                GrossProfit{},
	"net_loss":                    NetLoss{},
	"gross_loss":                  GrossLoss{},
	"net_average_profit":          NetAverageProfit{},
	"net_average_loss":            NetAverageLoss{},
	"net_return":                  NetReturn{},
	"gross_return":                GrossReturn{},
	"average_return_per_bar":      AverageReturnPerBar{},
	"buy_and_hold_return":         BuyAndHoldReturn{},
	"maximum_drawdown":            MaximumDrawdown{},
}

// ByName returns the criterion registered under name.
func ByName(name string) (AnalysisCriterion, error) {
	if inner, ok := strings.CutPrefix(name, VersusPrefix); ok {
		c, err := ByName(inner)
		if err != nil {
			return nil, err
		}

		return NewVersusCriterion(c), nil
	}

	c, ok := catalog[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unknown criterion %q", name)
	}

	return c, nil
}

// Names lists the catalog in lexical order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
