package trading

import (
	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
)

// Position is a pair of entry and exit trades. A position is new until its
// entry is recorded, opened until its exit is recorded and closed afterwards.
type Position struct {
	ID           uuid.UUID
	StartingType TradeType
	Entry        optional.Option[Trade]
	Exit         optional.Option[Trade]

	factory   num.NumFactory
	costModel CostModel
}

// NewPosition creates a new position whose entry will be of startingType.
// A nil cost model charges nothing.
func NewPosition(startingType TradeType, factory num.NumFactory, costModel CostModel) *Position {
	if costModel == nil {
		costModel = ZeroCost{}
	}

	return &Position{
		ID:           uuid.New(),
		StartingType: startingType,
		Entry:        optional.None[Trade](),
		Exit:         optional.None[Trade](),
		factory:      factory,
		costModel:    costModel,
	}
}

// NewClosedPosition creates a position from an entry and an exit trade.
func NewClosedPosition(factory num.NumFactory, entry, exit Trade) (*Position, error) {
	p := NewPosition(entry.Type, factory, nil)
	if _, err := p.record(entry); err != nil {
		return nil, err
	}

	if exit.Type != entry.Type.Complement() {
		return nil, errors.Newf(errors.ErrCodeInvalidTrade, "exit of a %s position must be a %s trade", entry.Type, entry.Type.Complement())
	}

	if _, err := p.record(exit); err != nil {
		return nil, err
	}

	return p, nil
}

// Operate records the next trade of the position: the entry when the
// position is new, the exit when it is opened.
func (p *Position) Operate(index int, price, amount num.Num) (Trade, error) {
	for _, v := range []num.Num{price, amount} {
		if v == nil || !p.factory.Produces(v) {
			return Trade{}, errors.Newf(errors.ErrCodeInvalidOperand, "position %s expects %s nums", p.ID, p.factory.Family())
		}
	}

	tradeType := p.StartingType
	if p.IsOpened() {
		tradeType = p.StartingType.Complement()
	}

	trade, err := NewTrade(index, tradeType, price, amount, p.costModel)
	if err != nil {
		return Trade{}, err
	}

	return p.record(trade)
}

func (p *Position) record(trade Trade) (Trade, error) {
	switch {
	case p.IsClosed():
		return Trade{}, errors.Newf(errors.ErrCodeInvalidTrade, "position %s is already closed", p.ID)
	case p.IsNew():
		p.Entry = optional.Some(trade)
	default:
		entry := p.Entry.Unwrap()
		if trade.Index < entry.Index {
			return Trade{}, errors.Newf(errors.ErrCodeInvalidTrade,
				"exit index %d is before entry index %d", trade.Index, entry.Index)
		}

		p.Exit = optional.Some(trade)
	}

	return trade, nil
}

func (p *Position) IsNew() bool {
	return p.Entry.IsNone()
}

func (p *Position) IsOpened() bool {
	return p.Entry.IsSome() && p.Exit.IsNone()
}

func (p *Position) IsClosed() bool {
	return p.Exit.IsSome()
}

// HoldingBars is the number of bars between entry and exit, zero unless closed.
func (p *Position) HoldingBars() int {
	if !p.IsClosed() {
		return 0
	}

	return p.Exit.Unwrap().Index - p.Entry.Unwrap().Index
}

// GrossProfit is the profit before transaction costs, zero unless closed.
func (p *Position) GrossProfit() num.Num {
	if !p.IsClosed() {
		return p.factory.Zero()
	}

	entry, exit := p.Entry.Unwrap(), p.Exit.Unwrap()
	profit := exit.PricePerAsset.Minus(entry.PricePerAsset).Multiply(entry.Amount)
	if entry.IsSell() {
		return profit.Negate()
	}

	return profit
}

// Profit is the gross profit minus the cost of both trades, zero unless closed.
func (p *Position) Profit() num.Num {
	if !p.IsClosed() {
		return p.factory.Zero()
	}

	return p.GrossProfit().Minus(p.Entry.Unwrap().Cost).Minus(p.Exit.Unwrap().Cost)
}

// GrossReturn is 1 + gross profit / entry value, one unless closed.
func (p *Position) GrossReturn() (num.Num, error) {
	return p.ratio(p.GrossProfit())
}

// NetReturn is 1 + profit / entry value, one unless closed.
func (p *Position) NetReturn() (num.Num, error) {
	return p.ratio(p.Profit())
}

func (p *Position) ratio(profit num.Num) (num.Num, error) {
	one := p.factory.One()
	if !p.IsClosed() {
		return one, nil
	}

	value := p.Entry.Unwrap().Value()
	if value.IsZero() {
		return one, nil
	}

	r, err := profit.DividedBy(value)
	if err != nil {
		return nil, err
	}

	return one.Plus(r), nil
}

// IsProfitable reports whether the closed position made a net profit.
func (p *Position) IsProfitable() bool {
	return p.Profit().IsPositive()
}

// IsLosing reports whether the closed position made a net loss.
func (p *Position) IsLosing() bool {
	return p.Profit().IsNegative()
}
