package trading

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
)

// TradingRecord is the ordered history of positions of one strategy run.
type TradingRecord struct {
	Name string

	factory      num.NumFactory
	startingType TradeType
	costModel    CostModel
	positions    []*Position
	current      *Position
	trades       []Trade
	startIndex   optional.Option[int]
	endIndex     optional.Option[int]
}

// NewTradingRecord creates an empty record whose positions start with
// startingType trades.
func NewTradingRecord(factory num.NumFactory, startingType TradeType, costModel CostModel) *TradingRecord {
	return &TradingRecord{
		Name:         "",
		factory:      factory,
		startingType: startingType,
		costModel:    costModel,
		positions:    nil,
		current:      NewPosition(startingType, factory, costModel),
		trades:       nil,
		startIndex:   optional.None[int](),
		endIndex:     optional.None[int](),
	}
}

// NewTradingRecordOf replays trades alternating entry and exit.
func NewTradingRecordOf(factory num.NumFactory, trades ...Trade) (*TradingRecord, error) {
	startingType := Buy
	if len(trades) > 0 {
		startingType = trades[0].Type
	}

	r := NewTradingRecord(factory, startingType, nil)
	for _, t := range trades {
		if t.Type != r.nextType() {
			return nil, errors.Newf(errors.ErrCodeInvalidTrade, "expected a %s trade at index %d, got %s", r.nextType(), t.Index, t.Type)
		}

		if err := r.checkOrder(t.Index); err != nil {
			return nil, err
		}

		if _, err := r.current.record(t); err != nil {
			return nil, err
		}

		r.advance(t)
	}

	return r, nil
}

// WithRange limits the bars the record covers, for criteria that look at the
// whole series such as buy and hold.
func (r *TradingRecord) WithRange(start, end int) *TradingRecord {
	r.startIndex = optional.Some(start)
	r.endIndex = optional.Some(end)

	return r
}

func (r *TradingRecord) nextType() TradeType {
	if r.current.IsOpened() {
		return r.startingType.Complement()
	}

	return r.startingType
}

// Operate records the next trade of the current position.
func (r *TradingRecord) Operate(index int, price, amount num.Num) (Trade, error) {
	if err := r.checkOrder(index); err != nil {
		return Trade{}, err
	}

	t, err := r.current.Operate(index, price, amount)
	if err != nil {
		return Trade{}, err
	}

	r.advance(t)

	return t, nil
}

func (r *TradingRecord) checkOrder(index int) error {
	if last := r.LastTrade(); last.IsSome() && index < last.Unwrap().Index {
		return errors.Newf(errors.ErrCodeInvalidTrade,
			"trade index %d is before the last trade at %d", index, last.Unwrap().Index)
	}

	return nil
}

func (r *TradingRecord) advance(t Trade) {
	r.trades = append(r.trades, t)
	if r.current.IsClosed() {
		r.positions = append(r.positions, r.current)
		r.current = NewPosition(r.startingType, r.factory, r.costModel)
	}
}

// Enter opens a new position. It fails when a position is already opened.
func (r *TradingRecord) Enter(index int, price, amount num.Num) (Trade, error) {
	if !r.current.IsNew() {
		return Trade{}, errors.Newf(errors.ErrCodeInvalidTrade, "cannot enter at index %d: a position is already opened", index)
	}

	return r.Operate(index, price, amount)
}

// Exit closes the opened position. It fails when no position is opened.
func (r *TradingRecord) Exit(index int, price, amount num.Num) (Trade, error) {
	if !r.current.IsOpened() {
		return Trade{}, errors.Newf(errors.ErrCodeInvalidTrade, "cannot exit at index %d: no opened position", index)
	}

	return r.Operate(index, price, amount)
}

// CurrentPosition is the position the next trade goes to.
func (r *TradingRecord) CurrentPosition() *Position {
	return r.current
}

// IsClosed reports whether no position is opened.
func (r *TradingRecord) IsClosed() bool {
	return !r.current.IsOpened()
}

// Positions returns the closed positions in order.
func (r *TradingRecord) Positions() []*Position {
	out := make([]*Position, len(r.positions))
	copy(out, r.positions)

	return out
}

func (r *TradingRecord) PositionCount() int {
	return len(r.positions)
}

func (r *TradingRecord) Trades() []Trade {
	out := make([]Trade, len(r.trades))
	copy(out, r.trades)

	return out
}

func (r *TradingRecord) LastTrade() optional.Option[Trade] {
	if len(r.trades) == 0 {
		return optional.None[Trade]()
	}

	return optional.Some(r.trades[len(r.trades)-1])
}

// LastEntry returns the most recent entry trade.
func (r *TradingRecord) LastEntry() optional.Option[Trade] {
	for i := len(r.trades) - 1; i >= 0; i-- {
		if r.trades[i].Type == r.startingType {
			return optional.Some(r.trades[i])
		}
	}

	return optional.None[Trade]()
}

// LastExit returns the most recent exit trade.
func (r *TradingRecord) LastExit() optional.Option[Trade] {
	for i := len(r.trades) - 1; i >= 0; i-- {
		if r.trades[i].Type != r.startingType {
			return optional.Some(r.trades[i])
		}
	}

	return optional.None[Trade]()
}

// StartIndex is the first bar the record covers, the series' begin index by default.
func (r *TradingRecord) StartIndex(s *series.BarSeries) int {
	if r.startIndex.IsSome() {
		return r.startIndex.Unwrap()
	}

	return s.BeginIndex()
}

// EndIndex is the last bar the record covers, the series' end index by default.
func (r *TradingRecord) EndIndex(s *series.BarSeries) int {
	if r.endIndex.IsSome() {
		return r.endIndex.Unwrap()
	}

	return s.EndIndex()
}

func (r *TradingRecord) NumFactory() num.NumFactory {
	return r.factory
}

func (r *TradingRecord) StartingType() TradeType {
	return r.startingType
}
