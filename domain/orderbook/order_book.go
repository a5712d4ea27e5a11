package orderbook

import (
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Status is the outcome of an AddOrder call for the submitted order.
type Status uint8

const (
	Rested Status = iota
	Filled
	PartiallyFilled
	Killed
	KilledOnEntry
)

func (s Status) String() string {
	switch s {
	case Rested:
		return "rested"
	case Filled:
		return "filled"
	case PartiallyFilled:
		return "partially filled"
	case Killed:
		return "partially filled and killed"
	case KilledOnEntry:
		return "killed before entry"
	default:
		return "unknown"
	}
}

// AddResult describes what happened to a submitted order.
type AddResult struct {
	OrderID   OrderID
	Status    Status
	Filled    int64
	Remaining int64
	Trades    []Trade
}

type Option func(*OrderBook)

func WithLogger(l zerolog.Logger) Option {
	return func(b *OrderBook) { b.log = l }
}

// WithCapacity presizes the order arena and index.
func WithCapacity(n int) Option {
	return func(b *OrderBook) {
		b.orders = newArena(n)
		b.index = make(map[OrderID]Handle, n)
	}
}

// OrderBook is single-writer and deterministic.
type OrderBook struct {
	bids *ladder
	asks *ladder

	orders *arena
	index  map[OrderID]Handle

	stats  statsTable
	trades tradeLog

	log zerolog.Logger
}

func NewOrderBook(opts ...Option) *OrderBook {
	b := &OrderBook{
		bids:   newLadder(Buy),
		asks:   newLadder(Sell),
		orders: newArena(1024),
		index:  make(map[OrderID]Handle, 1024),
		stats:  make(statsTable),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ---- commands ----

// AddOrder admits o into the book and runs the crossing loop when it
// crosses. The book keeps its own copy of o; the caller's value is not
// modified.
func (b *OrderBook) AddOrder(o *Order) (AddResult, error) {
	if !o.Side.Valid() {
		return AddResult{}, errors.Wrapf(ErrInvalidSide, "order %d: side %d", o.ID, o.Side)
	}
	if !o.Type.Valid() {
		return AddResult{}, errors.Wrapf(ErrInvalidOrderType, "order %d: type %d", o.ID, o.Type)
	}
	if o.Price <= 0 {
		return AddResult{}, errors.Wrapf(ErrInvalidPrice, "order %d: %d ticks", o.ID, o.Price)
	}
	if o.remaining <= 0 {
		return AddResult{}, errors.Wrapf(ErrInvalidQuantity, "order %d: nothing left to trade", o.ID)
	}
	if _, dup := b.index[o.ID]; dup {
		return AddResult{}, errors.Wrapf(ErrDuplicateOrderID, "order %d", o.ID)
	}

	b.log.Debug().
		Uint64("order", uint64(o.ID)).
		Stringer("side", o.Side).
		Stringer("type", o.Type).
		Stringer("price", o.Price).
		Int64("qty", o.remaining).
		Msg("order confirmed")

	res := AddResult{OrderID: o.ID, Remaining: o.remaining}

	if o.Type == ImmediateOrKill && !b.crossable(o.Side, o.Price) {
		b.log.Debug().Uint64("order", uint64(o.ID)).Msg("immediate-or-kill order could not be filled, cancelled")
		res.Status = KilledOnEntry
		return res, nil
	}

	entry := *o
	entry.accounted = false
	h := b.orders.alloc(entry)
	b.ladder(o.Side).GetOrCreate(o.Price).enqueue(b.orders, h)
	b.index[o.ID] = h

	if !b.crossable(o.Side, o.Price) {
		stored := b.orders.order(h)
		b.stats.addResting(stored.Side, stored.Price, stored.remaining)
		stored.accounted = true
		res.Status = Rested
		return res, nil
	}

	mark := uint64(len(b.trades.entries))
	b.match(o.Side)
	res.Trades = b.trades.since(mark)

	for _, t := range res.Trades {
		if (o.Side == Buy && t.Bid.OrderID == o.ID) || (o.Side == Sell && t.Ask.OrderID == o.ID) {
			res.Filled += t.Quantity()
		}
	}
	res.Remaining -= res.Filled

	_, resting := b.index[o.ID]
	switch {
	case res.Remaining == 0:
		res.Status = Filled
	case resting && res.Filled == 0:
		res.Status = Rested
	case resting:
		res.Status = PartiallyFilled
	default:
		res.Status = Killed
	}
	return res, nil
}

// CancelOrder withdraws a resting order. Unknown ids are ignored and
// reported as false.
func (b *OrderBook) CancelOrder(id OrderID) bool {
	h, ok := b.index[id]
	if !ok {
		return false
	}
	o := b.orders.order(h)
	side, price := o.Side, o.Price

	l := b.ladder(side)
	lvl, ok := l.Find(price)
	if !ok {
		panic("orderbook: indexed order has no price level")
	}

	// Withdrawn quantity no longer counts as open interest.
	if o.accounted {
		b.stats.addResting(side, price, -o.remaining)
	}

	b.log.Debug().
		Uint64("order", uint64(id)).
		Stringer("side", side).
		Stringer("price", price).
		Int64("remaining", o.remaining).
		Msg("order cancelled")

	b.remove(lvl, h)
	if lvl.Empty() {
		l.Delete(price)
	}
	return true
}

// ---- matching ----

func (b *OrderBook) ladder(s Side) *ladder {
	if s == Buy {
		return b.bids
	}
	return b.asks
}

// crossable reports whether an order on side s at price would trade against
// the current best opposite level.
func (b *OrderBook) crossable(s Side, price Ticks) bool {
	best, ok := b.ladder(s.Opposite()).Best()
	if !ok {
		return false
	}
	if s == Buy {
		return best.Price <= price
	}
	return best.Price >= price
}

// match runs until the book is no longer crossed. taker is the side of the
// order that triggered it; trades print at the opposite (resting) price.
func (b *OrderBook) match(taker Side) {
	for {
		bid, ok := b.bids.Best()
		if !ok {
			return
		}
		ask, ok := b.asks.Best()
		if !ok {
			return
		}
		if bid.Price < ask.Price {
			return
		}

		price := bid.Price
		if taker == Buy {
			price = ask.Price
		}

		for !bid.Empty() && !ask.Empty() {
			bh, ah := bid.head, ask.head
			bo, ao := b.orders.order(bh), b.orders.order(ah)

			qty := min(bo.remaining, ao.remaining)
			// qty never exceeds either remainder.
			_ = bo.Fill(qty)
			_ = ao.Fill(qty)

			b.trades.append(bo.ID, ao.ID, price, qty)
			b.recompute()

			doneBid := bo.remaining == 0 || bo.Type == ImmediateOrKill
			doneAsk := ao.remaining == 0 || ao.Type == ImmediateOrKill
			b.logFill(bo, price, qty)
			b.logFill(ao, price, qty)

			if doneBid {
				b.remove(bid, bh)
			}
			if doneAsk {
				b.remove(ask, ah)
			}
		}

		if bid.Empty() {
			b.bids.Delete(bid.Price)
		}
		if ask.Empty() {
			b.asks.Delete(ask.Price)
		}
	}
}

// remove unlinks h from its level and drops it from the index and arena.
// Deleting an emptied level is left to the caller.
func (b *OrderBook) remove(lvl *PriceLevel, h Handle) {
	delete(b.index, b.orders.order(h).ID)
	lvl.unlink(b.orders, h)
	b.orders.release(h)
}

// recompute folds every trade appended since the last call into the level
// statistics, once each, in log order.
func (b *OrderBook) recompute() {
	for _, t := range b.trades.pending() {
		b.stats.addTraded(t.Price(), t.Quantity())
		b.account(t.Bid)
		b.account(t.Ask)
	}
}

func (b *OrderBook) account(e Execution) {
	h, ok := b.index[e.OrderID]
	if !ok {
		return
	}
	o := b.orders.order(h)
	switch {
	case o.Type != ImmediateOrKill && o.remaining > 0 && !o.accounted:
		// First partial fill of an order that never rested unmatched.
		b.stats.addResting(o.Side, o.Price, o.remaining)
		o.accounted = true
	case o.accounted:
		b.stats.addResting(o.Side, o.Price, -e.Quantity)
	}
}

func (b *OrderBook) logFill(o *Order, price Ticks, qty int64) {
	msg := "partially filled"
	switch {
	case o.remaining == 0:
		msg = "fully filled"
	case o.Type == ImmediateOrKill:
		msg = "partially filled and killed"
	}
	b.log.Debug().
		Uint64("order", uint64(o.ID)).
		Stringer("side", o.Side).
		Stringer("price", price).
		Int64("qty", qty).
		Msg(msg)
}
