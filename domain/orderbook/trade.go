package orderbook

import "github.com/google/uuid"

// Execution is one counterparty's view of a trade.
type Execution struct {
	OrderID  OrderID
	Price    Ticks
	Quantity int64
}

// Trade is an immutable trade log entry. Seq is the 1-based position in the
// log.
type Trade struct {
	Seq uint64
	ID  uuid.UUID
	Bid Execution
	Ask Execution
}

func (t Trade) Price() Ticks { return t.Bid.Price }

func (t Trade) Quantity() int64 { return t.Bid.Quantity }

// tradeLog is append-only. processed counts the entries already folded into
// the level statistics.
type tradeLog struct {
	entries   []Trade
	processed int
}

func (l *tradeLog) append(bid, ask OrderID, price Ticks, qty int64) Trade {
	t := Trade{
		Seq: uint64(len(l.entries) + 1),
		ID:  uuid.Must(uuid.NewV7()),
		Bid: Execution{OrderID: bid, Price: price, Quantity: qty},
		Ask: Execution{OrderID: ask, Price: price, Quantity: qty},
	}
	l.entries = append(l.entries, t)
	return t
}

// pending returns the entries not yet processed and advances the cursor.
func (l *tradeLog) pending() []Trade {
	out := l.entries[l.processed:]
	l.processed = len(l.entries)
	return out
}

// since returns a copy of the entries with Seq > seq.
func (l *tradeLog) since(seq uint64) []Trade {
	if seq >= uint64(len(l.entries)) {
		return nil
	}
	out := make([]Trade, len(l.entries)-int(seq))
	copy(out, l.entries[seq:])
	return out
}
