package orderbook

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

type OrderID uint64

type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "Unknown"
	}
}

func (s Side) Valid() bool { return s == Buy || s == Sell }

// Opposite returns the side an order of s trades against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

type OrderType uint8

const (
	// Resting orders stay in the book until filled or cancelled.
	Resting OrderType = iota
	// ImmediateOrKill orders get at most one match attempt; whatever is
	// left afterwards is discarded.
	ImmediateOrKill
)

func (t OrderType) Valid() bool { return t == Resting || t == ImmediateOrKill }

func (t OrderType) String() string {
	switch t {
	case Resting:
		return "Resting"
	case ImmediateOrKill:
		return "ImmediateOrKill"
	default:
		return "Unknown"
	}
}

// Order is a limit order. Identity, side, type, price and quantity are fixed
// at construction; only the book changes Remaining and the accounted flag.
type Order struct {
	ID       OrderID
	Side     Side
	Type     OrderType
	Price    Ticks
	Quantity int64

	remaining int64
	accounted bool
}

// NewOrder validates side, type, price and quantity and returns an
// unfilled order.
func NewOrder(id OrderID, side Side, typ OrderType, price decimal.Decimal, qty int64) (*Order, error) {
	if !side.Valid() {
		return nil, errors.Wrapf(ErrInvalidSide, "order %d: side %d", id, side)
	}
	if !typ.Valid() {
		return nil, errors.Wrapf(ErrInvalidOrderType, "order %d: type %d", id, typ)
	}
	ticks, err := PriceToTicks(price)
	if err != nil {
		return nil, errors.Wrapf(err, "order %d", id)
	}
	if qty <= 0 {
		return nil, errors.Wrapf(ErrInvalidQuantity, "order %d: quantity %d", id, qty)
	}
	return &Order{
		ID:        id,
		Side:      side,
		Type:      typ,
		Price:     ticks,
		Quantity:  qty,
		remaining: qty,
	}, nil
}

func (o *Order) Remaining() int64 { return o.remaining }

func (o *Order) Filled() int64 { return o.Quantity - o.remaining }

// Accounted reports whether the order's resting quantity is included in the
// level statistics.
func (o *Order) Accounted() bool { return o.accounted }

// Fill takes qty off the remaining quantity. Asking for more than remains is
// rejected and leaves the order untouched.
func (o *Order) Fill(qty int64) error {
	if qty < 0 {
		return errors.Wrapf(ErrInvalidQuantity, "order %d: fill %d", o.ID, qty)
	}
	if qty > o.remaining {
		return errors.Wrapf(ErrOverFill, "order %d: fill %d, remaining %d", o.ID, qty, o.remaining)
	}
	o.remaining -= qty
	return nil
}
