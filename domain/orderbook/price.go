package orderbook

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// TickSize is the minimum price increment.
var TickSize = decimal.RequireFromString("0.25")

// Ticks is a price expressed as a whole number of ticks.
type Ticks int64

// PriceToTicks converts a display price into ticks. The price must be a
// positive exact multiple of TickSize.
func PriceToTicks(price decimal.Decimal) (Ticks, error) {
	if !price.IsPositive() {
		return 0, errors.Wrapf(ErrInvalidPrice, "price %s must be positive", price)
	}
	q, r := price.QuoRem(TickSize, 0)
	if !r.IsZero() {
		return 0, errors.Wrapf(ErrInvalidPrice, "price %s is not a multiple of %s", price, TickSize)
	}
	if !q.BigInt().IsInt64() {
		return 0, errors.Wrapf(ErrInvalidPrice, "price %s is out of range", price)
	}
	return Ticks(q.IntPart()), nil
}

// Decimal returns the display price.
func (t Ticks) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(t)).Mul(TickSize)
}

func (t Ticks) String() string {
	return t.Decimal().StringFixed(2)
}
