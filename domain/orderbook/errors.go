package orderbook

import "github.com/cockroachdb/errors"

var (
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrDuplicateOrderID = errors.New("duplicate order id")
	ErrOverFill         = errors.New("fill exceeds remaining quantity")
	ErrInvalidSide      = errors.New("invalid side")
	ErrInvalidOrderType = errors.New("invalid order type")
)
