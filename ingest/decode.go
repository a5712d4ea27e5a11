// Package ingest decodes pipe-delimited tag=value order messages.
//
// A message has exactly sixteen fields. Only a handful are read, by
// position:
//
//	[2]  35  message type, must be D (single order)
//	[7]  11  order id
//	[8]  21  order type: 1 immediate-or-kill, 2 resting
//	[10] 54  side: 1 buy, 2 sell
//	[11] 38  quantity
//	[13] 44  limit price
//
// The value of a field is everything after its three character prefix
// ("35=", "11=", ...).
package ingest

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"dombook/domain/orderbook"
)

var (
	ErrMalformed          = errors.New("not a valid order message")
	ErrUnsupportedMessage = errors.New("only single order messages are accepted (35)")
	ErrInvalidOrderType   = errors.New("invalid order type (21)")
	ErrInvalidSide        = errors.New("invalid order side (54)")
)

const (
	fieldCount = 16
	prefixLen  = 3

	posMsgType   = 2
	posOrderID   = 7
	posOrderType = 8
	posSide      = 10
	posQuantity  = 11
	posPrice     = 13
)

// Decode turns msg into an unfilled order. Nothing is constructed unless
// every field checks out.
func Decode(msg string) (*orderbook.Order, error) {
	msg = strings.TrimSpace(msg)
	msg = strings.TrimSuffix(msg, "|")

	fields := strings.Split(msg, "|")
	if len(fields) != fieldCount {
		return nil, errors.Wrapf(ErrMalformed, "%d fields, want %d", len(fields), fieldCount)
	}

	msgType, err := value(fields, posMsgType)
	if err != nil {
		return nil, err
	}
	if msgType != "D" {
		return nil, errors.Wrapf(ErrUnsupportedMessage, "35=%s", msgType)
	}

	id, err := uintField(fields, posOrderID)
	if err != nil {
		return nil, err
	}

	var typ orderbook.OrderType
	code, err := uintField(fields, posOrderType)
	if err != nil {
		return nil, err
	}
	switch code {
	case 1:
		typ = orderbook.ImmediateOrKill
	case 2:
		typ = orderbook.Resting
	default:
		return nil, errors.Wrapf(ErrInvalidOrderType, "21=%d", code)
	}

	var side orderbook.Side
	code, err = uintField(fields, posSide)
	if err != nil {
		return nil, err
	}
	switch code {
	case 1:
		side = orderbook.Buy
	case 2:
		side = orderbook.Sell
	default:
		return nil, errors.Wrapf(ErrInvalidSide, "54=%d", code)
	}

	qty, err := uintField(fields, posQuantity)
	if err != nil {
		return nil, err
	}

	raw, err := value(fields, posPrice)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "field %d: price %q", posPrice, raw)
	}

	return orderbook.NewOrder(orderbook.OrderID(id), side, typ, price, int64(qty))
}

func value(fields []string, pos int) (string, error) {
	f := fields[pos]
	if len(f) < prefixLen {
		return "", errors.Wrapf(ErrMalformed, "field %d: %q", pos, f)
	}
	return strings.TrimSpace(f[prefixLen:]), nil
}

func uintField(fields []string, pos int) (uint64, error) {
	v, err := value(fields, pos)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 63)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "field %d: %q", pos, v)
	}
	return n, nil
}
