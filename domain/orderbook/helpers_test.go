package orderbook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func px(t testing.TB, s string) Ticks {
	t.Helper()
	p, err := PriceToTicks(decimal.RequireFromString(s))
	require.NoError(t, err)
	return p
}

func newOrder(t testing.TB, id OrderID, side Side, typ OrderType, price string, qty int64) *Order {
	t.Helper()
	o, err := NewOrder(id, side, typ, decimal.RequireFromString(price), qty)
	require.NoError(t, err)
	return o
}

func add(t testing.TB, b *OrderBook, id OrderID, side Side, typ OrderType, price string, qty int64) AddResult {
	t.Helper()
	res, err := b.AddOrder(newOrder(t, id, side, typ, price, qty))
	require.NoError(t, err)
	return res
}

// requireUncrossed fails when the book is left crossed.
func requireUncrossed(t testing.TB, b *OrderBook) {
	t.Helper()
	bid, okb := b.BestBid()
	ask, oka := b.BestAsk()
	if okb && oka {
		require.Less(t, bid, ask, "book crossed: bid %s ask %s", bid, ask)
	}
}
