package service

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dombook/domain/orderbook"
	"dombook/infra/sequence"
	"dombook/infra/tape"
	"dombook/ingest"
)

func newService(t testing.TB, withTape bool) (*OrderService, *tape.Tape) {
	t.Helper()
	var tp *tape.Tape
	if withTape {
		var err error
		tp, err = tape.Open(tape.Config{Logger: zerolog.Nop()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = tp.Close() })
	}
	return NewOrderService(orderbook.NewOrderBook(), sequence.New(0), tp, zerolog.Nop()), tp
}

func order(t testing.TB, id orderbook.OrderID, side orderbook.Side, price string, qty int64) *orderbook.Order {
	t.Helper()
	o, err := orderbook.NewOrder(id, side, orderbook.Resting, decimal.RequireFromString(price), qty)
	require.NoError(t, err)
	return o
}

func tapeSeqs(t *testing.T, tp *tape.Tape) []uint64 {
	t.Helper()
	var out []uint64
	require.NoError(t, tp.Scan(0, func(r tape.Record) error {
		out = append(out, r.Seq)
		return nil
	}))
	return out
}

func TestSubmitAssignsSequence(t *testing.T) {
	svc, _ := newService(t, false)

	r1, err := svc.Submit(order(t, 1, orderbook.Buy, "99.00", 5))
	require.NoError(t, err)
	r2, err := svc.Submit(order(t, 2, orderbook.Sell, "99.00", 2))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), r1.Seq)
	assert.Equal(t, uint64(2), r2.Seq)
	assert.Equal(t, orderbook.Rested, r1.Status)
	assert.Equal(t, orderbook.Filled, r2.Status)
	require.Len(t, r2.Trades, 1)

	o, ok := svc.Order(1)
	require.True(t, ok)
	assert.Equal(t, int64(3), o.Remaining())
}

func TestSubmitExportsTradesToTape(t *testing.T) {
	svc, tp := newService(t, true)

	_, err := svc.Submit(order(t, 1, orderbook.Sell, "100.00", 1))
	require.NoError(t, err)
	_, err = svc.Submit(order(t, 2, orderbook.Sell, "100.25", 1))
	require.NoError(t, err)
	assert.Empty(t, tapeSeqs(t, tp))

	_, err = svc.Submit(order(t, 3, orderbook.Buy, "100.25", 2))
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2}, tapeSeqs(t, tp))

	rec, err := tp.Get(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), rec.BidOrder)
	assert.Equal(t, uint64(2), rec.AskOrder)
	assert.Equal(t, int64(401), rec.Price)

	trades := svc.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, trades[1].ID, rec.TradeID)
}

func TestSubmitRejectedLeavesBook(t *testing.T) {
	svc, _ := newService(t, false)
	_, err := svc.Submit(order(t, 1, orderbook.Buy, "99.00", 5))
	require.NoError(t, err)
	before := svc.Digest()

	_, err = svc.Submit(order(t, 1, orderbook.Buy, "98.00", 5))
	require.ErrorIs(t, err, orderbook.ErrDuplicateOrderID)
	assert.Equal(t, before, svc.Digest())
}

func TestSubmitMessage(t *testing.T) {
	svc, _ := newService(t, false)
	msg := "8=FIX.4.2|9=178|35=D|49=CLIENT|56=BOOK|34=1|52=20240101-00:00:00|11=1001|21=2|55=ESZ4|54=2|38=10|40=2|44=100.25|60=20240101-00:00:00|10=128"

	r, err := svc.SubmitMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, orderbook.OrderID(1001), r.OrderID)
	assert.Equal(t, orderbook.Rested, r.Status)

	d := svc.Depth()
	require.True(t, d.HasAsks)
	assert.Equal(t, orderbook.Ticks(401), d.BestAsk)

	_, err = svc.SubmitMessage("35=D")
	require.ErrorIs(t, err, ingest.ErrMalformed)
}

func TestCancel(t *testing.T) {
	svc, _ := newService(t, false)
	_, err := svc.Submit(order(t, 1, orderbook.Buy, "99.00", 5))
	require.NoError(t, err)

	r := svc.Cancel(1)
	assert.True(t, r.Found)
	assert.Equal(t, uint64(2), r.Seq)
	assert.False(t, svc.Depth().HasBids)

	before := svc.Digest()
	r = svc.Cancel(1)
	assert.False(t, r.Found)
	assert.Equal(t, before, svc.Digest())
}

func TestPopulate(t *testing.T) {
	svc, tp := newService(t, true)

	res, err := svc.Populate()
	require.NoError(t, err)
	assert.Equal(t, len(demoOrders), res.Orders)
	assert.Equal(t, 24, res.Trades)

	d := svc.Depth()
	require.True(t, d.HasBids)
	require.True(t, d.HasAsks)
	assert.Equal(t, "99.75", d.BestBid.String())
	assert.Equal(t, "100.00", d.BestAsk.String())
	assert.Equal(t, "98.00", d.LowestBid.String())
	assert.Equal(t, "103.00", d.HighestAsk.String())
	assert.Equal(t, int64(80), d.MaxTraded)
	assert.Equal(t, int64(70), d.At(399).RestingBuy)
	assert.Equal(t, int64(80), d.At(399).Traded)

	last, err := tp.Last()
	require.NoError(t, err)
	assert.Equal(t, uint64(24), last)

	before := svc.Digest()
	_, err = svc.Populate()
	require.ErrorIs(t, err, ErrAlreadyPopulated)
	assert.Equal(t, before, svc.Digest())
}

func TestConcurrentSubmitAndRead(t *testing.T) {
	svc, _ := newService(t, true)
	const n = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			side, price := orderbook.Buy, "100.00"
			if i%2 == 1 {
				side = orderbook.Sell
			}
			_, err := svc.Submit(order(t, orderbook.OrderID(i+1), side, price, 1))
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			d := svc.Depth()
			if d.HasBids && d.HasAsks {
				assert.Less(t, d.BestBid, d.BestAsk)
			}
		}
	}()
	wg.Wait()

	assert.Len(t, svc.Trades(), n/2)
}
