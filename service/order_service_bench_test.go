package service

import (
	"testing"

	"github.com/rs/zerolog"

	"dombook/domain/orderbook"
	"dombook/infra/sequence"
	"dombook/infra/tape"
)

func BenchmarkSubmit_Core(b *testing.B) {
	tp, _ := tape.Open(tape.Config{Logger: zerolog.Nop()})
	defer tp.Close()
	svc := NewOrderService(orderbook.NewOrderBook(orderbook.WithCapacity(b.N)), sequence.New(0), tp, zerolog.Nop())

	orders := make([]*orderbook.Order, b.N)
	for i := range orders {
		side, price := orderbook.Buy, "100.00"
		if i%2 == 1 {
			side = orderbook.Sell
		}
		orders[i] = order(b, orderbook.OrderID(i+1), side, price, 1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = svc.Submit(orders[i])
	}
}

func BenchmarkDepth_Parallel(b *testing.B) {
	svc := NewOrderService(orderbook.NewOrderBook(), sequence.New(0), nil, zerolog.Nop())
	if _, err := svc.Populate(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = svc.Depth()
		}
	})
}
