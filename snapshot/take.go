package snapshot

import (
	"time"

	"dombook/domain/orderbook"
)

// Take copies the depth of book. seq is the command sequence the copy
// reflects. The caller must keep writers out for the duration of the call.
func Take(seq uint64, book *orderbook.OrderBook) Depth {
	d := Depth{
		Seq:     seq,
		Created: time.Now(),
		Bids:    book.Levels(orderbook.Buy),
		Asks:    book.Levels(orderbook.Sell),
	}

	d.BestBid, d.HasBids = book.BestBid()
	d.LowestBid, _ = book.LowestBid()
	d.BestAsk, d.HasAsks = book.BestAsk()
	d.HighestAsk, _ = book.HighestAsk()

	book.ForEachStat(func(price orderbook.Ticks, ls orderbook.LevelStat) {
		d.Levels = append(d.Levels, Level{
			Price:       price,
			Traded:      ls.TradedVolume,
			RestingBuy:  ls.RestingBuy,
			RestingSell: ls.RestingSell,
		})
		if ls.TradedVolume > d.MaxTraded {
			d.MaxTraded = ls.TradedVolume
		}
	})

	return d
}
