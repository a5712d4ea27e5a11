package snapshot

import (
	"slices"
	"time"

	"dombook/domain/orderbook"
)

// Level is the statistics row for one price.
type Level struct {
	Price       orderbook.Ticks
	Traded      int64
	RestingBuy  int64
	RestingSell int64
}

type Depth struct {
	Seq     uint64
	Created time.Time

	HasBids bool
	HasAsks bool

	BestBid    orderbook.Ticks
	LowestBid  orderbook.Ticks
	BestAsk    orderbook.Ticks
	HighestAsk orderbook.Ticks

	// Bids and Asks list the queues best first.
	Bids []orderbook.LevelInfo
	Asks []orderbook.LevelInfo

	// Levels holds every price with statistics, ascending.
	Levels    []Level
	MaxTraded int64
}

// At returns the statistics row for price, or a zero row carrying price.
func (d Depth) At(price orderbook.Ticks) Level {
	i, ok := slices.BinarySearchFunc(d.Levels, price, func(l Level, p orderbook.Ticks) int {
		switch {
		case l.Price < p:
			return -1
		case l.Price > p:
			return 1
		}
		return 0
	})
	if !ok {
		return Level{Price: price}
	}
	return d.Levels[i]
}

// Spread is the distance in ticks between the best ask and the best bid.
// It is only meaningful when both sides have orders.
func (d Depth) Spread() orderbook.Ticks {
	if !d.HasBids || !d.HasAsks {
		return 0
	}
	return d.BestAsk - d.BestBid
}
