package orderbook

// LevelInfo summarises one price level queue.
type LevelInfo struct {
	Price    Ticks
	Orders   int
	Quantity int64
}

// ---- traversal helpers ----

func (b *OrderBook) BestBid() (Ticks, bool) { return levelPrice(b.bids.Best()) }

func (b *OrderBook) BestAsk() (Ticks, bool) { return levelPrice(b.asks.Best()) }

// LowestBid is the deepest resting bid price.
func (b *OrderBook) LowestBid() (Ticks, bool) { return levelPrice(b.bids.Worst()) }

// HighestAsk is the deepest resting ask price.
func (b *OrderBook) HighestAsk() (Ticks, bool) { return levelPrice(b.asks.Worst()) }

func levelPrice(lvl *PriceLevel, ok bool) (Ticks, bool) {
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// Len is the number of resting orders.
func (b *OrderBook) Len() int { return len(b.index) }

// LevelCount is the number of price levels on side s.
func (b *OrderBook) LevelCount(s Side) int { return b.ladder(s).Len() }

// Level reports the queue at price on side s.
func (b *OrderBook) Level(s Side, price Ticks) (LevelInfo, bool) {
	lvl, ok := b.ladder(s).Find(price)
	if !ok {
		return LevelInfo{}, false
	}
	return b.levelInfo(lvl), true
}

// Levels lists side s best to worst.
func (b *OrderBook) Levels(s Side) []LevelInfo {
	l := b.ladder(s)
	out := make([]LevelInfo, 0, l.Len())
	l.Walk(func(lvl *PriceLevel) bool {
		out = append(out, b.levelInfo(lvl))
		return true
	})
	return out
}

func (b *OrderBook) levelInfo(lvl *PriceLevel) LevelInfo {
	info := LevelInfo{Price: lvl.Price, Orders: lvl.OrderCount}
	lvl.walk(b.orders, func(_ Handle, o *Order) {
		info.Quantity += o.remaining
	})
	return info
}

// Queue returns the ids waiting at price on side s in time priority.
func (b *OrderBook) Queue(s Side, price Ticks) []OrderID {
	lvl, ok := b.ladder(s).Find(price)
	if !ok {
		return nil
	}
	out := make([]OrderID, 0, lvl.OrderCount)
	lvl.walk(b.orders, func(_ Handle, o *Order) {
		out = append(out, o.ID)
	})
	return out
}

// Order returns a copy of a resting order.
func (b *OrderBook) Order(id OrderID) (Order, bool) {
	h, ok := b.index[id]
	if !ok {
		return Order{}, false
	}
	return *b.orders.order(h), true
}

// Stat returns the statistics at price; a price never touched reads as zero.
func (b *OrderBook) Stat(price Ticks) LevelStat {
	if ls, ok := b.stats[price]; ok {
		return *ls
	}
	return LevelStat{}
}

// ForEachStat visits every price with statistics in ascending order.
func (b *OrderBook) ForEachStat(fn func(price Ticks, ls LevelStat)) {
	for _, p := range b.stats.prices() {
		fn(p, *b.stats[p])
	}
}

// Trades returns a copy of the whole trade log.
func (b *OrderBook) Trades() []Trade { return b.trades.since(0) }

// TradesSince returns the trades with Seq greater than seq.
func (b *OrderBook) TradesSince(seq uint64) []Trade { return b.trades.since(seq) }

// LastTradeSeq is the Seq of the newest trade, or 0.
func (b *OrderBook) LastTradeSeq() uint64 { return uint64(len(b.trades.entries)) }
