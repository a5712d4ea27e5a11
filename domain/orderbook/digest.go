package orderbook

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a fingerprint of the observable book state.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Digest hashes resting orders (bids best first, then asks best first, each
// level in time priority), the level statistics in price order and the trade
// count. Two books that went through the same commands hash the same.
func (b *OrderBook) Digest() Digest {
	h := blake3.New()
	buf := make([]byte, 0, 64)

	writeSide := func(tag byte, l *ladder) {
		l.Walk(func(lvl *PriceLevel) bool {
			buf = append(buf[:0], tag)
			buf = binary.BigEndian.AppendUint64(buf, uint64(lvl.Price))
			buf = binary.BigEndian.AppendUint32(buf, uint32(lvl.OrderCount))
			_, _ = h.Write(buf)
			lvl.walk(b.orders, func(_ Handle, o *Order) {
				buf = binary.BigEndian.AppendUint64(buf[:0], uint64(o.ID))
				buf = append(buf, byte(o.Type))
				buf = binary.BigEndian.AppendUint64(buf, uint64(o.remaining))
				if o.accounted {
					buf = append(buf, 1)
				} else {
					buf = append(buf, 0)
				}
				_, _ = h.Write(buf)
			})
			return true
		})
	}
	writeSide('B', b.bids)
	writeSide('S', b.asks)

	b.ForEachStat(func(price Ticks, ls LevelStat) {
		buf = append(buf[:0], 'L')
		buf = binary.BigEndian.AppendUint64(buf, uint64(price))
		buf = binary.BigEndian.AppendUint64(buf, uint64(ls.TradedVolume))
		buf = binary.BigEndian.AppendUint64(buf, uint64(ls.RestingBuy))
		buf = binary.BigEndian.AppendUint64(buf, uint64(ls.RestingSell))
		_, _ = h.Write(buf)
	})

	buf = append(buf[:0], 'T')
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(b.trades.entries)))
	_, _ = h.Write(buf)

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}
