// Package dom renders a depth-of-market ladder from a book snapshot.
package dom

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"dombook/domain/orderbook"
	"dombook/snapshot"
)

var ErrNotEnoughOrders = errors.New("not enough orders to print a DOM")

const DefaultBarWidth = 25

const (
	ansiReset  = "\033[0m"
	ansiMarker = "\033[1;33m"
	ansiBar    = "\033[1;34m"
	ansiBid    = "\033[1;32m"
	ansiAsk    = "\033[1;31m"

	barCell = "█"
)

type Options struct {
	// BarWidth is the number of cells of the largest volume bar.
	BarWidth int
	Color    bool
}

// Mid is the best bid plus half the spread, rounded to the nearest tick.
func Mid(d snapshot.Depth) (orderbook.Ticks, bool) {
	if !d.HasBids || !d.HasAsks {
		return 0, false
	}
	return d.BestBid + (d.Spread()+1)/2, true
}

// Ladder lists every tick from the highest resting ask down to the lowest
// resting bid.
func Ladder(d snapshot.Depth) []orderbook.Ticks {
	if !d.HasBids || !d.HasAsks || d.HighestAsk < d.LowestBid {
		return nil
	}
	out := make([]orderbook.Ticks, 0, d.HighestAsk-d.LowestBid+1)
	for p := d.HighestAsk; p >= d.LowestBid; p-- {
		out = append(out, p)
	}
	return out
}

// BarSize scales vol against maxVol onto width cells.
func BarSize(vol, maxVol int64, width int) int {
	if vol <= 0 || maxVol <= 0 {
		return 0
	}
	n := int(math.Round(float64(vol) / float64(maxVol) * float64(width)))
	return min(n, width)
}

// Render writes the ladder for d to w. Both sides must have orders.
func Render(w io.Writer, d snapshot.Depth, opts Options) error {
	if !d.HasBids || !d.HasAsks {
		return ErrNotEnoughOrders
	}
	if opts.BarWidth <= 0 {
		opts.BarWidth = DefaultBarWidth
	}
	paint := func(code, s string) string {
		if !opts.Color {
			return s
		}
		return code + s + ansiReset
	}

	mid, _ := Mid(d)
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-10s%-20s%-15s%-15s%s\n", " ", "Volume", "Price", "Bids", "Asks")

	for _, price := range Ladder(d) {
		if price == mid {
			marker := strings.Repeat(" ", 22) + "========" + price.String() + "========"
			sb.WriteString(paint(ansiMarker, marker))
			sb.WriteByte('\n')
		}

		lvl := d.At(price)
		bars := BarSize(lvl.Traded, d.MaxTraded, opts.BarWidth)

		fmt.Fprintf(&sb, "%-5d%s", lvl.Traded, strings.Repeat(" ", opts.BarWidth-bars))
		if bars > 0 {
			sb.WriteString(paint(ansiBar, strings.Repeat(barCell, bars)))
		}
		fmt.Fprintf(&sb, "%-15s", price.String())
		sb.WriteString(paint(ansiBid, fmt.Sprintf("%-15s", quantity(lvl.RestingBuy))))
		if lvl.RestingSell != 0 {
			sb.WriteString(paint(ansiAsk, quantity(lvl.RestingSell)))
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "write dom")
}

func quantity(q int64) string {
	if q == 0 {
		return ""
	}
	return fmt.Sprint(q)
}
