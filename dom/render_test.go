package dom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dombook/domain/orderbook"
	"dombook/snapshot"
)

func depth(bestBid, lowestBid, bestAsk, highestAsk orderbook.Ticks, levels ...snapshot.Level) snapshot.Depth {
	d := snapshot.Depth{
		HasBids: true, HasAsks: true,
		BestBid: bestBid, LowestBid: lowestBid,
		BestAsk: bestAsk, HighestAsk: highestAsk,
		Levels: levels,
	}
	for _, l := range levels {
		d.MaxTraded = max(d.MaxTraded, l.Traded)
	}
	return d
}

func TestMid(t *testing.T) {
	tests := []struct {
		name     string
		bid, ask orderbook.Ticks
		want     orderbook.Ticks
	}{
		{"one tick rounds up to the ask", 400, 401, 401},
		{"two ticks", 400, 402, 401},
		{"three ticks", 400, 403, 402},
		{"four ticks", 400, 404, 402},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mid(depth(tt.bid, tt.bid, tt.ask, tt.ask))
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Mid(snapshot.Depth{HasBids: true})
	assert.False(t, ok)
}

func TestLadder(t *testing.T) {
	got := Ladder(depth(400, 398, 401, 402))
	assert.Equal(t, []orderbook.Ticks{402, 401, 400, 399, 398}, got)
	assert.Nil(t, Ladder(snapshot.Depth{HasAsks: true}))
}

func TestBarSize(t *testing.T) {
	assert.Equal(t, 25, BarSize(80, 80, 25))
	assert.Equal(t, 13, BarSize(40, 80, 25))
	assert.Equal(t, 0, BarSize(0, 80, 25))
	assert.Equal(t, 0, BarSize(5, 0, 25))
	assert.Equal(t, 1, BarSize(1, 30, 25))
	assert.Equal(t, 10, BarSize(10, 10, 10))
}

func TestRenderNeedsBothSides(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, snapshot.Depth{HasBids: true}, Options{})
	require.ErrorIs(t, err, ErrNotEnoughOrders)
	assert.Zero(t, buf.Len())
}

func TestRenderPlain(t *testing.T) {
	d := depth(400, 399, 402, 402,
		snapshot.Level{Price: 399, RestingBuy: 7},
		snapshot.Level{Price: 400, Traded: 10, RestingBuy: 3},
		snapshot.Level{Price: 401, Traded: 5},
		snapshot.Level{Price: 402, RestingSell: 4},
	)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, Options{BarWidth: 10}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	require.Len(t, lines, 6)
	assert.Equal(t, "          Volume              Price          Bids           Asks", lines[0])
	assert.Equal(t, "0              100.50                        4", lines[1])
	assert.Equal(t, strings.Repeat(" ", 22)+"========100.25========", lines[2])
	assert.Equal(t, "5         █████100.25                        ", lines[3])
	assert.Equal(t, "10   ██████████100.00         3              ", lines[4])
	assert.Equal(t, "0              99.75          7              ", lines[5])
	assert.NotContains(t, buf.String(), "\033[")
}

func TestRenderColor(t *testing.T) {
	d := depth(400, 400, 401, 401,
		snapshot.Level{Price: 400, Traded: 2, RestingBuy: 1},
		snapshot.Level{Price: 401, RestingSell: 1},
	)
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, Options{Color: true}))
	out := buf.String()
	assert.Contains(t, out, ansiMarker+strings.Repeat(" ", 22)+"========100.25========"+ansiReset)
	assert.Contains(t, out, ansiBar+strings.Repeat(barCell, DefaultBarWidth)+ansiReset)
	assert.Contains(t, out, ansiAsk+"1"+ansiReset)
}
