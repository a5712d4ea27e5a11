package orderbook

import "slices"

// LevelStat aggregates activity at one price.
type LevelStat struct {
	TradedVolume int64
	RestingBuy   int64
	RestingSell  int64
}

// Resting returns the open interest on side s.
func (ls LevelStat) Resting(s Side) int64 {
	if s == Buy {
		return ls.RestingBuy
	}
	return ls.RestingSell
}

type statsTable map[Ticks]*LevelStat

func (t statsTable) at(price Ticks) *LevelStat {
	ls, ok := t[price]
	if !ok {
		ls = &LevelStat{}
		t[price] = ls
	}
	return ls
}

func (t statsTable) addTraded(price Ticks, qty int64) {
	t.at(price).TradedVolume += qty
}

func (t statsTable) addResting(side Side, price Ticks, qty int64) {
	ls := t.at(price)
	if side == Buy {
		ls.RestingBuy += qty
	} else {
		ls.RestingSell += qty
	}
}

// prices returns the keys in ascending order.
func (t statsTable) prices() []Ticks {
	out := make([]Ticks, 0, len(t))
	for p := range t {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}
