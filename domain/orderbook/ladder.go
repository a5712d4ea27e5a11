package orderbook

import "github.com/google/btree"

const ladderDegree = 32

// ladder is one side of the book: price levels ordered best first.
type ladder struct {
	levels *btree.BTreeG[*PriceLevel]
}

func newLadder(side Side) *ladder {
	less := func(a, b *PriceLevel) bool { return a.Price < b.Price }
	if side == Buy {
		less = func(a, b *PriceLevel) bool { return a.Price > b.Price }
	}
	return &ladder{levels: btree.NewG(ladderDegree, less)}
}

func (l *ladder) Len() int { return l.levels.Len() }

func (l *ladder) Empty() bool { return l.levels.Len() == 0 }

// Best returns the highest bid or the lowest ask.
func (l *ladder) Best() (*PriceLevel, bool) {
	return l.levels.Min()
}

// Worst returns the lowest bid or the highest ask.
func (l *ladder) Worst() (*PriceLevel, bool) {
	return l.levels.Max()
}

func (l *ladder) Find(price Ticks) (*PriceLevel, bool) {
	return l.levels.Get(&PriceLevel{Price: price})
}

func (l *ladder) GetOrCreate(price Ticks) *PriceLevel {
	if lvl, ok := l.Find(price); ok {
		return lvl
	}
	lvl := newPriceLevel(price)
	l.levels.ReplaceOrInsert(lvl)
	return lvl
}

func (l *ladder) Delete(price Ticks) bool {
	_, ok := l.levels.Delete(&PriceLevel{Price: price})
	return ok
}

// Walk visits levels best to worst until fn returns false.
func (l *ladder) Walk(fn func(*PriceLevel) bool) {
	l.levels.Ascend(fn)
}
