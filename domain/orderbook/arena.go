package orderbook

// Handle addresses an order slot in the arena. Handles stay valid until the
// order leaves the book; a released handle may be reused by a later order.
type Handle int32

const noHandle Handle = -1

type slot struct {
	order Order
	prev  Handle
	next  Handle
}

// arena owns every resting order. Price level queues and the order index
// refer to orders only through handles, never through pointers that could
// outlive the slot.
type arena struct {
	slots []slot
	free  []Handle
}

func newArena(capacity int) *arena {
	return &arena{slots: make([]slot, 0, capacity)}
}

func (a *arena) alloc(o Order) Handle {
	var h Handle
	if n := len(a.free); n > 0 {
		h = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		h = Handle(len(a.slots) - 1)
	}
	a.slots[h] = slot{order: o, prev: noHandle, next: noHandle}
	return h
}

func (a *arena) release(h Handle) {
	a.slots[h] = slot{prev: noHandle, next: noHandle}
	a.free = append(a.free, h)
}

// order returns the order stored at h. The pointer is only valid until the
// next alloc.
func (a *arena) order(h Handle) *Order {
	return &a.slots[h].order
}
