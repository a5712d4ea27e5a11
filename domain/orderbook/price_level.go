package orderbook

// PriceLevel is the FIFO queue of orders resting at a single price. The
// queue is an intrusive list threaded through arena slots, so unlinking a
// known handle is O(1).
type PriceLevel struct {
	Price Ticks

	head Handle
	tail Handle

	OrderCount int
}

func newPriceLevel(price Ticks) *PriceLevel {
	return &PriceLevel{Price: price, head: noHandle, tail: noHandle}
}

func (p *PriceLevel) enqueue(a *arena, h Handle) {
	s := &a.slots[h]
	s.prev, s.next = p.tail, noHandle
	if p.tail == noHandle {
		p.head = h
	} else {
		a.slots[p.tail].next = h
	}
	p.tail = h
	p.OrderCount++
}

func (p *PriceLevel) unlink(a *arena, h Handle) {
	s := &a.slots[h]
	if s.prev != noHandle {
		a.slots[s.prev].next = s.next
	} else {
		p.head = s.next
	}
	if s.next != noHandle {
		a.slots[s.next].prev = s.prev
	} else {
		p.tail = s.prev
	}
	s.prev, s.next = noHandle, noHandle
	p.OrderCount--
}

func (p *PriceLevel) Empty() bool {
	return p.head == noHandle
}

// walk visits the queue from oldest to newest.
func (p *PriceLevel) walk(a *arena, fn func(h Handle, o *Order)) {
	for h := p.head; h != noHandle; h = a.slots[h].next {
		fn(h, &a.slots[h].order)
	}
}
