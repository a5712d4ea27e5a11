package service

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"dombook/domain/orderbook"
	"dombook/infra/sequence"
	"dombook/infra/tape"
	"dombook/ingest"
	"dombook/snapshot"
)

/*
OrderService is the ONLY write entry point into the book.

Every command runs under the write lock from start to finish, including
the crossing loop it triggers and the export of its trades to the tape.
Queries take the read lock.
*/

type OrderService struct {
	mu sync.RWMutex

	book *orderbook.OrderBook
	seq  *sequence.Sequencer
	tape *tape.Tape // optional
	log  zerolog.Logger

	// exported is the last trade Seq copied to the tape.
	exported  uint64
	populated bool
}

// Receipt is returned for every accepted submit.
type Receipt struct {
	Seq uint64
	orderbook.AddResult
}

type CancelReceipt struct {
	Seq     uint64
	OrderID orderbook.OrderID
	Found   bool
}

// PopulateResult summarises a Populate call.
type PopulateResult struct {
	Orders int
	Trades int
}

// NewOrderService wires the book to its sequencer and, when tp is not nil,
// to the trade tape.
func NewOrderService(
	book *orderbook.OrderBook,
	seq *sequence.Sequencer,
	tp *tape.Tape,
	log zerolog.Logger,
) *OrderService {
	return &OrderService{
		book: book,
		seq:  seq,
		tape: tp,
		log:  log.With().Str("component", "service").Logger(),
	}
}

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

// Submit adds o to the book.
func (s *OrderService) Submit(o *orderbook.Order) (Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.submit(o)
	s.export()
	return r, err
}

// SubmitMessage decodes an order message and submits it. Messages that
// fail to decode never reach the book.
func (s *OrderService) SubmitMessage(msg string) (Receipt, error) {
	o, err := ingest.Decode(msg)
	if err != nil {
		return Receipt{}, err
	}
	return s.Submit(o)
}

// Cancel withdraws a resting order. An unknown id is not an error.
func (s *OrderService) Cancel(id orderbook.OrderID) CancelReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := CancelReceipt{
		Seq:     s.seq.Next(),
		OrderID: id,
		Found:   s.book.CancelOrder(id),
	}
	s.log.Debug().Uint64("seq", r.Seq).Uint64("order", uint64(id)).Bool("found", r.Found).Msg("cancel")
	return r
}

// Populate loads the demonstration order set. It can run once per service.
func (s *OrderService) Populate() (PopulateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.populated {
		return PopulateResult{}, ErrAlreadyPopulated
	}

	var res PopulateResult
	for _, d := range demoOrders {
		o, err := d.order()
		if err != nil {
			return res, errors.Wrap(err, "demo order")
		}
		r, err := s.submit(o)
		if err != nil {
			s.export()
			return res, errors.Wrapf(err, "populate order %d", d.id)
		}
		res.Orders++
		res.Trades += len(r.Trades)
	}
	s.populated = true
	s.export()

	s.log.Info().Int("orders", res.Orders).Int("trades", res.Trades).Msg("book populated")
	return res, nil
}

func (s *OrderService) submit(o *orderbook.Order) (Receipt, error) {
	seq := s.seq.Next()
	res, err := s.book.AddOrder(o)
	if err != nil {
		s.log.Debug().Err(err).Uint64("seq", seq).Uint64("order", uint64(o.ID)).Msg("order rejected")
		return Receipt{}, err
	}
	s.log.Debug().
		Uint64("seq", seq).
		Uint64("order", uint64(o.ID)).
		Stringer("status", res.Status).
		Int("trades", len(res.Trades)).
		Msg("order processed")
	return Receipt{Seq: seq, AddResult: res}, nil
}

// export copies trades the tape has not seen yet. A failed append is
// retried with the next command.
func (s *OrderService) export() {
	if s.tape == nil {
		return
	}
	trades := s.book.TradesSince(s.exported)
	if len(trades) == 0 {
		return
	}

	now := time.Now().UnixNano()
	recs := make([]tape.Record, len(trades))
	for i, t := range trades {
		recs[i] = tape.Record{
			Seq:      t.Seq,
			TradeID:  t.ID,
			BidOrder: uint64(t.Bid.OrderID),
			AskOrder: uint64(t.Ask.OrderID),
			Price:    int64(t.Price()),
			Quantity: t.Quantity(),
			Time:     now,
		}
	}
	if err := s.tape.Append(recs...); err != nil {
		s.log.Error().Err(err).Uint64("from", trades[0].Seq).Msg("tape append failed")
		return
	}
	s.exported = trades[len(trades)-1].Seq
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

// Depth returns a consistent copy of the book's depth.
func (s *OrderService) Depth() snapshot.Depth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot.Take(s.seq.Current(), s.book)
}

// Trades returns the trade log.
func (s *OrderService) Trades() []orderbook.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Trades()
}

func (s *OrderService) Order(id orderbook.OrderID) (orderbook.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Order(id)
}

func (s *OrderService) Digest() orderbook.Digest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book.Digest()
}
