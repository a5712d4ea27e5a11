package broadcaster

import (
	"context"

	"github.com/rs/zerolog"

	"dombook/domain/orderbook"
	"dombook/infra/tape"
)

// Sink receives published trades.
type Sink interface {
	Publish(ctx context.Context, rec tape.Record) error
}

type SinkFunc func(ctx context.Context, rec tape.Record) error

func (f SinkFunc) Publish(ctx context.Context, rec tape.Record) error { return f(ctx, rec) }

// LogSink writes every trade as a structured log event.
type LogSink struct {
	Log zerolog.Logger
}

func (s LogSink) Publish(_ context.Context, rec tape.Record) error {
	s.Log.Info().
		Uint64("seq", rec.Seq).
		Str("trade", rec.TradeID.String()).
		Uint64("bid_order", rec.BidOrder).
		Uint64("ask_order", rec.AskOrder).
		Stringer("price", orderbook.Ticks(rec.Price)).
		Int64("qty", rec.Quantity).
		Msg("trade")
	return nil
}
