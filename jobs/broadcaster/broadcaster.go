package broadcaster

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"dombook/infra/tape"
)

const DefaultInterval = 250 * time.Millisecond

// Broadcaster drains trades from the tape into a Sink. A record counts as
// published once the sink accepted it; the tape cursor then moves past it.
type Broadcaster struct {
	tape     *tape.Tape
	sink     Sink
	interval time.Duration
	log      zerolog.Logger

	mu sync.Mutex
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(tp *tape.Tape, sink Sink, interval time.Duration, log zerolog.Logger) *Broadcaster {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Broadcaster{
		tape:     tp,
		sink:     sink,
		interval: interval,
		log:      log.With().Str("component", "broadcaster").Logger(),
	}
}

// ------------------------------------------------
// LOOP
// ------------------------------------------------

// Start runs the loop in its own goroutine. The returned channel is closed
// once the loop has stopped and the final drain is done.
func (b *Broadcaster) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Run(ctx)
	}()
	return done
}

// Run publishes pending trades every interval until ctx is done, then
// drains once more.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info().Dur("interval", b.interval).Msg("started")

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if _, err := b.PublishPending(context.Background()); err != nil {
				b.log.Warn().Err(err).Msg("final drain incomplete")
			}
			b.log.Info().Msg("stopped")
			return

		case <-ticker.C:
			if _, err := b.PublishPending(ctx); err != nil && ctx.Err() == nil {
				b.log.Warn().Err(err).Msg("publish failed, retrying next tick")
			}
		}
	}
}

// ------------------------------------------------
// DRAIN
// ------------------------------------------------

// PublishPending hands every unpublished record to the sink in sequence
// order. It stops at the first failure; that record and the ones after it
// stay pending.
func (b *Broadcaster) PublishPending(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var n int
	err := b.tape.Pending(func(rec tape.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := b.sink.Publish(ctx, rec); err != nil {
			return errors.Wrapf(err, "publish trade %d", rec.Seq)
		}
		n++
		return b.tape.MarkPublished(rec.Seq)
	})
	if n > 0 {
		b.log.Debug().Int("count", n).Msg("trades published")
	}
	return n, err
}
