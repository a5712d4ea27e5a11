package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"dombook/config"
	"dombook/dom"
	"dombook/domain/orderbook"
	"dombook/infra/logging"
	"dombook/infra/sequence"
	"dombook/infra/tape"
	"dombook/jobs/broadcaster"
	"dombook/service"
)

func main() {
	// ---------------- Config ----------------

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// ---------------- Logging ----------------

	log, err := logging.New(os.Stderr, logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Color:  cfg.Color,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("exited")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	// ---------------- Trade Tape ----------------

	var tp *tape.Tape
	if cfg.Tape {
		var err error
		tp, err = tape.Open(tape.Config{Logger: log})
		if err != nil {
			return err
		}
		defer tp.Close()
	}

	// ---------------- Domain ----------------

	book := orderbook.NewOrderBook(
		orderbook.WithLogger(log.With().Str("component", "orderbook").Logger()),
	)

	// ---------------- Service ----------------

	svc := service.NewOrderService(book, sequence.New(0), tp, log)

	// ---------------- Background Jobs ----------------

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var jobDone <-chan struct{}
	if tp != nil {
		bc := broadcaster.New(tp, broadcaster.LogSink{Log: log}, cfg.BroadcastInterval, log)
		jobDone = bc.Start(jobCtx)
	}

	// ---------------- Console ----------------

	con := newConsole(os.Stdin, os.Stdout, svc, tp, dom.Options{
		BarWidth: cfg.BarWidth,
		Color:    logging.ColorEnabled(os.Stdout, cfg.Color),
	})

	conErr := make(chan error, 1)
	go func() { conErr <- con.run() }()

	var err error
	select {
	case err = <-conErr:
	case <-ctx.Done():
		log.Info().Msg("interrupted")
	}

	cancel()
	if jobDone != nil {
		<-jobDone
	}
	return err
}
