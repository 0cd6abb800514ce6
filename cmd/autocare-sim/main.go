package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/autocare-ai/autocare/internal/simserver"
)

var version = "dev"

func main() {
	var addr string
	flag.StringVar(&addr, "addr", "0.0.0.0:8000", "listen address")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("version", version).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := simserver.NewServer(addr, log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("starting telemetry simulator")
		return srv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return srv.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("simulator exited")
	}
}
