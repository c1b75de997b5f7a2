// Command generate writes a file of unique synthetic logins, one per line.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/dataset"
	"github.com/idudko/login-checker/internal/logger"
)

func main() {
	if err := Init(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Initialize(config.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("generation failed")
	}
}

func run(ctx context.Context) error {
	gen := dataset.NewGenerator(dataset.Options{
		MinLength: config.MinLength,
		MaxLength: config.MaxLength,
		Seed:      config.Seed,
	})

	start := time.Now()
	logins, err := gen.Unique(ctx, config.Count)
	if err != nil {
		return err
	}

	if err := dataset.Save(config.Output, logins); err != nil {
		return err
	}

	log.Info().
		Int("count", len(logins)).
		Str("output", config.Output).
		Dur("took", time.Since(start)).
		Msg("logins generated")
	return nil
}
