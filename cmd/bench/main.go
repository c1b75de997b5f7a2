// Command bench measures every configured login checker over a login file
// at several input sizes, prints the results and optionally stores or
// publishes the run.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/bench"
	"github.com/idudko/login-checker/internal/checker"
	"github.com/idudko/login-checker/internal/dataset"
	"github.com/idudko/login-checker/internal/logger"
	"github.com/idudko/login-checker/internal/model"
	"github.com/idudko/login-checker/internal/publisher"
	"github.com/idudko/login-checker/internal/report"
	"github.com/idudko/login-checker/internal/repository"
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

	if err := run(ctx, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
}

func run(ctx context.Context, out io.Writer) error {
	logins, source, err := loadLogins()
	if err != nil {
		return err
	}
	log.Info().Str("dataset", source).Int("logins", len(logins)).Msg("dataset loaded")

	var printMu sync.Mutex
	suite := &bench.Suite{
		Sizes:      config.Sizes,
		Algorithms: config.Algorithms,
		Options: checker.Options{
			Capacity:  config.Capacity,
			ErrorRate: config.ErrorRate,
		},
		Workers: config.Workers,
		Dataset: source,
		OnResult: func(r model.Result) {
			printMu.Lock()
			defer printMu.Unlock()
			if err := report.Print(out, r); err != nil {
				log.Warn().Err(err).Msg("failed to print result")
			}
		},
	}

	result, err := suite.Run(ctx, logins)
	if err != nil {
		return err
	}
	log.Info().
		Str("run_id", result.ID).
		Int("results", len(result.Results)).
		Dur("took", result.FinishedAt.Sub(result.StartedAt)).
		Msg("benchmark finished")

	if _, err := fmt.Fprintln(out); err != nil {
		return err
	}
	if err := report.Table(out, result); err != nil {
		return err
	}

	if err := store(ctx, result); err != nil {
		return err
	}
	return publish(ctx, result)
}

// loadLogins reads the configured login file, or builds sequential logins
// covering the largest size when no file is configured.
func loadLogins() ([]string, string, error) {
	if config.DataPath == "" {
		n := slices.Max(config.Sizes)
		return dataset.Sequential(n), "sequential", nil
	}

	logins, err := dataset.Load(config.DataPath)
	if err != nil {
		return nil, "", err
	}
	if len(logins) < slices.Max(config.Sizes) {
		log.Warn().
			Int("logins", len(logins)).
			Int("largest_size", slices.Max(config.Sizes)).
			Msg("dataset is smaller than the largest size, results record the actual count")
	}
	return logins, config.DataPath, nil
}

func store(ctx context.Context, result *model.Run) error {
	var storages []repository.Storage

	if config.ResultsFile != "" {
		fs, err := repository.NewFileStorage(config.ResultsFile, true)
		if err != nil {
			return err
		}
		defer fs.Close()
		storages = append(storages, fs)
	}

	if config.DSN != "" {
		db, err := repository.NewDBStorage(ctx, config.DSN, repository.DefaultMigrationsPath)
		if err != nil {
			return err
		}
		defer db.Close()
		storages = append(storages, db)
	}

	for _, s := range storages {
		if err := s.SaveRun(ctx, result); err != nil {
			return fmt.Errorf("failed to store run: %w", err)
		}
	}
	if len(storages) > 0 {
		log.Info().Str("run_id", result.ID).Int("storages", len(storages)).Msg("run stored")
	}
	return nil
}

func publish(ctx context.Context, result *model.Run) error {
	if config.Address == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(config.PublishTimeout)*time.Second)
	defer cancel()

	return publisher.NewPublisher(config.Address, config.Key).Publish(ctx, result)
}
