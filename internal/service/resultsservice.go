package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/idudko/login-checker/internal/checker"
	"github.com/idudko/login-checker/internal/model"
	"github.com/idudko/login-checker/internal/repository"
)

var ErrInvalidRun = errors.New("invalid run")

type ResultsService struct {
	storage repository.Storage
}

func NewResultsService(storage repository.Storage) *ResultsService {
	return &ResultsService{storage: storage}
}

// Validate checks that a run is well formed before it is stored.
func Validate(run *model.Run) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRun)
	}
	if len(run.Results) == 0 {
		return fmt.Errorf("%w: no results", ErrInvalidRun)
	}
	for i, r := range run.Results {
		if !checker.IsKnown(r.Algorithm) {
			return fmt.Errorf("%w: result %d: unknown algorithm %q", ErrInvalidRun, i, r.Algorithm)
		}
		if r.NumLogins < 0 || r.NumLookups < 0 || r.AddComparisons < 0 || r.LookupComparisons < 0 ||
			r.AddTime < 0 || r.LookupTime < 0 || r.LookupsFound < 0 || r.LookupsFound > r.NumLookups {
			return fmt.Errorf("%w: result %d: negative or inconsistent counters", ErrInvalidRun, i)
		}
	}
	return nil
}

func (s *ResultsService) Save(ctx context.Context, run *model.Run) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := Validate(run); err != nil {
		return err
	}
	return s.storage.SaveRun(ctx, run)
}

func (s *ResultsService) Get(ctx context.Context, id string) (*model.Run, error) {
	return s.storage.GetRun(ctx, id)
}

func (s *ResultsService) List(ctx context.Context) ([]model.RunSummary, error) {
	return s.storage.ListRuns(ctx)
}

// Latest returns the most recently started run, or repository.ErrRunNotFound
// when nothing is stored.
func (s *ResultsService) Latest(ctx context.Context) (*model.Run, error) {
	runs, err := s.storage.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, repository.ErrRunNotFound
	}
	return s.storage.GetRun(ctx, runs[len(runs)-1].ID)
}

func (s *ResultsService) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
