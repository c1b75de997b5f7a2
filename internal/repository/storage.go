package repository

import (
	"context"
	"errors"

	"github.com/idudko/login-checker/internal/model"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrRunExists   = errors.New("run already exists")
)

// Storage persists benchmark runs.
type Storage interface {
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	// ListRuns returns summaries ordered by start time, oldest first.
	ListRuns(ctx context.Context) ([]model.RunSummary, error)
	Ping(ctx context.Context) error
	Close()
}
