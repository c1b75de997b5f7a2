package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/idudko/login-checker/internal/model"
)

type MemStorage struct {
	runs map[string]*model.Run
	mu   sync.RWMutex
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		runs: make(map[string]*model.Run),
	}
}

func (s *MemStorage) SaveRun(ctx context.Context, run *model.Run) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[run.ID]; ok {
		return ErrRunExists
	}
	s.runs[run.ID] = cloneRun(run)
	return nil
}

func (s *MemStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return cloneRun(run), nil
}

func (s *MemStorage) ListRuns(ctx context.Context) ([]model.RunSummary, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, run.Summary())
	}
	slices.SortFunc(out, func(a, b model.RunSummary) int {
		if c := a.StartedAt.Compare(b.StartedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemStorage) Close() {}

func (s *MemStorage) deleteRun(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, id)
}

func (s *MemStorage) snapshot() []*model.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Run, 0, len(s.runs))
	for _, run := range s.runs {
		out = append(out, cloneRun(run))
	}
	return out
}

func cloneRun(run *model.Run) *model.Run {
	c := *run
	c.Results = slices.Clone(run.Results)
	return &c
}

