package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/idudko/login-checker/internal/model"
	"github.com/idudko/login-checker/internal/repository"
)

func validRun(id string, startedAt time.Time) *model.Run {
	return &model.Run{
		ID:        id,
		StartedAt: startedAt,
		Results: []model.Result{
			{Algorithm: "HashTable", NumLogins: 10, NumLookups: 10, AddComparisons: 10, LookupComparisons: 10, LookupsFound: 5},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Run)
		wantErr bool
	}{
		{name: "valid", mutate: func(*model.Run) {}},
		{name: "missing id", mutate: func(r *model.Run) { r.ID = "" }, wantErr: true},
		{name: "no results", mutate: func(r *model.Run) { r.Results = nil }, wantErr: true},
		{name: "unknown algorithm", mutate: func(r *model.Run) { r.Results[0].Algorithm = "Magic" }, wantErr: true},
		{name: "negative counter", mutate: func(r *model.Run) { r.Results[0].AddComparisons = -1 }, wantErr: true},
		{name: "found exceeds lookups", mutate: func(r *model.Run) { r.Results[0].LookupsFound = 11 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := validRun("r", time.Now())
			tt.mutate(run)
			err := Validate(run)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRun) {
				t.Errorf("error %v does not wrap ErrInvalidRun", err)
			}
		})
	}
}

func TestResultsService_Latest(t *testing.T) {
	svc := NewResultsService(repository.NewMemStorage())
	ctx := context.Background()

	if _, err := svc.Latest(ctx); !errors.Is(err, repository.ErrRunNotFound) {
		t.Fatalf("Latest on empty storage error = %v", err)
	}

	base := time.Now()
	if err := svc.Save(ctx, validRun("old", base)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save(ctx, validRun("new", base.Add(time.Minute))); err != nil {
		t.Fatal(err)
	}

	run, err := svc.Latest(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if run.ID != "new" {
		t.Errorf("Latest() = %s, want new", run.ID)
	}
}
