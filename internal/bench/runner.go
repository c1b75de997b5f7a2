// Package bench measures login checkers: it times adds and lookups and
// records the comparisons each checker reports.
package bench

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/checker"
	"github.com/idudko/login-checker/internal/model"
)

// DefaultSizes are the input sizes measured when none are configured.
var DefaultSizes = []int{100, 500, 1000, 2000, 5000}

// ErrEmptySuite is returned when a suite has no sizes or no algorithms.
var ErrEmptySuite = errors.New("suite has no sizes or algorithms")

// ErrInvalidSize is returned for a negative login or lookup count, or a
// suite size that is not positive.
var ErrInvalidSize = errors.New("invalid size")

// LookupNames builds the lookup workload: even positions hit logins[i/2]
// while it exists, every other position is a guaranteed miss.
func LookupNames(logins []string, numLookups int) []string {
	names := make([]string, numLookups)
	for i := range names {
		if i%2 == 0 && i/2 < len(logins) {
			names[i] = logins[i/2]
		} else {
			names[i] = "nonexistent" + strconv.Itoa(i)
		}
	}
	return names
}

// RunTest adds the first numLogins logins to a fresh checker, then performs
// numLookups lookups, timing and counting comparisons for each phase.
func RunTest(ctx context.Context, factory checker.Factory, numLogins, numLookups int, logins []string) (model.Result, error) {
	select {
	case <-ctx.Done():
		return model.Result{}, ctx.Err()
	default:
	}

	if numLogins < 0 || numLookups < 0 {
		return model.Result{}, fmt.Errorf("%w: %d logins, %d lookups", ErrInvalidSize, numLogins, numLookups)
	}

	if numLogins < len(logins) {
		logins = logins[:numLogins]
	}
	c := factory()

	start := time.Now()
	for _, l := range logins {
		c.Add(l)
	}
	addTime := time.Since(start)
	addComparisons := c.Comparisons()
	c.ResetStats()

	names := LookupNames(logins, numLookups)

	found := 0
	start = time.Now()
	for _, name := range names {
		if c.Exists(name) {
			found++
		}
	}
	lookupTime := time.Since(start)

	return model.Result{
		Algorithm:         c.Name(),
		NumLogins:         len(logins),
		NumLookups:        numLookups,
		AddTime:           addTime,
		AddComparisons:    addComparisons,
		LookupTime:        lookupTime,
		LookupComparisons: c.Comparisons(),
		LookupsFound:      found,
	}, nil
}

// Suite is a grid of sizes and algorithms.
type Suite struct {
	Sizes      []int
	Algorithms []string
	Options    checker.Options
	// Workers above 1 measures several cells at once. Timings then compete
	// for CPU, comparison counts are unaffected.
	Workers int
	Dataset string
	// OnResult, if set, is called from the worker goroutines as each cell
	// completes.
	OnResult func(model.Result)
}

// Run measures every size x algorithm cell over logins. Results are ordered
// by size, then by algorithm, in the order they were configured.
func (s *Suite) Run(ctx context.Context, logins []string) (*model.Run, error) {
	if len(s.Sizes) == 0 || len(s.Algorithms) == 0 {
		return nil, ErrEmptySuite
	}
	for _, size := range s.Sizes {
		if size <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
		}
	}

	factories := make([]checker.Factory, len(s.Algorithms))
	for i, name := range s.Algorithms {
		f, err := checker.NewFactory(name, s.Options)
		if err != nil {
			return nil, err
		}
		factories[i] = f
	}

	run := &model.Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Dataset:   s.Dataset,
		Host:      HostInfo(ctx),
		Results:   make([]model.Result, len(s.Sizes)*len(s.Algorithms)),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(s.Workers)
	pool.Start(ctx)

	var enqueueErr error
	for i, size := range s.Sizes {
		for j := range s.Algorithms {
			slot := i*len(s.Algorithms) + j
			factory := factories[j]
			err := pool.EnqueueTask(ctx, func(ctx context.Context) error {
				res, err := RunTest(ctx, factory, size, size, logins)
				if err != nil {
					cancel()
					return err
				}
				run.Results[slot] = res
				if s.OnResult != nil {
					s.OnResult(res)
				}
				log.Debug().
					Str("algorithm", res.Algorithm).
					Int("size", res.NumLogins).
					Dur("add_time", res.AddTime).
					Dur("lookup_time", res.LookupTime).
					Msg("cell measured")
				return nil
			})
			if err != nil {
				enqueueErr = err
				break
			}
		}
		if enqueueErr != nil {
			break
		}
	}

	// A failing task cancels ctx, so its error is the cause of any enqueue error.
	if taskErr := pool.Stop(); taskErr != nil {
		return nil, taskErr
	}
	if enqueueErr != nil {
		return nil, enqueueErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run.FinishedAt = time.Now().UTC()
	return run, nil
}
