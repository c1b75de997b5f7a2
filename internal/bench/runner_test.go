package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idudko/login-checker/internal/checker"
	"github.com/idudko/login-checker/internal/dataset"
)

func TestLookupNames(t *testing.T) {
	names := LookupNames([]string{"a", "b"}, 6)
	assert.Equal(t, []string{"a", "nonexistent1", "b", "nonexistent3", "nonexistent4", "nonexistent5"}, names)
}

func TestRunTest(t *testing.T) {
	factory, err := checker.NewFactory(checker.HashTable, checker.Options{})
	require.NoError(t, err)

	logins := dataset.Sequential(200)
	res, err := RunTest(context.Background(), factory, 100, 100, logins)
	require.NoError(t, err)

	assert.Equal(t, checker.HashTable, res.Algorithm)
	assert.Equal(t, 100, res.NumLogins)
	assert.Equal(t, 100, res.NumLookups)
	assert.Equal(t, int64(100), res.AddComparisons)
	assert.Equal(t, int64(100), res.LookupComparisons)
	assert.Equal(t, 50, res.LookupsFound)
}

func TestRunTest_SmallDataset(t *testing.T) {
	factory, _ := checker.NewFactory(checker.ListLinearSearch, checker.Options{})

	res, err := RunTest(context.Background(), factory, 1000, 10, dataset.Sequential(3))
	require.NoError(t, err)
	assert.Equal(t, 3, res.NumLogins)
	assert.Equal(t, 3, res.LookupsFound)
	// 0+1+2 while adding
	assert.Equal(t, int64(3), res.AddComparisons)
}

func TestRunTest_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	factory, _ := checker.NewFactory(checker.Trie, checker.Options{})
	_, err := RunTest(ctx, factory, 10, 10, dataset.Sequential(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSuite_Run(t *testing.T) {
	for _, workers := range []int{1, 4} {
		s := &Suite{
			Sizes:      []int{10, 50},
			Algorithms: []string{checker.SortedArrayBinarySearch, checker.HashTable, checker.CuckooFilter},
			Workers:    workers,
		}
		run, err := s.Run(context.Background(), dataset.Sequential(100))
		require.NoError(t, err)

		require.NotEmpty(t, run.ID)
		require.Len(t, run.Results, 6)
		for i, res := range run.Results {
			assert.Equal(t, s.Algorithms[i%3], res.Algorithm)
			assert.Equal(t, s.Sizes[i/3], res.NumLogins)
			assert.Equal(t, res.NumLogins/2, res.LookupsFound)
		}
		assert.False(t, run.FinishedAt.Before(run.StartedAt))
	}
}

func TestSuite_Errors(t *testing.T) {
	_, err := (&Suite{Algorithms: []string{checker.HashTable}}).Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptySuite)

	_, err = (&Suite{Sizes: []int{1}, Algorithms: []string{"Quantum"}}).Run(context.Background(), nil)
	assert.ErrorIs(t, err, checker.ErrUnknownAlgorithm)
}

func TestSuite_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Suite{Sizes: []int{10}, Algorithms: []string{checker.HashTable}}
	_, err := s.Run(ctx, dataset.Sequential(10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTest_NegativeCounts(t *testing.T) {
	factory, _ := checker.NewFactory(checker.HashTable, checker.Options{})

	_, err := RunTest(context.Background(), factory, -5, -5, dataset.Sequential(10))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = RunTest(context.Background(), factory, 5, -1, dataset.Sequential(10))
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestSuite_InvalidSize(t *testing.T) {
	for _, sizes := range [][]int{{-5, 100}, {10, 0}} {
		s := &Suite{Sizes: sizes, Algorithms: []string{checker.HashTable}}
		_, err := s.Run(context.Background(), dataset.Sequential(100))
		assert.ErrorIs(t, err, ErrInvalidSize, "sizes %v", sizes)
	}
}
