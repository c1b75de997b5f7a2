package publisher

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idudko/login-checker/internal/model"
	"github.com/idudko/login-checker/pkg/hash"
)

func testRun() *model.Run {
	return &model.Run{
		ID:        "run-1",
		StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Results: []model.Result{
			{Algorithm: "HashTable", NumLogins: 100, NumLookups: 100, LookupsFound: 50},
		},
	}
}

func fastPublisher(url, key string) *Publisher {
	p := NewPublisher(url, key)
	p.client.RetryWaitMin = time.Millisecond
	p.client.RetryWaitMax = 5 * time.Millisecond
	return p
}

func TestRunsURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/runs", runsURL("localhost:8080"))
	assert.Equal(t, "https://results.example/runs", runsURL("https://results.example/"))
}

func TestPublish_SendsSignedGzipJSON(t *testing.T) {
	const key = "secret"
	var got model.Run
	var validSignature bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs", r.URL.Path)
		assert.Equal(t, "gzip", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		validSignature = hash.ValidateHash(raw, key, r.Header.Get("HashSHA256"))

		gr, err := gzip.NewReader(bytes.NewReader(raw))
		require.NoError(t, err)
		require.NoError(t, json.NewDecoder(gr).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := fastPublisher(server.URL, key).Publish(context.Background(), testRun())
	require.NoError(t, err)

	assert.True(t, validSignature)
	assert.Equal(t, "run-1", got.ID)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "HashTable", got.Results[0].Algorithm)
}

func TestPublish_RetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, fastPublisher(server.URL, "").Publish(context.Background(), testRun()))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestPublish_GivesUp(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := fastPublisher(server.URL, "").Publish(context.Background(), testRun())
	require.Error(t, err)
	assert.Equal(t, int32(defaultRetryMax+1), attempts.Load())
}

func TestPublish_NoRetryOnClientError(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "duplicate", http.StatusConflict)
	}))
	defer server.Close()

	err := fastPublisher(server.URL, "").Publish(context.Background(), testRun())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestPublish_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fastPublisher(server.URL, "").Publish(ctx, testRun())
	require.ErrorIs(t, err, context.Canceled)
}
