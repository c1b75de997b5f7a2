// Package publisher sends finished benchmark runs to the results server.
package publisher

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/model"
	"github.com/idudko/login-checker/internal/netutil"
	"github.com/idudko/login-checker/pkg/hash"
	"github.com/idudko/login-checker/pkg/pool"
)

const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 5 * time.Second
	requestTimeout      = 30 * time.Second
)

var buffers = pool.New(func() *bytes.Buffer {
	return bytes.NewBuffer(make([]byte, 0, 16<<10))
})

type Publisher struct {
	url    string
	key    string
	client *retryablehttp.Client
}

// NewPublisher returns a Publisher posting to address, either host:port or a
// full base URL. A non-empty key signs every body with HMAC-SHA256.
func NewPublisher(address, key string) *Publisher {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.RetryWaitMin = defaultRetryWaitMin
	client.RetryWaitMax = defaultRetryWaitMax
	client.HTTPClient.Timeout = requestTimeout
	client.CheckRetry = retryPolicy
	client.Logger = zerologAdapter{}

	return &Publisher{
		url:    runsURL(address),
		key:    key,
		client: client,
	}
}

func runsURL(address string) string {
	address = strings.TrimSuffix(address, "/")
	if !strings.HasPrefix(address, "http://") && !strings.HasPrefix(address, "https://") {
		address = "http://" + address
	}
	return address + "/runs"
}

// retryPolicy retries transport errors and 5xx, never 4xx: a rejected run
// will be rejected again.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err == nil && resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Publish posts run as gzip compressed JSON and waits for the server to
// accept it.
func (p *Publisher) Publish(ctx context.Context, run *model.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	buf := buffers.Get()
	defer buffers.Put(buf)

	gw := gzip.NewWriter(buf)
	if _, err := gw.Write(data); err != nil {
		return fmt.Errorf("failed to write data to gzip writer: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	compressed := buf.Bytes()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, p.url, compressed)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.key != "" {
		req.Header.Set("HashSHA256", hash.ComputeHash(compressed, p.key))
	}

	if ip, err := netutil.GetLocalIP(); err == nil {
		req.Header.Set("X-Real-IP", ip)
	} else {
		log.Debug().Err(err).Msg("sending run without X-Real-IP")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish run %s: %w", run.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to publish run %s: unexpected status code: %d", run.ID, resp.StatusCode)
	}

	log.Info().Str("run_id", run.ID).Str("url", p.url).Int("bytes", len(compressed)).Msg("run published")
	return nil
}

// zerologAdapter routes retryablehttp's leveled logs into zerolog.
type zerologAdapter struct{}

func (zerologAdapter) Error(msg string, kv ...any) { log.Error().Fields(kv).Msg(msg) }
func (zerologAdapter) Info(msg string, kv ...any)  { log.Debug().Fields(kv).Msg(msg) }
func (zerologAdapter) Debug(msg string, kv ...any) { log.Debug().Fields(kv).Msg(msg) }
func (zerologAdapter) Warn(msg string, kv ...any)  { log.Warn().Fields(kv).Msg(msg) }
