// Package audit delivers ingest events for stored benchmark runs to a set of
// observers (append-only file, HTTP endpoint).
package audit

import (
	"bytes"
	"net"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// AuditEvent records which runs were ingested, when and from where.
type AuditEvent struct {
	Timestamp int64    `json:"ts"`
	Runs      []string `json:"runs"`
	IPAddress string   `json:"ip_address"`
}

type Observer interface {
	Notify(event AuditEvent)
}

// FileObserver appends one JSON line per event to filePath.
type FileObserver struct {
	mu       sync.Mutex
	filePath string
}

func NewFileObserver(filePath string) *FileObserver {
	return &FileObserver{
		filePath: filePath,
	}
}

func (o *FileObserver) Notify(event AuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal audit event")
		return
	}
	data = append(data, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()

	file, err := os.OpenFile(o.filePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		log.Error().Err(err).Str("path", o.filePath).Msg("failed to open audit file")
		return
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		log.Error().Err(err).Str("path", o.filePath).Msg("failed to write audit event")
	}
}

// HTTPObserver POSTs every event as JSON to url.
type HTTPObserver struct {
	url    string
	client *http.Client
}

func NewHTTPObserver(url string) *HTTPObserver {
	return &HTTPObserver{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (o *HTTPObserver) Notify(event AuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal audit event")
		return
	}

	resp, err := o.client.Post(o.url, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Error().Err(err).Str("url", o.url).Msg("failed to send audit event")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", o.url).Msg("audit endpoint returned non-OK status")
	}
}

// Subject fans events out to the attached observers. Safe for concurrent use.
type Subject struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewSubject() *Subject {
	return &Subject{
		observers: make([]Observer, 0),
	}
}

func (s *Subject) Attach(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Detach removes the first occurrence of observer.
func (s *Subject) Detach(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.observers, observer); i >= 0 {
		s.observers = slices.Delete(s.observers, i, i+1)
	}
}

func (s *Subject) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

func (s *Subject) NotifyAll(event AuditEvent) {
	s.mu.RLock()
	observers := slices.Clone(s.observers)
	s.mu.RUnlock()

	for _, observer := range observers {
		observer.Notify(event)
	}
}

// GetClientIP prefers X-Forwarded-For, then X-Real-IP, then RemoteAddr.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func CreateAuditEvent(r *http.Request, runs []string) AuditEvent {
	return AuditEvent{
		Timestamp: time.Now().Unix(),
		Runs:      slices.Clone(runs),
		IPAddress: GetClientIP(r),
	}
}
