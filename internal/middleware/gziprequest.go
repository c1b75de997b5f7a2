package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// GzipRequestMiddleware transparently decompresses gzip encoded JSON bodies.
// Other encoded content types are rejected.
func GzipRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Encoding") != "gzip" {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			http.Error(w, "Unsupported content type", http.StatusBadRequest)
			return
		}

		g, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, "Failed to read gzip body", http.StatusBadRequest)
			return
		}
		defer g.Close()
		r.Body = g
		r.Header.Del("Content-Encoding")
		next.ServeHTTP(w, r)
	})
}
