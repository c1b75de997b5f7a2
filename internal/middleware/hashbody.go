package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/pkg/hash"
)

// HashHeader carries the hex HMAC-SHA256 of the raw request body.
const HashHeader = "HashSHA256"

// maxSignedBodySize bounds the body buffered for signature checks.
var maxSignedBodySize int64 = 32 << 20

// HashValidationMiddleware rejects requests whose body does not match the
// HMAC-SHA256 signature in the HashSHA256 header.
//
// Behavior:
//   - empty key: validation disabled
//   - missing header or "none": request passes unchecked
//   - mismatch: 400 Bad Request
//   - body over 32 MiB: 413 Request Entity Too Large
//
// The signature covers the body as sent, so this middleware must run before
// GzipRequestMiddleware.
func HashValidationMiddleware(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			receivedHash := r.Header.Get(HashHeader)
			if receivedHash == "" || receivedHash == "none" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSignedBodySize))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if !hash.ValidateHash(body, key, receivedHash) {
				log.Warn().Str("uri", r.RequestURI).Msg("invalid hash signature")
				http.Error(w, "Invalid hash signature", http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
