// Package hash signs and verifies request bodies with HMAC-SHA256.
package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeHash returns the hex HMAC-SHA256 of data under key, or "" when key
// is empty.
//
// Example:
//
//	sig := hash.ComputeHash(body, "secret")
//	req.Header.Set("HashSHA256", sig)
func ComputeHash(data []byte, key string) string {
	if key == "" {
		return ""
	}
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ValidateHash reports whether receivedHash is the signature of data under key.
//
// An empty key disables validation and always returns true; an empty
// receivedHash with a key set returns false. Comparison is constant time.
func ValidateHash(data []byte, key string, receivedHash string) bool {
	if key == "" {
		return true
	}
	if receivedHash == "" {
		return false
	}
	return hmac.Equal([]byte(ComputeHash(data, key)), []byte(receivedHash))
}
