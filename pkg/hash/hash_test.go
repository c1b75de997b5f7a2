package hash

import (
	"bytes"
	"testing"
)

func TestComputeHash(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		key  string
		want string
	}{
		// RFC 4231 test case 2.
		{
			name: "known vector",
			data: []byte("what do ya want for nothing?"),
			key:  "Jefe",
			want: "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
		{
			name: "empty key disables signing",
			data: []byte(`{"id":"r1"}`),
			key:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeHash(tt.data, tt.key); got != tt.want {
				t.Errorf("ComputeHash() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValidateHash(t *testing.T) {
	body := []byte(`{"id":"r1","results":[]}`)
	sig := ComputeHash(body, "secret")

	tests := []struct {
		name     string
		data     []byte
		key      string
		received string
		want     bool
	}{
		{name: "valid", data: body, key: "secret", received: sig, want: true},
		{name: "no key", data: body, key: "", received: "whatever", want: true},
		{name: "empty signature", data: body, key: "secret", received: "", want: false},
		{name: "wrong key", data: body, key: "other", received: sig, want: false},
		{name: "tampered body", data: bytes.ToUpper(body), key: "secret", received: sig, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateHash(tt.data, tt.key, tt.received); got != tt.want {
				t.Errorf("ValidateHash() = %v, want %v", got, tt.want)
			}
		})
	}
}

func benchmarkComputeHash(b *testing.B, size int) {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 256)
	}

	b.SetBytes(int64(size))
	for b.Loop() {
		ComputeHash(data, "secret-key")
	}
}

func BenchmarkComputeHash_1KB(b *testing.B) { benchmarkComputeHash(b, 1<<10) }
func BenchmarkComputeHash_64KB(b *testing.B) { benchmarkComputeHash(b, 64<<10) }
func BenchmarkComputeHash_1MB(b *testing.B) { benchmarkComputeHash(b, 1<<20) }

func BenchmarkValidateHash(b *testing.B) {
	data := []byte(`{"id":"r1","results":[]}`)
	sig := ComputeHash(data, "secret-key")

	for b.Loop() {
		ValidateHash(data, "secret-key", sig)
	}
}
