package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "10", want: 10},
		{in: "10s", want: 10},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "0s", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSizes(t *testing.T) {
	got, err := ParseSizes(" 100, 500 ,,1000")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{100, 500, 1000}) {
		t.Errorf("ParseSizes = %v", got)
	}

	for _, bad := range []string{"", "10,x", "10,-5"} {
		if _, err := ParseSizes(bad); err == nil {
			t.Errorf("ParseSizes(%q) expected error", bad)
		}
	}
}

func TestParseList(t *testing.T) {
	got := ParseList("HashTable, Trie,,")
	if !slices.Equal(got, []string{"HashTable", "Trie"}) {
		t.Errorf("ParseList = %v", got)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"address":"example:9090","sizes":[10,20]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg struct {
		Address string `json:"address"`
		Sizes   []int  `json:"sizes"`
	}
	if err := LoadConfigFile(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Address != "example:9090" || !slices.Equal(cfg.Sizes, []int{10, 20}) {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.json"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyIfDefault(t *testing.T) {
	addr := "localhost:8080"
	ApplyStringIfDefault(&addr, "localhost:8080", "remote:80")
	if addr != "remote:80" {
		t.Errorf("addr = %q", addr)
	}
	ApplyStringIfDefault(&addr, "localhost:8080", "other:80")
	if addr != "remote:80" {
		t.Errorf("overridden value replaced: %q", addr)
	}

	sizes := []int{1, 2}
	ApplySliceIfDefault(&sizes, []int{1, 2}, []int{5})
	if !slices.Equal(sizes, []int{5}) {
		t.Errorf("sizes = %v", sizes)
	}

	timeout := 30
	ApplyDurationIfDefault(&timeout, 30, "5s")
	if timeout != 5 {
		t.Errorf("timeout = %d", timeout)
	}

	rate := 0.001
	ApplyFloatIfDefault(&rate, 0.001, 0.01)
	if rate != 0.01 {
		t.Errorf("rate = %v", rate)
	}

	restore := false
	ApplyBoolIfDefault(&restore, true)
	if !restore {
		t.Error("restore not applied")
	}
}
