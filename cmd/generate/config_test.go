package main

import (
	"os"
	"path/filepath"
	"testing"
)

func resetConfig() {
	config = Config{
		Count:     defaultCount,
		Output:    defaultOutput,
		MinLength: defaultMinLen,
		MaxLength: defaultMaxLen,
		LogLevel:  "info",
	}
}

func TestInit_Priority(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	cfgPath := filepath.Join(t.TempDir(), "generate.json")
	if err := os.WriteFile(cfgPath, []byte(`{"count": 10, "output": "from-file.txt", "seed": 7, "max_length": 20}`), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OUTPUT", "from-env.txt")
	t.Setenv("MIN_LENGTH", "6")

	if err := Init([]string{"-c", cfgPath, "-min", "8"}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "count from file", got: config.Count, want: 10},
		{name: "seed from file", got: config.Seed, want: int64(7)},
		{name: "output env over file", got: config.Output, want: "from-env.txt"},
		{name: "min flag over env", got: config.MinLength, want: 8},
		{name: "max from file", got: config.MaxLength, want: 20},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestInit_Defaults(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)
	t.Setenv("CONFIG", "")

	if err := Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if config.Count != defaultCount || config.Output != defaultOutput {
		t.Errorf("unexpected defaults: %+v", config)
	}
}
