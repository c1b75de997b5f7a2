// Package config holds the helpers shared by the per-binary configuration
// loaders: JSON config files, list parsing and default-aware merging.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// LoadConfigFile loads configuration from a JSON file.
//
// Parameters:
//   - path: Path to the JSON configuration file
//   - cfg: Pointer to config struct to unmarshal into
//
// Returns:
//   - error: An error if file cannot be read or JSON is invalid
//
// Example:
//
//	var cfg JSONConfig
//	if err := config.LoadConfigFile("bench.json", &cfg); err != nil {
//	    return err
//	}
func LoadConfigFile(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// ParseDuration parses a duration string with optional 's' suffix and
// returns whole seconds. "10" and "10s" both yield 10.
func ParseDuration(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty duration")
	}

	s = strings.TrimSuffix(s, "s")

	var duration int
	if _, err := fmt.Sscanf(s, "%d", &duration); err != nil {
		return 0, fmt.Errorf("invalid duration format: %w", err)
	}

	if duration <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %d", duration)
	}

	return duration, nil
}

// ParseList splits a comma separated list, trimming blanks and dropping
// empty items.
func ParseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ParseSizes parses a comma separated list of positive integers such as
// "100,500,1000".
func ParseSizes(s string) ([]int, error) {
	items := ParseList(s)
	if len(items) == 0 {
		return nil, errors.New("empty size list")
	}

	sizes := make([]int, 0, len(items))
	for _, item := range items {
		n, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", item, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("size must be positive, got %d", n)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// GetConfigFilePath returns configFlag if set, otherwise the CONFIG
// environment variable.
func GetConfigFilePath(configFlag string) string {
	if configFlag != "" {
		return configFlag
	}
	return os.Getenv("CONFIG")
}

// ApplyStringIfDefault applies jsonValue only if current still equals the default.
//
// Example:
//
//	ApplyStringIfDefault(&cfg.Address, "localhost:8080", jsonCfg.Address)
func ApplyStringIfDefault(current *string, defaultValue, jsonValue string) {
	if jsonValue != "" && *current == defaultValue {
		*current = jsonValue
	}
}

// ApplyIntIfDefault applies a positive jsonValue only if current still equals the default.
func ApplyIntIfDefault(current *int, defaultValue, jsonValue int) {
	if jsonValue > 0 && *current == defaultValue {
		*current = jsonValue
	}
}

// ApplyFloatIfDefault applies a positive jsonValue only if current still equals the default.
func ApplyFloatIfDefault(current *float64, defaultValue, jsonValue float64) {
	if jsonValue > 0 && *current == defaultValue {
		*current = jsonValue
	}
}

// ApplyDurationIfDefault parses and applies a duration from the JSON config
// only if current still equals the default. Unparsable values are ignored.
//
// Example:
//
//	ApplyDurationIfDefault(&cfg.PublishTimeout, 30, jsonCfg.PublishTimeout)
func ApplyDurationIfDefault(current *int, defaultValue int, jsonValue string) {
	if jsonValue != "" && *current == defaultValue {
		if duration, err := ParseDuration(jsonValue); err == nil {
			*current = duration
		}
	}
}

// ApplyBoolIfDefault applies jsonValue only if it is true and current is false.
func ApplyBoolIfDefault(current *bool, jsonValue bool) {
	if jsonValue && !*current {
		*current = jsonValue
	}
}

// ApplySliceIfDefault applies a non-empty jsonValue only if current still
// equals the default.
func ApplySliceIfDefault[T comparable](current *[]T, defaultValue, jsonValue []T) {
	if len(jsonValue) > 0 && slices.Equal(*current, defaultValue) {
		*current = slices.Clone(jsonValue)
	}
}
