package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Save writes logins one per line, creating the parent directory if needed.
func Save(path string, logins []string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dataset directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, l := range logins {
		if _, err := w.WriteString(l + "\n"); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return f.Close()
}

// Load reads a login file. Surrounding whitespace is trimmed and blank lines
// are skipped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	var logins []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			logins = append(logins, l)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return logins, nil
}

// Sequential returns user0 .. user{n-1}.
func Sequential(n int) []string {
	logins := make([]string, n)
	for i := range logins {
		logins[i] = "user" + strconv.Itoa(i)
	}
	return logins
}
