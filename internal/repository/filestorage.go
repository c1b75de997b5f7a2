package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/idudko/login-checker/internal/model"
)

// FileStorage keeps runs in memory and rewrites a JSON snapshot after every
// save.
type FileStorage struct {
	*MemStorage
	path string
	mu   sync.Mutex
}

type storageData struct {
	Runs []*model.Run `json:"runs"`
}

func NewFileStorage(path string, restore bool) (*FileStorage, error) {
	fs := &FileStorage{
		MemStorage: NewMemStorage(),
		path:       path,
	}

	if restore {
		if err := fs.restore(context.Background()); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("could not restore runs from file")
		}
	}
	return fs, nil
}

func (f *FileStorage) restore(ctx context.Context) error {
	file, err := os.Open(f.path)
	if err != nil {
		return err
	}
	defer file.Close()

	var data storageData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return err
	}

	for _, run := range data.Runs {
		if err := f.MemStorage.SaveRun(ctx, run); err != nil {
			return err
		}
	}
	log.Info().Int("runs", len(data.Runs)).Str("path", f.path).Msg("runs restored")
	return nil
}

// SaveRun stores run only if the snapshot containing it was written.
func (f *FileStorage) SaveRun(ctx context.Context, run *model.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.MemStorage.SaveRun(ctx, run); err != nil {
		return err
	}
	if err := f.save(); err != nil {
		f.MemStorage.deleteRun(run.ID)
		return fmt.Errorf("failed to persist runs: %w", err)
	}
	return nil
}

// save writes to a temp file in the target directory and renames it over
// the snapshot.
func (f *FileStorage) save() error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmpfile, err := os.CreateTemp(dir, "runs-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpfile.Name())

	data := storageData{Runs: f.MemStorage.snapshot()}
	if err := json.NewEncoder(tmpfile).Encode(data); err != nil {
		tmpfile.Close()
		return err
	}
	if err := tmpfile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpfile.Name(), f.path)
}
