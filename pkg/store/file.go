package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/template"
)

// FileStore is a file-based template store for CLI applications.
// Templates are stored as indented JSON files named <id>.json.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file store rooted at baseDir, creating it if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "file store needs a directory")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create template dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// templatePath returns the file for id. Ids are validated first so they
// cannot escape baseDir.
func (s *FileStore) templatePath(id string) (string, error) {
	if err := errors.ValidateID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

func (s *FileStore) read(path string) (template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return template.Template{}, err
	}
	var t template.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return template.Template{}, fmt.Errorf("parse template %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

func (s *FileStore) write(path string, t template.Template) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write template file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write template file: %w", err)
	}
	return nil
}

func (s *FileStore) Create(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	path, err := s.templatePath(t.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return conflict(t.ID)
	}
	return s.write(path, t)
}

func (s *FileStore) Get(ctx context.Context, id string) (template.Template, error) {
	path, err := s.templatePath(id)
	if err != nil {
		return template.Template{}, notFound(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := s.read(path)
	if os.IsNotExist(err) {
		return template.Template{}, notFound(id)
	}
	if err != nil {
		return template.Template{}, errors.Wrap(errors.ErrCodeInternal, err, "read template %s", id)
	}
	return t, nil
}

func (s *FileStore) Update(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	path, err := s.templatePath(t.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.read(path)
	if os.IsNotExist(err) {
		return notFound(t.ID)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read template %s", t.ID)
	}
	return s.write(path, prepareUpdate(stored, t))
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.templatePath(id)
	if err != nil {
		return notFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.read(path)
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read template %s", id)
	}
	if err := checkDelete(t); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove template file: %w", err)
	}
	return nil
}

// List skips files that are not valid template JSON.
func (s *FileStore) List(ctx context.Context) ([]template.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}

	out := make([]template.Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		t, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	sortTemplates(out)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for template files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
