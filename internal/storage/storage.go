package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Read when the artifact does not exist
var ErrNotFound = errors.New("artifact not found")

// Artifact is one generated output file
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Store persists analysis artifacts
type Store interface {
	// Publish writes the artifact and returns where it was written
	Publish(ctx context.Context, artifact Artifact) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
	Close() error
}

// LocalStore writes artifacts into a directory
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store rooted at dir
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Publish(ctx context.Context, artifact Artifact) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(s.dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", artifact.Name, err)
	}
	return path, nil
}

func (s *LocalStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// List returns the file names in the directory; a missing directory is empty
func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing output directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *LocalStore) Close() error {
	return nil
}
