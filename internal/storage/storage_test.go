package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePublishAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store := NewLocalStore(dir)
	ctx := context.Background()

	path, err := store.Publish(ctx, Artifact{Name: "report.md", ContentType: "text/markdown", Data: []byte("# report")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.md"), path)

	data, err := store.Read(ctx, "report.md")
	require.NoError(t, err)
	assert.Equal(t, "# report", string(data))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"report.md"}, names)
}

func TestLocalStoreReadMissing(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	_, err := store.Read(context.Background(), "missing.json")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLocalStoreListMissingDir(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "never-created"))

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStorePublishFailsOnUnwritableDir(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	store := NewLocalStore(filepath.Join(blocker, "out"))
	_, err := store.Publish(context.Background(), Artifact{Name: "a.csv", Data: []byte("x")})
	assert.Error(t, err)
}

func TestObjectPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"/", ""},
		{"keyword-analysis", "keyword-analysis/"},
		{"keyword-analysis/", "keyword-analysis/"},
		{"/runs/2025//", "runs/2025/"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, ObjectPrefix(test.input), test.input)
	}
}
