package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStorage struct {
	mu       sync.Mutex
	failures int
	removed  []string
	done     chan struct{}
}

func (f *flakyStorage) Save(ctx context.Context, filename string, data []byte) (string, error) {
	return PublicPath + "/" + filename, nil
}

func (f *flakyStorage) Remove(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failures > 0 {
		f.failures--
		return errors.New("backend unavailable")
	}

	f.removed = append(f.removed, url)
	close(f.done)
	return nil
}

func TestCleanerRemovesInline(t *testing.T) {
	fs := &flakyStorage{done: make(chan struct{})}
	cleaner := NewCleaner(fs)

	cleaner.Remove("/static/a.jpg")

	fs.mu.Lock()
	defer fs.mu.Unlock()
	assert.Equal(t, []string{"/static/a.jpg"}, fs.removed)
}

func TestCleanerRetriesInBackground(t *testing.T) {
	fs := &flakyStorage{failures: 1, done: make(chan struct{})}
	cleaner := NewCleaner(fs)

	// Inline attempt fails, the worker picks it up.
	cleaner.Remove("/static/a.jpg")

	select {
	case <-fs.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never retried the removal")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.Len(t, fs.removed, 1)
	assert.Equal(t, "/static/a.jpg", fs.removed[0])
}
