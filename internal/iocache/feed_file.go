package iocache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/huangsam/fastball/internal/contract"
	"github.com/huangsam/fastball/schema"
)

// feedFileExt is the extension of every cached feed file.
const feedFileExt = ".json"

// feedKeyRe restricts keys to names that are safe as file names.
var feedKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// FileFeedStore stores one raw feed per file in a directory, named <key>.json.
// Presence of the file is the only cache-hit signal.
type FileFeedStore struct {
	dir string
}

var _ contract.FeedStore = &FileFeedStore{} // Compile-time check

// NewFileFeedStore creates the cache directory if needed and returns a store over it.
func NewFileFeedStore(dir string) (*FileFeedStore, error) {
	if dir == "" {
		dir = schema.DefaultCacheDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileFeedStore{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *FileFeedStore) Dir() string {
	return s.dir
}

// path returns the file path for a key after validating it.
func (s *FileFeedStore) path(key string) (string, error) {
	if !feedKeyRe.MatchString(key) {
		return "", fmt.Errorf("invalid cache key %q", key)
	}
	return filepath.Join(s.dir, key+feedFileExt), nil
}

// Has reports whether the feed file for key exists.
func (s *FileFeedStore) Has(_ context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", p, err)
	}
}

// Get reads the feed file for key. A missing file returns contract.ErrCacheMiss.
func (s *FileFeedStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, contract.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// Set writes the feed verbatim. The write goes through a temp file and rename
// so a partial download never looks like a cache hit.
func (s *FileFeedStore) Set(_ context.Context, key string, value []byte, _ int64) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("failed to move feed into place at %s: %w", p, err)
	}
	return nil
}

// Keys returns the key of every cached feed file in ascending order.
func (s *FileFeedStore) Keys(_ context.Context) ([]string, error) {
	entries, err := s.feedFiles()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, strings.TrimSuffix(e.Name(), feedFileExt))
	}
	slices.Sort(keys)
	return keys, nil
}

// feedFiles lists the regular feed files in the cache directory.
func (s *FileFeedStore) feedFiles() ([]fs.DirEntry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list cache directory %s: %w", s.dir, err)
	}

	var files []fs.DirEntry
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, feedFileExt) {
			continue
		}
		if !feedKeyRe.MatchString(strings.TrimSuffix(name, feedFileExt)) {
			continue
		}
		files = append(files, e)
	}
	return files, nil
}

// GetStatus reports entry count, modification time range and total size.
func (s *FileFeedStore) GetStatus(_ context.Context) (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(schema.FileBackend),
		Connected: true,
	}

	files, err := s.feedFiles()
	if err != nil {
		return status, err
	}

	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			continue
		}
		status.TotalEntries++
		status.TableSizeBytes += info.Size()
		mod := info.ModTime()
		if status.LastEntryTime.IsZero() || mod.After(status.LastEntryTime) {
			status.LastEntryTime = mod
		}
		if status.OldestEntryTime.IsZero() || mod.Before(status.OldestEntryTime) {
			status.OldestEntryTime = mod
		}
	}
	return status, nil
}

// Close is a no-op for the file store.
func (s *FileFeedStore) Close() error {
	return nil
}

// clear removes every cached feed file, leaving other files in the directory alone.
func (s *FileFeedStore) clear() error {
	files, err := s.feedFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		p := filepath.Join(s.dir, f.Name())
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}
