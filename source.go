// FILE: source.go
package puzzlekit

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// DefaultDownloadURL serves the canonical lichess puzzle database as a
	// single immutable release artifact.
	DefaultDownloadURL = "https://github.com/JackScallan02/chess-puzzle-kit/releases/download/v0.1.0/lichess_db_puzzle.db"

	datasetFileName = "lichess_db_puzzle.db"
	datasetDirName  = ".chess_puzzles"

	downloadChunkSize = 8192
)

// Source resolves which database file to use and owns the connections to it.
// One Source per logical dataset; connections are cached per resolved path
// and reused across calls. All methods are safe for concurrent use.
type Source struct {
	downloadURL string
	defaultPath string
	client      *http.Client

	mu     sync.Mutex
	custom string // explicit override, empty means use the default path
	conns  map[string]*sql.DB
}

// Option configures a Source.
type Option func(*Source)

// WithDownloadURL overrides the URL used to fetch the default database.
func WithDownloadURL(url string) Option {
	return func(s *Source) { s.downloadURL = url }
}

// WithDefaultPath overrides the default on-disk location of the database.
func WithDefaultPath(path string) Option {
	return func(s *Source) { s.defaultPath = path }
}

// WithHTTPClient replaces the client used for the database download.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

// NewSource creates a source with connection caching and lazy provisioning.
func NewSource(opts ...Option) *Source {
	s := &Source{
		downloadURL: DefaultDownloadURL,
		client:      &http.Client{Timeout: 10 * time.Minute},
		conns:       make(map[string]*sql.DB),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPath points the source at a custom database file. The file must already
// exist; returns ErrDatabaseNotFound otherwise and leaves the prior
// resolution unchanged. Custom paths are never auto-downloaded.
func (s *Source) SetPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	s.mu.Lock()
	s.custom = abs
	s.mu.Unlock()
	return nil
}

// Conn returns a live connection to the resolved database file, opening and
// caching one on first use. When no custom path is set and the default file
// is absent, the database is fetched from the download URL first. Repeated
// calls for the same resolved path return the same handle.
func (s *Source) Conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, isDefault, err := s.resolveLocked()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !isDefault {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, path)
		}
		if err := s.download(path); err != nil {
			return nil, err
		}
	}

	if db, ok := s.conns[path]; ok {
		return db, nil
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.conns[path] = db
	return db, nil
}

// CloseAll closes every cached connection and empties the cache. Calling it
// with an empty cache is a no-op; the next Conn re-resolves from scratch.
func (s *Source) CloseAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for path, db := range s.conns {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close %s: %w", path, err)
		}
	}
	s.conns = make(map[string]*sql.DB)
	return firstErr
}

// resolveLocked picks the active path. Caller holds s.mu.
func (s *Source) resolveLocked() (path string, isDefault bool, err error) {
	if s.custom != "" {
		return s.custom, false, nil
	}
	if s.defaultPath != "" {
		return s.defaultPath, true, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, datasetDirName, datasetFileName), true, nil
}

// download performs the single fetch attempt for the default database.
// A failure mid-stream leaves the partial file in place for the caller to
// inspect or remove.
func (s *Source) download(dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	log.Printf("Downloading puzzle database to %s", dest)

	resp, err := s.client.Get(s.downloadURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: unexpected status %s from %s", ErrDownloadFailed, resp.Status, s.downloadURL)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	buf := make([]byte, downloadChunkSize)
	if _, err := io.CopyBuffer(f, resp.Body, buf); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}

	if _, err := os.Stat(dest); err != nil {
		return fmt.Errorf("%w: file missing after download: %v", ErrDownloadFailed, err)
	}

	log.Printf("Puzzle database downloaded to %s", dest)
	return nil
}
