package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"news-sentiment-go/internal/logger"
)

// Error reports a failed store operation. Remote marks the durable leg: those
// failures leave the local copy usable and must not abort the run.
type Error struct {
	Key    string
	Remote bool
	Err    error
}

func (e *Error) Error() string {
	leg := "local"
	if e.Remote {
		leg = "remote"
	}
	return fmt.Sprintf("store %s leg failed for %q: %v", leg, e.Key, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Remote is the durable object-storage leg of the store. A nil Remote
// disables mirroring (local-only runs, tests).
type Remote interface {
	Upload(ctx context.Context, key string, data []byte) error
	// Download returns (payload, true, nil) when the object exists and
	// (nil, false, nil) when it is absent.
	Download(ctx context.Context, key string) ([]byte, bool, error)
}

// Store is a write-once, read-many keyed artifact store. Every stage output is
// written under the local work dir and mirrored to remote storage under the
// same key. Stages consult it before performing any billable call.
type Store struct {
	root   string
	remote Remote
	log    *logger.Logger

	mu          sync.Mutex
	remoteFails []string
}

func New(root string, remote Remote, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	return &Store{root: root, remote: remote, log: log}, nil
}

// Put persists payload under key, overwriting any prior value. A local write
// failure is fatal for the caller; a remote upload failure is recorded and
// logged as a warning only.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &Error{Key: key, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &Error{Key: key, Err: err}
	}
	if s.remote == nil {
		return nil
	}
	if err := s.remote.Upload(ctx, key, data); err != nil {
		s.recordRemoteFailure(key)
		s.log.WithError(err).WithField("key", key).Warn("durable upload failed, local copy kept")
	}
	return nil
}

// Get returns the payload at key, falling back to the remote copy when the
// local one is missing (resume on a fresh working area). An absent key is not
// an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	data, err := os.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, &Error{Key: key, Err: err}
	}
	if s.remote == nil {
		return nil, false, nil
	}
	data, ok, rerr := s.remote.Download(ctx, key)
	if rerr != nil {
		s.recordRemoteFailure(key)
		s.log.WithError(rerr).WithField("key", key).Warn("durable download failed")
		return nil, false, nil
	}
	if !ok {
		return nil, false, nil
	}
	// refresh the local copy so later guards stay cheap
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		_ = os.WriteFile(path, data, 0o644)
	}
	return data, true, nil
}

// Exists reports whether the key holds a payload on either leg.
func (s *Store) Exists(ctx context.Context, key string) bool {
	_, ok, err := s.Get(ctx, key)
	return err == nil && ok
}

// RemoteFailures lists keys whose durable mirror could not be written or read
// during this run. Reported in the run summary since they risk reproducibility
// of later runs.
func (s *Store) RemoteFailures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.remoteFails))
	copy(out, s.remoteFails)
	return out
}

func (s *Store) recordRemoteFailure(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remoteFails = append(s.remoteFails, key)
}
