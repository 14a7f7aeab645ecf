// Package localstore persists small JSON documents under well-known keys in
// a data directory. It backs the cart and order-history state the same way
// the browser's local storage would: a missing key is an empty collection,
// never an error the caller has to special-case.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var ErrNoDocument = errors.New("localstore: no document")

type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get unmarshals the document at key into v. Returns ErrNoDocument when the
// key has never been written.
func (s *Store) Get(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("localstore: read %s: %w", key, err)
	}
	return json.Unmarshal(data, v)
}

// Put writes v at key. The write goes through a temp file and rename so a
// crash never leaves a half-written document behind.
func (s *Store) Put(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: marshal %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("localstore: rename %s: %w", key, err)
	}
	return nil
}

// Update applies fn to the current document under the store lock. This is the
// read-modify-write path: callers never interleave a stale read with a write.
func (s *Store) Update(key string, v any, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fn sees the zero value
	case err != nil:
		return fmt.Errorf("localstore: read %s: %w", key, err)
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("localstore: decode %s: %w", key, err)
		}
	}

	if err := fn(); err != nil {
		return err
	}

	out, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: marshal %s: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("localstore: rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the document at key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("localstore: delete %s: %w", key, err)
	}
	return nil
}
