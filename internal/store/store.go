// Package store persists the playbook collection to one local JSON file.
// It is read once at startup and rewritten whole on mutation; writes go
// through a temp file and rename so a crash never leaves a torn file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/coachtools/playctl/internal/playbook"
)

var ErrNotFound = errors.New("store: playbook not found")

// Store is a file-backed playbook collection.
type Store struct {
	path      string
	playbooks map[string]*playbook.Playbook
}

// Open loads the collection at path. A missing file is an empty
// collection, not an error.
func Open(path string) (*Store, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		resolved = filepath.Join("local", "playbooks.json")
	}
	s := &Store{path: resolved, playbooks: make(map[string]*playbook.Playbook)}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("store load failed (%s): %w", resolved, err)
	}
	var list []*playbook.Playbook
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("store parse failed (%s): %w", resolved, err)
	}
	for _, pb := range list {
		s.playbooks[pb.ID] = pb
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Get returns the playbook with the given id.
func (s *Store) Get(id string) (*playbook.Playbook, error) {
	pb, ok := s.playbooks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return pb, nil
}

// List returns all playbooks ordered by name then id.
func (s *Store) List() []*playbook.Playbook {
	out := make([]*playbook.Playbook, 0, len(s.playbooks))
	for _, pb := range s.playbooks {
		out = append(out, pb)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Put inserts or replaces pb by id and persists the collection. The file
// is only touched after pb is fully materialized, so a failed decode
// upstream never leaves a partial write. A failed disk write rolls the
// in-memory map back so it keeps matching the file.
func (s *Store) Put(pb *playbook.Playbook) error {
	if pb == nil || strings.TrimSpace(pb.ID) == "" {
		return fmt.Errorf("store: playbook missing id")
	}
	prev, existed := s.playbooks[pb.ID]
	s.playbooks[pb.ID] = pb
	if err := s.save(); err != nil {
		if existed {
			s.playbooks[pb.ID] = prev
		} else {
			delete(s.playbooks, pb.ID)
		}
		return err
	}
	return nil
}

// Delete removes the playbook and everything it contains.
func (s *Store) Delete(id string) error {
	prev, ok := s.playbooks[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.playbooks, id)
	if err := s.save(); err != nil {
		s.playbooks[id] = prev
		return err
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.List(), "", "  ")
	if err != nil {
		return fmt.Errorf("store marshal failed: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store write failed (%s): %w", s.path, err)
	}
	tmp, err := os.CreateTemp(dir, ".playbooks-*.json")
	if err != nil {
		return fmt.Errorf("store write failed (%s): %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store write failed (%s): %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store write failed (%s): %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store write failed (%s): %w", s.path, err)
	}
	return nil
}
