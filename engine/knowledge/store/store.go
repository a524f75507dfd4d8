// Package store holds compiled knowledge bundles in memory. A Store is built
// once before the server accepts requests and is read-only afterwards.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/spf13/afero"
)

const (
	// ArtifactSuffix is the file suffix of compiled bundles.
	ArtifactSuffix = ".lock.md"
	artifactGlob   = "*" + ArtifactSuffix
)

// Store maps bundle names to artifact text.
type Store struct {
	bundles map[string]string
	names   []string
}

// New builds a store from an in-memory map. The map is copied.
func New(bundles map[string]string) *Store {
	s := &Store{bundles: make(map[string]string, len(bundles))}
	for name, text := range bundles {
		s.bundles[name] = text
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s
}

// Empty returns a store with no bundles.
func Empty() *Store {
	return New(nil)
}

// Load reads every artifact in dir. A missing directory yields an empty
// store and a warning; an unreadable artifact is an error.
func Load(ctx context.Context, fs afero.Fs, dir string) (*Store, error) {
	log := logger.FromContext(ctx)
	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("store: stat %q: %w", dir, err)
	}
	if !exists {
		log.Warn("Knowledge directory not found, run compile first", "dir", dir)
		return Empty(), nil
	}
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("store: read %q: %w", dir, err)
	}
	bundles := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := doublestar.Match(artifactGlob, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("store: match %q: %w", entry.Name(), err)
		}
		if !matched {
			continue
		}
		data, err := afero.ReadFile(fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("store: read artifact %q: %w", entry.Name(), err)
		}
		bundles[strings.TrimSuffix(entry.Name(), ArtifactSuffix)] = string(data)
	}
	s := New(bundles)
	log.Info("Loaded knowledge areas", "areas", strings.Join(s.names, ", "), "count", len(s.names))
	return s, nil
}

// Get returns the artifact text for name.
func (s *Store) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	text, ok := s.bundles[name]
	return text, ok
}

// Names lists bundle names in sorted order. The result is a copy.
func (s *Store) Names() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of bundles.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
