// Package assets stores the binary payloads extracted from a document, such
// as embedded images, and identifies their format.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Asset is one extracted payload
type Asset struct {
	Name      string // file name, e.g. Image_rId7.png
	MediaType string // sniffed or declared media type
	Width     int    // pixel size when the format is known, else 0
	Height    int
	Data      []byte
}

// Sink receives extracted assets. An error returned by WriteAsset aborts
// the conversion.
type Sink interface {
	WriteAsset(a Asset) error
}

// ImageName returns the stable asset name of the image behind a
// relationship id.
func ImageName(relID string) string {
	return "Image_" + relID + ".png"
}

// DirSink writes each asset to a file named after it inside Dir.
type DirSink struct {
	Dir string
}

// NewDirSink creates a sink writing into dir. The directory is created on
// first write.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// WriteAsset writes the payload to Dir/Name, replacing any existing file.
func (s *DirSink) WriteAsset(a Asset) error {
	if err := ValidName(a.Name); err != nil {
		return err
	}
	name := a.Name
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating asset directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), a.Data, 0o644); err != nil {
		return fmt.Errorf("writing asset %s: %w", name, err)
	}
	return nil
}

// ValidName reports an error for names that are empty or would escape a
// sink directory.
func ValidName(name string) error {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid asset name %q", name)
	}
	return nil
}

// MemorySink keeps assets in memory, keyed by name. A later asset with the
// same name replaces the earlier one. It is safe for concurrent use.
type MemorySink struct {
	mu     sync.Mutex
	assets map[string]Asset
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{assets: make(map[string]Asset)}
}

func (s *MemorySink) WriteAsset(a Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.assets == nil {
		s.assets = make(map[string]Asset)
	}
	a.Data = append([]byte(nil), a.Data...)
	s.assets[a.Name] = a
	return nil
}

// Get returns the asset stored under name
func (s *MemorySink) Get(name string) (Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[name]
	return a, ok
}

// Names returns the stored asset names in sorted order
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.assets))
	for name := range s.assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored assets
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.assets)
}

// Discard is a Sink that drops every asset.
var Discard Sink = discard{}

type discard struct{}

func (discard) WriteAsset(Asset) error { return nil }
