// Package world manages arena world lifecycles: unloading, snapshot-based
// regeneration, and recreation from recorded creation parameters.
package world

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// CreationParams records how a world was created so it can be recreated after
// its data directory has been swapped out from under it.
type CreationParams struct {
	Name        string `json:"name"`
	Seed        int64  `json:"seed"`
	Environment string `json:"environment"`
	Generator   string `json:"generator,omitempty"`
}

// World is a live handle to a loaded arena world.
type World struct {
	Name   string
	Params CreationParams
}

// Host is the server that owns the arena worlds. Unload refusal is an
// unrecoverable configuration error, not a retryable condition.
type Host interface {
	// World returns the live handle for a loaded world.
	World(name string) (*World, bool)
	// Dir returns the world's on-disk data directory.
	Dir(name string) string
	// Unload detaches a world from the host, flushing its data to disk.
	Unload(name string) error
	// Create loads a world from its creation parameters.
	Create(params CreationParams) (*World, error)
}

// FSHost is a filesystem-backed Host for running the coordinator standalone.
// Worlds are directories under a root; loading and unloading only toggle
// registration.
type FSHost struct {
	root string

	mu     sync.Mutex
	loaded map[string]*World
}

// NewFSHost returns a host rooted at dir. Worlds must be registered with
// Create before they can be unloaded.
func NewFSHost(dir string) *FSHost {
	return &FSHost{
		root:   dir,
		loaded: make(map[string]*World),
	}
}

func (h *FSHost) World(name string) (*World, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w, ok := h.loaded[name]
	return w, ok
}

func (h *FSHost) Dir(name string) string {
	return filepath.Join(h.root, name)
}

func (h *FSHost) Unload(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.loaded[name]; !ok {
		return fmt.Errorf("world %q is not loaded", name)
	}
	delete(h.loaded, name)
	return nil
}

func (h *FSHost) Create(params CreationParams) (*World, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("world creation params missing name")
	}
	dir := h.Dir(params.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create world dir %q: %w", dir, err)
	}
	w := &World{Name: params.Name, Params: params}
	h.mu.Lock()
	h.loaded[params.Name] = w
	h.mu.Unlock()
	return w, nil
}
