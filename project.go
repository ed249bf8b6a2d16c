package mapedit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Project supplies the texture palette and file operations shared by the
// maps of one project. Load may be called from a background goroutine;
// every other method is called on the main thread.
type Project interface {
	IsLoaded() bool
	Load(ctx context.Context) error
	Textures() []*Texture
	// PixelRatio is the host device pixel ratio applied on top of zoom.
	PixelRatio() float64
	// RenameMapFile moves the backing file of m so it is named after
	// newName and returns the new path.
	RenameMapFile(m *Map, newName string) (string, error)
}

// LoadFunc produces the textures of a StaticProject.
type LoadFunc func(ctx context.Context) ([]*Texture, error)

// StaticProject is a Project whose textures come from a LoadFunc. It is safe
// for Load to run concurrently with the accessor methods.
type StaticProject struct {
	mu       sync.Mutex
	loader   LoadFunc
	ratio    float64
	loaded   bool
	textures []*Texture
}

// NewStaticProject returns a project that calls loader on its first Load.
// A nil loader yields an empty palette. A ratio <= 0 is treated as 1.
func NewStaticProject(loader LoadFunc, ratio float64) *StaticProject {
	if ratio <= 0 {
		ratio = 1
	}
	return &StaticProject{loader: loader, ratio: ratio}
}

// NewLoadedProject returns a project that is already loaded with textures.
func NewLoadedProject(textures []*Texture, ratio float64) *StaticProject {
	p := NewStaticProject(nil, ratio)
	p.loaded = true
	p.textures = textures
	return p
}

// IsLoaded reports whether a Load has completed, successfully or not.
func (p *StaticProject) IsLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Load runs the loader once. A failed load still marks the project loaded
// with an empty palette so it is not retried on every open.
func (p *StaticProject) Load(ctx context.Context) error {
	p.mu.Lock()
	if p.loaded {
		p.mu.Unlock()
		return nil
	}
	loader := p.loader
	p.mu.Unlock()

	var textures []*Texture
	var err error
	if loader != nil {
		textures, err = loader(ctx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = true
	if err != nil {
		p.textures = nil
		return fmt.Errorf("mapedit: load project: %w", err)
	}
	p.textures = textures
	return nil
}

// Textures returns the loaded palette. The slice must not be modified.
func (p *StaticProject) Textures() []*Texture {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.textures
}

// PixelRatio returns the device pixel ratio.
func (p *StaticProject) PixelRatio() float64 {
	return p.ratio
}

// RenameMapFile renames the map's file to newName.json next to its current
// location. A map without a file on disk is only given the new path.
func (p *StaticProject) RenameMapFile(m *Map, newName string) (string, error) {
	oldPath := m.Path()
	newPath := filepath.Join(filepath.Dir(oldPath), newName+".json")
	if oldPath == newPath {
		return newPath, nil
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		if os.IsNotExist(err) {
			return newPath, nil
		}
		return "", &IOError{Op: "rename", Path: oldPath, Err: err}
	}
	return newPath, nil
}
