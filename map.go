package mapedit

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// Default map size used when none (or an invalid one) is given.
const (
	DefaultMapWidth  = 640
	DefaultMapHeight = 480
)

// Map is one editable level: a fixed-size canvas with a stack of layers.
// A map always has at least one layer and exactly one active layer.
type Map struct {
	name string
	path string

	offset Vector2
	size   Vector2

	dirty bool
	open  bool

	layers      []*Layer
	activeLayer int

	renderer *MapRenderer
	project  Project

	loadErr error

	// onChange and onMove are installed by the Editor that opened the map.
	onChange func(*Map)
	onMove   func(m *Map, oldPath string)
}

// NewMap creates a map of the default size backed by the file at path.
func NewMap(project Project, name, path string) *Map {
	return NewMapSized(project, name, path, DefaultMapWidth, DefaultMapHeight)
}

// NewMapSized creates a map of the given size. Non-positive dimensions fall
// back to the default size.
func NewMapSized(project Project, name, path string, width, height float64) *Map {
	if !validDimension(width) || !validDimension(height) {
		width, height = DefaultMapWidth, DefaultMapHeight
	}
	m := &Map{
		name:    name,
		path:    path,
		size:    Vector2{width, height},
		project: project,
	}
	m.layers = []*Layer{{owner: m}}
	m.renderer = newMapRenderer(m)
	return m
}

// Name returns the map name.
func (m *Map) Name() string { return m.name }

// Path returns the location of the map's backing file.
func (m *Map) Path() string { return m.path }

// Project returns the project the map belongs to.
func (m *Map) Project() Project { return m.project }

// Renderer returns the map's renderer.
func (m *Map) Renderer() *MapRenderer { return m.renderer }

// IsDirty reports whether the map has changes not yet written by Sync.
func (m *Map) IsDirty() bool { return m.dirty }

// IsOpen reports whether the map is open in an editor.
func (m *Map) IsOpen() bool { return m.open }

// LoadError returns the error of the project load triggered when the map
// was opened, if it failed.
func (m *Map) LoadError() error { return m.loadErr }

// Offset returns the pan offset of the map in scene units.
func (m *Map) Offset() Vector2 { return m.offset }

// SetOffset pans the map. The map becomes dirty only if the offset changes.
func (m *Map) SetOffset(offset Vector2) {
	if m.offset.Equals(offset) {
		return
	}
	m.offset = offset
	m.dirty = true
	m.changed()
}

// Size returns the canvas size of the map.
func (m *Map) Size() Vector2 { return m.size }

// SetSize resizes the map canvas. Both dimensions must be positive and
// finite. Resizing drops the renderer's cached geometry but does not mark
// the map dirty.
func (m *Map) SetSize(size Vector2) error {
	if !validDimension(size.X) {
		return &ValidationError{Field: "width", Value: formatFloat(size.X), Reason: "must be a positive number"}
	}
	if !validDimension(size.Y) {
		return &ValidationError{Field: "height", Value: formatFloat(size.Y), Reason: "must be a positive number"}
	}
	if m.size.Equals(size) {
		return nil
	}
	m.size = size
	m.renderer.invalidate()
	m.changed()
	return nil
}

// Layers returns the layers bottom to top. The slice must not be modified.
func (m *Map) Layers() []*Layer { return m.layers }

// ActiveLayerIndex returns the index of the layer new textures go into.
func (m *Map) ActiveLayerIndex() int { return m.activeLayer }

// ActiveLayer returns the layer new textures go into.
func (m *Map) ActiveLayer() *Layer { return m.layers[m.activeLayer] }

// SetActiveLayer selects the layer at index.
func (m *Map) SetActiveLayer(index int) error {
	if index < 0 || index >= len(m.layers) {
		return &NotFoundError{Kind: "layer", Index: index}
	}
	if index != m.activeLayer {
		m.activeLayer = index
		m.changed()
	}
	return nil
}

// AddLayer appends an empty layer on top and makes it active.
func (m *Map) AddLayer() *Layer {
	l := &Layer{owner: m}
	m.layers = append(m.layers, l)
	m.activeLayer = len(m.layers) - 1
	m.changed()
	return l
}

// RemoveLayer removes the layer at index. The last remaining layer is never
// removed. If the active index falls off the end it moves to the new top
// layer.
func (m *Map) RemoveLayer(index int) error {
	if index < 0 || index >= len(m.layers) {
		err := &NotFoundError{Kind: "layer", Index: index}
		Logger().Warn("remove layer", "map", m.name, "error", err)
		return err
	}
	if len(m.layers) == 1 {
		return nil
	}
	copy(m.layers[index:], m.layers[index+1:])
	m.layers[len(m.layers)-1] = nil
	m.layers = m.layers[:len(m.layers)-1]
	if m.activeLayer >= len(m.layers) {
		m.activeLayer = len(m.layers) - 1
	}
	m.changed()
	return nil
}

// Open opens the map in e. Calling Open on an already open map does nothing.
func (m *Map) Open(ctx context.Context, e *Editor) {
	if m.open {
		return
	}
	m.open = true
	e.AddToOpenMaps(ctx, m)
}

// EditRequest carries the raw values of the map properties form.
type EditRequest struct {
	Name   string
	Width  string
	Height string
}

// Edit applies the properties form. Width and Height must parse as positive
// numbers; otherwise a *ValidationError is returned and nothing changes. A
// non-empty Name different from the current one renames the backing file
// through the project. The map is synced afterwards.
func (m *Map) Edit(req EditRequest) error {
	width, err := parseDimension("width", req.Width)
	if err != nil {
		return err
	}
	height, err := parseDimension("height", req.Height)
	if err != nil {
		return err
	}
	// Rename first so a failed rename leaves the map exactly as it was.
	if req.Name != "" && req.Name != m.name {
		path, err := m.project.RenameMapFile(m, req.Name)
		if err != nil {
			return err
		}
		oldPath := m.path
		m.name = req.Name
		m.path = path
		if m.onMove != nil && path != oldPath {
			m.onMove(m, oldPath)
		}
		m.changed()
	}
	if err := m.SetSize(Vector2{width, height}); err != nil {
		return err
	}
	return m.Sync()
}

func (m *Map) changed() {
	if m.onChange != nil {
		m.onChange(m)
	}
}

func parseDimension(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "not a number"}
	}
	if !validDimension(v) {
		return 0, &ValidationError{Field: field, Value: raw, Reason: "must be a positive number"}
	}
	return v, nil
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
