package mapedit

import (
	"context"
	"slices"
)

// loadResult is a finished project load, handed back to the main thread.
type loadResult struct {
	project Project
	err     error
}

// Editor is the viewport controller. It tracks the open maps, the active
// map and the palette selection, turns pointer input into scene edits, and
// asks its Canvas to redraw.
//
// An Editor is not safe for concurrent use. Project loads run on background
// goroutines, but their results are only applied by Update or Wait, which
// must be called from the goroutine that drives the editor.
type Editor struct {
	canvas Canvas
	cfg    Config

	openMaps        []*Map
	active          *Map
	selectedTexture int

	drag dragState

	// Projects are used as map keys, so implementations must be comparable.
	pending map[Project][]*Map
	loads   chan loadResult

	changes changeRegistry
	view    *viewAnim
	watcher *FileWatcher

	injectQueue []syntheticEvent
	script      *GestureScript
}

// NewEditor returns an editor drawing into canvas. cfg must be valid.
func NewEditor(canvas Canvas, cfg Config) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Editor{
		canvas:          canvas,
		cfg:             cfg,
		selectedTexture: -1,
		pending:         make(map[Project][]*Map),
		loads:           make(chan loadResult, 8),
	}, nil
}

// Config returns the editor settings.
func (e *Editor) Config() Config { return e.cfg }

// OpenMaps returns the open maps in tab order. The slice must not be
// modified.
func (e *Editor) OpenMaps() []*Map { return e.openMaps }

// OpenMapNames returns the names of the open maps in tab order.
func (e *Editor) OpenMapNames() []string {
	names := make([]string, len(e.openMaps))
	for i, m := range e.openMaps {
		names[i] = m.name
	}
	return names
}

// ActiveMap returns the active map, or nil when no map is open.
func (e *Editor) ActiveMap() *Map { return e.active }

// ActiveMapName returns the active map's name, or "" when none is open.
func (e *Editor) ActiveMapName() string {
	if e.active == nil {
		return ""
	}
	return e.active.name
}

// GetMap returns the first open map called name, or nil.
func (e *Editor) GetMap(name string) *Map {
	for _, m := range e.openMaps {
		if m.name == name {
			return m
		}
	}
	return nil
}

// ProjectTextures returns the palette of the active map's project.
func (e *Editor) ProjectTextures() []*Texture {
	if e.active == nil {
		return nil
	}
	return e.active.project.Textures()
}

// SelectedTextureIndex returns the selected palette index, or -1.
func (e *Editor) SelectedTextureIndex() int { return e.selectedTexture }

// SelectTexture arms placement of the palette texture at index. -1 clears
// the selection.
func (e *Editor) SelectTexture(index int) error {
	if index < -1 || index >= len(e.ProjectTextures()) {
		err := &NotFoundError{Kind: "texture", Index: index}
		Logger().Warn("select texture", "error", err)
		return err
	}
	e.setSelectedTexture(index)
	return nil
}

func (e *Editor) setSelectedTexture(index int) {
	if e.selectedTexture == index {
		return
	}
	e.selectedTexture = index
	e.emit(Change{Kind: ChangeSelection, Map: e.active})
}

// Zoom returns the active map's zoom, or 1 when no map is active.
func (e *Editor) Zoom() float64 {
	if e.active == nil {
		return 1
	}
	return e.active.renderer.zoom
}

// Viewport returns the current canvas rectangle and scale.
func (e *Editor) Viewport() Viewport {
	v := Viewport{Bounds: e.canvas.Bounds(), Zoom: 1, PixelRatio: 1}
	if e.active != nil {
		v.Zoom = e.active.renderer.zoom
		v.PixelRatio = e.active.project.PixelRatio()
	}
	return v
}

// MouseToScene converts client coordinates to scene coordinates of the
// active map.
func (e *Editor) MouseToScene(clientX, clientY float64) Vector2 {
	return e.Viewport().ScreenToScene(clientX, clientY)
}

// Render redraws the active map, or clears the canvas when none is open.
func (e *Editor) Render() {
	if e.active != nil {
		e.canvas.Render(e.active)
		return
	}
	e.canvas.Clear()
}

// AddToOpenMaps appends m to the open maps if it is not already there and
// makes it active. If m's project has not been loaded yet, the load starts
// in the background and m is activated once Update applies the result.
// Only one load per project runs at a time.
func (e *Editor) AddToOpenMaps(ctx context.Context, m *Map) {
	if !slices.Contains(e.openMaps, m) {
		e.openMaps = append(e.openMaps, m)
		m.open = true
		m.onChange = e.mapChanged
		m.onMove = e.mapMoved
		if e.watcher != nil {
			if err := e.watcher.Watch(m.path); err != nil {
				Logger().Warn("watch map file", "map", m.name, "error", err)
			}
		}
		Logger().Info("opened map", "map", m.name, "path", m.path)
		e.emit(Change{Kind: ChangeOpenMaps, Map: m})
	}
	if !m.project.IsLoaded() {
		e.queueLoad(ctx, m)
		return
	}
	e.activate(m)
	e.Render()
}

func (e *Editor) queueLoad(ctx context.Context, m *Map) {
	p := m.project
	if waiting, ok := e.pending[p]; ok {
		if !slices.Contains(waiting, m) {
			e.pending[p] = append(waiting, m)
		}
		return
	}
	e.pending[p] = []*Map{m}
	Logger().Info("loading project", "map", m.name)
	go func() {
		e.deliver(ctx, loadResult{project: p, err: p.Load(ctx)})
	}()
}

// deliver hands a finished load to the editor goroutine. It gives up when
// ctx is done so an editor that stops updating does not strand the sender;
// the map then stays pending.
func (e *Editor) deliver(ctx context.Context, r loadResult) bool {
	select {
	case e.loads <- r:
		return true
	case <-ctx.Done():
		Logger().Warn("project load result dropped", "error", ctx.Err())
		return false
	}
}

// Loading reports whether any project load is still pending.
func (e *Editor) Loading() bool { return len(e.pending) > 0 }

// applyLoad activates the maps that were waiting on r's project. A failed
// load leaves them open with an empty palette.
func (e *Editor) applyLoad(r loadResult) {
	waiting := e.pending[r.project]
	delete(e.pending, r.project)
	if r.err != nil {
		Logger().Error("project load failed", "error", r.err)
	}
	var last *Map
	for _, m := range waiting {
		m.loadErr = r.err
		if slices.Contains(e.openMaps, m) {
			e.activate(m)
			last = m
		}
	}
	e.emit(Change{Kind: ChangeLoad, Map: last})
	if last != nil {
		e.Render()
	}
}

// Wait blocks until every pending project load has been applied or ctx is
// done.
func (e *Editor) Wait(ctx context.Context) error {
	for len(e.pending) > 0 {
		select {
		case r := <-e.loads:
			e.applyLoad(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (e *Editor) activate(m *Map) {
	if e.active == m {
		return
	}
	e.active = m
	e.emit(Change{Kind: ChangeActiveMap, Map: m})
}

// CloseOpenMap closes m. The map now at m's tab position becomes active, or
// the last map if m was the last tab. The palette selection is cleared.
// Returns false if m is not open.
func (e *Editor) CloseOpenMap(m *Map) bool {
	i := slices.Index(e.openMaps, m)
	if i < 0 {
		return false
	}
	e.openMaps = slices.Delete(e.openMaps, i, i+1)
	m.open = false
	m.onChange = nil
	m.onMove = nil
	m.renderer.invalidate()
	if e.watcher != nil {
		e.watcher.Unwatch(m.path)
	}
	if e.view != nil && e.view.m == m {
		e.view = nil
	}
	e.drag = dragState{}
	Logger().Info("closed map", "map", m.name)
	e.emit(Change{Kind: ChangeOpenMaps, Map: m})

	switch {
	case len(e.openMaps) == 0:
		e.activate(nil)
	case i >= len(e.openMaps):
		e.activate(e.openMaps[len(e.openMaps)-1])
	default:
		e.activate(e.openMaps[i])
	}
	e.setSelectedTexture(-1)
	e.Render()
	return true
}

// SelectTab activates the open map at index.
func (e *Editor) SelectTab(index int) error {
	if index < 0 || index >= len(e.openMaps) {
		err := &NotFoundError{Kind: "tab", Index: index}
		Logger().Warn("select tab", "error", err)
		return err
	}
	e.activate(e.openMaps[index])
	e.Render()
	return nil
}

// CloseTab closes the open map at index. When it returns true and no maps
// remain, the host should offer to open one.
func (e *Editor) CloseTab(index int) (bool, error) {
	if index < 0 || index >= len(e.openMaps) {
		err := &NotFoundError{Kind: "tab", Index: index}
		Logger().Warn("close tab", "error", err)
		return false, err
	}
	return e.CloseOpenMap(e.openMaps[index]), nil
}

func (e *Editor) mapChanged(m *Map) {
	e.emit(Change{Kind: ChangeMap, Map: m})
}

// mapMoved moves the file watch of m after its backing file was renamed.
func (e *Editor) mapMoved(m *Map, oldPath string) {
	if e.watcher == nil {
		return
	}
	e.watcher.Unwatch(oldPath)
	if err := e.watcher.Watch(m.path); err != nil {
		Logger().Warn("watch map file", "map", m.name, "error", err)
	}
}

// Update applies finished project loads and external file changes, runs
// scripted input and advances the view animation. Call it once per frame
// with the elapsed time in seconds.
func (e *Editor) Update(dt float32) {
	e.drainLoads()
	e.processFileEvents()
	if e.script != nil {
		e.script.step(e)
	}
	e.processInjected()
	e.updateView(dt)
}

func (e *Editor) drainLoads() {
	for {
		select {
		case r := <-e.loads:
			e.applyLoad(r)
		default:
			return
		}
	}
}
