package mapedit

import "time"

// Canvas is the viewport host the Editor draws into.
type Canvas interface {
	// Bounds is the canvas rectangle in client coordinates.
	Bounds() Rect
	Render(m *Map)
	Clear()
}

// Surface is a drawable area with a client-space rectangle and a pixel size.
type Surface interface {
	Bounds() Rect
	PixelSize() (w, h int)
}

// FrameStats holds per-frame draw metrics.
type FrameStats struct {
	DrawCalls int
	Textures  int
	Duration  time.Duration
}

// CanvasRenderer is a Canvas that draws maps through a GPUContext. It owns
// the compiled programs, the unit quad shared by all sprite draws, and the
// buffer pool every map quad is allocated from.
type CanvasRenderer struct {
	surface    Surface
	gpu        GPUContext
	background Color
	clearColor Color

	shaders *shaderCache
	buffers *bufferPool
	unit    *quadBuffer

	stats FrameStats
}

// NewCanvasRenderer returns a renderer drawing into surface through gpu.
// background fills the map canvas. A nil gpu makes every frame a clear.
func NewCanvasRenderer(surface Surface, gpu GPUContext, background Color) *CanvasRenderer {
	c := &CanvasRenderer{
		surface:    surface,
		gpu:        gpu,
		background: background,
	}
	if gpu != nil {
		c.shaders = newShaderCache(gpu)
		c.buffers = newBufferPool(gpu)
	}
	return c
}

// Bounds returns the surface rectangle.
func (c *CanvasRenderer) Bounds() Rect {
	return c.surface.Bounds()
}

// SetClearColor sets the color shown around the map canvas.
func (c *CanvasRenderer) SetClearColor(col Color) {
	c.clearColor = col
}

// Stats returns the metrics of the last rendered frame.
func (c *CanvasRenderer) Stats() FrameStats {
	return c.stats
}

// Render draws m. If the frame cannot be drawn the canvas is cleared and
// the error is logged.
func (c *CanvasRenderer) Render(m *Map) {
	if c.gpu == nil {
		Logger().Error("render skipped", "map", m.Name(), "error", ErrGPUUnavailable)
		return
	}
	start := time.Now()
	c.gpu.Clear(c.clearColor)
	stats, err := m.Renderer().Render(c)
	if err != nil {
		Logger().Error("render failed", "map", m.Name(), "error", err)
		c.Clear()
		return
	}
	stats.Duration = time.Since(start)
	c.stats = stats
	Logger().Debug("frame",
		"map", m.Name(),
		"draw_calls", stats.DrawCalls,
		"textures", stats.Textures,
		"duration", stats.Duration)
}

// Clear blanks the canvas.
func (c *CanvasRenderer) Clear() {
	c.stats = FrameStats{}
	if c.gpu != nil {
		c.gpu.Clear(c.clearColor)
	}
}

// Release deletes every GPU resource created through the renderer. Maps
// rebuild their quads if rendered again.
func (c *CanvasRenderer) Release() {
	if c.gpu == nil {
		return
	}
	c.buffers.ReleaseAll()
	c.unit = nil
	c.shaders.release()
}

// unitQuad returns the shared ±1 quad.
func (c *CanvasRenderer) unitQuad() (*quadBuffer, error) {
	if c.unit.valid(c.buffers) {
		return c.unit, nil
	}
	q, err := c.buffers.Acquire(unitHalfSize)
	if err != nil {
		return nil, err
	}
	c.unit = q
	return q, nil
}
