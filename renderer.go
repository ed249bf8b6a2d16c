package mapedit

// MapRenderer draws one map. It owns the map's zoom and the cached quad
// covering the map canvas; the quad is rebuilt after the map is resized.
type MapRenderer struct {
	m    *Map
	zoom float64
	quad *quadBuffer
}

func newMapRenderer(m *Map) *MapRenderer {
	return &MapRenderer{m: m, zoom: 1}
}

// Zoom returns the zoom factor (1 is native scale).
func (r *MapRenderer) Zoom() float64 { return r.zoom }

// SetZoom sets the zoom factor. Callers clamp it to the editor limits.
func (r *MapRenderer) SetZoom(z float64) {
	if z == r.zoom {
		return
	}
	r.zoom = z
	r.m.changed()
}

// invalidate drops the cached canvas quad.
func (r *MapRenderer) invalidate() {
	r.quad.release()
	r.quad = nil
}

// ensureQuad returns the canvas quad, building it from the map size on
// first use or after invalidation.
func (r *MapRenderer) ensureQuad(pool *bufferPool) (*quadBuffer, error) {
	if r.quad.valid(pool) {
		return r.quad, nil
	}
	r.quad.release()
	r.quad = nil
	q, err := pool.Acquire(r.m.size.Scale(0.5))
	if err != nil {
		return nil, err
	}
	r.quad = q
	return q, nil
}

// Render draws the map canvas and then every placed texture, layer by
// layer in insertion order, through c.
func (r *MapRenderer) Render(c *CanvasRenderer) (FrameStats, error) {
	var stats FrameStats
	gpu := c.gpu
	if gpu == nil {
		return stats, ErrGPUUnavailable
	}
	bg, err := c.shaders.program(backgroundShader)
	if err != nil {
		return stats, err
	}
	sprite, err := c.shaders.program(spriteShader)
	if err != nil {
		return stats, err
	}
	quad, err := r.ensureQuad(c.buffers)
	if err != nil {
		return stats, err
	}
	unit, err := c.unitQuad()
	if err != nil {
		return stats, err
	}

	w, h := c.surface.PixelSize()
	scale := float32(r.zoom * r.m.project.PixelRatio())
	off := r.m.offset

	gpu.BindBuffer(quad.id)
	loc := gpu.AttribLocation(bg, attribPosition)
	gpu.VertexAttribPointer(loc, 2)
	gpu.EnableVertexAttribArray(loc)
	gpu.UseProgram(bg)
	gpu.Uniform2f(gpu.UniformLocation(bg, uniformCanvasSize), float32(w), float32(h))
	gpu.Uniform1f(gpu.UniformLocation(bg, uniformScale), scale)
	gpu.Uniform2f(gpu.UniformLocation(bg, uniformOffset), float32(off.X), float32(off.Y))
	gpu.Uniform2f(gpu.UniformLocation(bg, uniformTranslate), 0, 0)
	gpu.Uniform2f(gpu.UniformLocation(bg, uniformHalfSize), 1, 1)
	fill := c.background.premultiplied()
	gpu.Uniform4f(gpu.UniformLocation(bg, uniformFillColor), fill[0], fill[1], fill[2], fill[3])
	gpu.DrawArrays(PrimitiveTriangleStrip, 0, 4)
	stats.DrawCalls++

	gpu.BindBuffer(unit.id)
	loc = gpu.AttribLocation(sprite, attribPosition)
	gpu.VertexAttribPointer(loc, 2)
	gpu.EnableVertexAttribArray(loc)
	gpu.UseProgram(sprite)
	gpu.Uniform2f(gpu.UniformLocation(sprite, uniformCanvasSize), float32(w), float32(h))
	gpu.Uniform1f(gpu.UniformLocation(sprite, uniformScale), scale)
	gpu.Uniform2f(gpu.UniformLocation(sprite, uniformOffset), float32(off.X), float32(off.Y))
	translate := gpu.UniformLocation(sprite, uniformTranslate)
	halfSize := gpu.UniformLocation(sprite, uniformHalfSize)
	for _, l := range r.m.layers {
		for _, pt := range l.textures {
			hs := pt.texture.HalfSize()
			gpu.BindTexture(pt.texture)
			gpu.Uniform2f(translate, float32(pt.position.X), float32(pt.position.Y))
			gpu.Uniform2f(halfSize, float32(hs.X), float32(hs.Y))
			gpu.DrawArrays(PrimitiveTriangleStrip, 0, 4)
			stats.DrawCalls++
			stats.Textures++
		}
	}
	return stats, nil
}
