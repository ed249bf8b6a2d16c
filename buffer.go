package mapedit

// quadVertices returns the four corners of a quad centered on the origin in
// triangle strip order: top-left, top-right, bottom-left, bottom-right.
func quadVertices(half Vector2) []float32 {
	hx, hy := float32(half.X), float32(half.Y)
	return []float32{
		-hx, hy,
		hx, hy,
		-hx, -hy,
		hx, -hy,
	}
}

// unitHalfSize is the half extent of the shared unit quad.
var unitHalfSize = Vector2{1, 1}

// quadBuffer is a 4-vertex position buffer owned by a bufferPool.
type quadBuffer struct {
	pool     *bufferPool
	id       BufferID
	half     Vector2
	released bool
}

// release deletes the GPU buffer. Safe to call more than once.
func (q *quadBuffer) release() {
	if q == nil || q.released {
		return
	}
	q.released = true
	delete(q.pool.live, q)
	q.pool.gpu.DeleteBuffer(q.id)
}

// valid reports whether q can still be drawn from pool.
func (q *quadBuffer) valid(pool *bufferPool) bool {
	return q != nil && !q.released && q.pool == pool
}

// bufferPool tracks every quad buffer created on one GPU context so they
// can all be deleted when the canvas is torn down.
type bufferPool struct {
	gpu  GPUContext
	live map[*quadBuffer]struct{}
}

func newBufferPool(gpu GPUContext) *bufferPool {
	return &bufferPool{gpu: gpu, live: make(map[*quadBuffer]struct{})}
}

// Acquire uploads a quad with the given half extents.
func (p *bufferPool) Acquire(half Vector2) (*quadBuffer, error) {
	id, err := p.gpu.CreateBuffer(quadVertices(half))
	if err != nil {
		return nil, err
	}
	q := &quadBuffer{pool: p, id: id, half: half}
	p.live[q] = struct{}{}
	Logger().Debug("quad buffer created", "id", id, "half_x", half.X, "half_y", half.Y)
	return q, nil
}

// ReleaseAll deletes every live buffer.
func (p *bufferPool) ReleaseAll() {
	for q := range p.live {
		q.release()
	}
}

// Len returns the number of live buffers.
func (p *bufferPool) Len() int {
	return len(p.live)
}
