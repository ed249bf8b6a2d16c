package mapedit

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertVec(t *testing.T, name string, got, want Vector2) {
	t.Helper()
	if !approxEqual(got.X, want.X, epsilon) || !approxEqual(got.Y, want.Y, epsilon) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// --- GPU ---

type fakeDraw struct {
	program  string
	buffer   BufferID
	texture  *Texture
	uniforms map[string][]float32
}

func (d fakeDraw) vec2(name string) Vector2 {
	v := d.uniforms[name]
	if len(v) < 2 {
		return Vector2{math.NaN(), math.NaN()}
	}
	return Vector2{float64(v[0]), float64(v[1])}
}

// fakeGPU records every state-changing call.
type fakeGPU struct {
	nextID   uint32
	buffers  map[BufferID][]float32
	programs map[ProgramID]ShaderSource
	values   map[ProgramID]map[string][]float32
	current  ProgramID
	bound    BufferID
	texture  *Texture

	failCompile map[string]bool
	compiles    map[string]int

	calls []string
	draws []fakeDraw
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{
		buffers:     make(map[BufferID][]float32),
		programs:    make(map[ProgramID]ShaderSource),
		values:      make(map[ProgramID]map[string][]float32),
		failCompile: make(map[string]bool),
		compiles:    make(map[string]int),
	}
}

func (g *fakeGPU) record(format string, args ...any) {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

func (g *fakeGPU) CreateBuffer(data []float32) (BufferID, error) {
	g.nextID++
	id := BufferID(g.nextID)
	g.buffers[id] = append([]float32(nil), data...)
	g.record("CreateBuffer %d", id)
	return id, nil
}

func (g *fakeGPU) BindBuffer(id BufferID) {
	g.bound = id
	g.record("BindBuffer %d", id)
}

func (g *fakeGPU) DeleteBuffer(id BufferID) {
	delete(g.buffers, id)
	g.record("DeleteBuffer %d", id)
}

func (g *fakeGPU) CreateProgram(src ShaderSource) (ProgramID, error) {
	g.compiles[src.Name]++
	if g.failCompile[src.Name] {
		return 0, errors.New("compile error")
	}
	g.nextID++
	id := ProgramID(g.nextID)
	g.programs[id] = src
	g.values[id] = make(map[string][]float32)
	g.record("CreateProgram %s", src.Name)
	return id, nil
}

func (g *fakeGPU) UseProgram(id ProgramID) {
	g.current = id
	g.record("UseProgram %s", g.programs[id].Name)
}

func (g *fakeGPU) DeleteProgram(id ProgramID) {
	g.record("DeleteProgram %s", g.programs[id].Name)
	delete(g.programs, id)
}

func (g *fakeGPU) AttribLocation(p ProgramID, name string) int {
	return indexOf(g.programs[p].Attributes, name)
}

func (g *fakeGPU) UniformLocation(p ProgramID, name string) int {
	return indexOf(g.programs[p].Uniforms, name)
}

func (g *fakeGPU) VertexAttribPointer(loc, size int) {
	g.record("VertexAttribPointer %d %d", loc, size)
}

func (g *fakeGPU) EnableVertexAttribArray(loc int) {
	g.record("EnableVertexAttribArray %d", loc)
}

func (g *fakeGPU) uniform(op string, loc int, v ...float32) {
	src := g.programs[g.current]
	if loc < 0 || loc >= len(src.Uniforms) {
		g.record("%s <invalid %d>", op, loc)
		return
	}
	name := src.Uniforms[loc]
	g.values[g.current][name] = append([]float32(nil), v...)
	g.record("%s %s", op, name)
}

func (g *fakeGPU) Uniform1f(loc int, v float32)          { g.uniform("Uniform1f", loc, v) }
func (g *fakeGPU) Uniform2f(loc int, x, y float32)       { g.uniform("Uniform2f", loc, x, y) }
func (g *fakeGPU) Uniform4f(loc int, x, y, z, w float32) { g.uniform("Uniform4f", loc, x, y, z, w) }

func (g *fakeGPU) BindTexture(t *Texture) {
	g.texture = t
	g.record("BindTexture %s", t.Name)
}

func (g *fakeGPU) DrawArrays(mode Primitive, first, count int) {
	u := make(map[string][]float32)
	for k, v := range g.values[g.current] {
		u[k] = v
	}
	src := g.programs[g.current]
	var tex *Texture
	if src.Textured {
		tex = g.texture
	}
	g.draws = append(g.draws, fakeDraw{program: src.Name, buffer: g.bound, texture: tex, uniforms: u})
	g.record("DrawArrays %d %d", first, count)
}

func (g *fakeGPU) Clear(Color) {
	g.record("Clear")
}

func (g *fakeGPU) count(prefix string) int {
	n := 0
	for _, c := range g.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// --- Canvas / surface ---

type fakeSurface struct {
	bounds Rect
}

func (s fakeSurface) Bounds() Rect { return s.bounds }

func (s fakeSurface) PixelSize() (int, int) {
	return int(s.bounds.Width), int(s.bounds.Height)
}

// fakeCanvas counts render requests.
type fakeCanvas struct {
	bounds   Rect
	renders  int
	clears   int
	lastMap  *Map
	rendered []*Map
}

func (c *fakeCanvas) Bounds() Rect { return c.bounds }

func (c *fakeCanvas) Render(m *Map) {
	c.renders++
	c.lastMap = m
	c.rendered = append(c.rendered, m)
}

func (c *fakeCanvas) Clear() {
	c.clears++
	c.lastMap = nil
}

// --- helpers ---

func testTextures() []*Texture {
	return []*Texture{
		{Name: "grass", Canvas: TextureCanvas{Width: 32, Height: 32}},
		{Name: "tree", Canvas: TextureCanvas{Width: 33, Height: 31}},
		{Name: "rock", Canvas: TextureCanvas{Width: 16, Height: 8}},
	}
}

func newTestEditor(t *testing.T) (*Editor, *fakeCanvas) {
	t.Helper()
	canvas := &fakeCanvas{bounds: Rect{X: 0, Y: 0, Width: 800, Height: 600}}
	e, err := NewEditor(canvas, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	return e, canvas
}

// openLoaded opens a new map backed by a loaded project in e.
func openLoaded(t *testing.T, e *Editor, name string) *Map {
	t.Helper()
	p := NewLoadedProject(testTextures(), 1)
	m := NewMap(p, name, t.TempDir()+"/"+name+".json")
	m.Open(t.Context(), e)
	return m
}
