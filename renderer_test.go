package mapedit

import (
	"errors"
	"slices"
	"testing"
)

func newTestCanvas(gpu GPUContext) *CanvasRenderer {
	return NewCanvasRenderer(fakeSurface{bounds: Rect{Width: 800, Height: 600}}, gpu, Color{1, 1, 1, 1})
}

func TestRenderCallSequence(t *testing.T) {
	gpu := newFakeGPU()
	c := newTestCanvas(gpu)
	m := newTestMap(t)

	c.Render(m)

	want := []string{
		"Clear",
		"CreateProgram background",
		"CreateProgram sprite",
		"CreateBuffer 3",
		"CreateBuffer 4",
		// Map canvas.
		"BindBuffer 3",
		"VertexAttribPointer 0 2",
		"EnableVertexAttribArray 0",
		"UseProgram background",
		"Uniform2f CanvasSize",
		"Uniform1f Scale",
		"Uniform2f Offset",
		"Uniform2f Translate",
		"Uniform2f HalfSize",
		"Uniform4f FillColor",
		"DrawArrays 0 4",
		// Sprite pass setup; no textures placed.
		"BindBuffer 4",
		"VertexAttribPointer 0 2",
		"EnableVertexAttribArray 0",
		"UseProgram sprite",
		"Uniform2f CanvasSize",
		"Uniform1f Scale",
		"Uniform2f Offset",
	}
	if !slices.Equal(gpu.calls, want) {
		t.Errorf("calls =\n%v\nwant\n%v", gpu.calls, want)
	}
	wantVerts := []float32{-320, 240, 320, 240, -320, -240, 320, -240}
	if got := gpu.buffers[3]; !slices.Equal(got, wantVerts) {
		t.Errorf("map quad = %v, want %v", got, wantVerts)
	}
	if got := gpu.buffers[4]; !slices.Equal(got, []float32{-1, 1, 1, 1, -1, -1, 1, -1}) {
		t.Errorf("unit quad = %v", got)
	}
}

func TestRenderUniforms(t *testing.T) {
	gpu := newFakeGPU()
	c := NewCanvasRenderer(fakeSurface{bounds: Rect{Width: 800, Height: 600}}, gpu, Color{1, 0, 0, 0.5})
	m := NewMap(NewLoadedProject(testTextures(), 2), "Level1", "Level1.json")
	m.Renderer().SetZoom(1.5)
	m.SetOffset(Vec(7, -3))

	c.Render(m)

	if len(gpu.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(gpu.draws))
	}
	d := gpu.draws[0]
	if got := d.uniforms[uniformScale]; len(got) != 1 || got[0] != 3 {
		t.Errorf("Scale = %v, want zoom*ratio = 3", got)
	}
	assertVec(t, "CanvasSize", d.vec2(uniformCanvasSize), Vec(800, 600))
	assertVec(t, "Offset", d.vec2(uniformOffset), Vec(7, -3))
	assertVec(t, "Translate", d.vec2(uniformTranslate), Vec(0, 0))
	assertVec(t, "HalfSize", d.vec2(uniformHalfSize), Vec(1, 1))
	if got := d.uniforms[uniformFillColor]; !slices.Equal(got, []float32{0.5, 0, 0, 0.5}) {
		t.Errorf("FillColor = %v, want premultiplied red", got)
	}
}

func TestRenderTexturesInLayerOrder(t *testing.T) {
	gpu := newFakeGPU()
	c := newTestCanvas(gpu)
	m := newTestMap(t)
	tex := testTextures()
	m.ActiveLayer().AddTexture(tex[0], Vec(1, 2))
	m.ActiveLayer().AddTexture(tex[1], Vec(3.5, 4.5))
	m.AddLayer().AddTexture(tex[2], Vec(-5, -6))

	c.Render(m)

	if len(gpu.draws) != 4 {
		t.Fatalf("draws = %d, want 4", len(gpu.draws))
	}
	wantNames := []string{"grass", "tree", "rock"}
	wantPos := []Vector2{Vec(1, 2), Vec(3.5, 4.5), Vec(-5, -6)}
	wantHalf := []Vector2{Vec(16, 16), Vec(16.5, 15.5), Vec(8, 4)}
	for i, d := range gpu.draws[1:] {
		if d.program != "sprite" || d.buffer != 4 {
			t.Errorf("draw %d: program %s buffer %d", i, d.program, d.buffer)
		}
		if d.texture == nil || d.texture.Name != wantNames[i] {
			t.Errorf("draw %d: texture %v, want %s", i, d.texture, wantNames[i])
		}
		assertVec(t, "Translate", d.vec2(uniformTranslate), wantPos[i])
		assertVec(t, "HalfSize", d.vec2(uniformHalfSize), wantHalf[i])
	}
	stats := c.Stats()
	if stats.DrawCalls != 4 || stats.Textures != 3 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRenderReusesResources(t *testing.T) {
	gpu := newFakeGPU()
	c := newTestCanvas(gpu)
	m := newTestMap(t)
	c.Render(m)
	c.Render(m)
	if n := gpu.count("CreateProgram"); n != 2 {
		t.Errorf("CreateProgram calls = %d, want 2", n)
	}
	if n := gpu.count("CreateBuffer"); n != 2 {
		t.Errorf("CreateBuffer calls = %d, want 2", n)
	}
}

func TestResizeRebuildsQuad(t *testing.T) {
	gpu := newFakeGPU()
	c := newTestCanvas(gpu)
	m := newTestMap(t)
	c.Render(m)
	old := m.Renderer().quad.id

	if err := m.SetSize(Vec(100, 200)); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(gpu.calls, "DeleteBuffer 3") || old != 3 {
		t.Errorf("resize should delete the old quad, calls = %v", gpu.calls)
	}
	c.Render(m)
	q := m.Renderer().quad
	if q.id == old {
		t.Fatal("quad not rebuilt")
	}
	if got := gpu.buffers[q.id]; !slices.Equal(got, []float32{-50, 100, 50, 100, -50, -100, 50, -100}) {
		t.Errorf("rebuilt quad = %v", got)
	}
	if c.buffers.Len() != 2 {
		t.Errorf("live buffers = %d, want 2", c.buffers.Len())
	}
}

func TestRenderWithoutGPU(t *testing.T) {
	c := newTestCanvas(nil)
	m := newTestMap(t)
	c.Render(m)
	c.Clear()
	c.Release()
	if _, err := m.Renderer().Render(c); !errors.Is(err, ErrGPUUnavailable) {
		t.Errorf("error = %v, want ErrGPUUnavailable", err)
	}
}

func TestShaderFailureClears(t *testing.T) {
	gpu := newFakeGPU()
	gpu.failCompile["sprite"] = true
	c := newTestCanvas(gpu)
	m := newTestMap(t)

	c.Render(m)
	c.Render(m)

	if len(gpu.draws) != 0 {
		t.Errorf("draws = %d, want 0", len(gpu.draws))
	}
	if n := gpu.compiles["sprite"]; n != 1 {
		t.Errorf("sprite compiled %d times, want 1", n)
	}
	if n := gpu.count("Clear"); n != 4 {
		t.Errorf("Clear calls = %d, want 4", n)
	}
	if _, err := m.Renderer().Render(c); !errors.Is(err, ErrGPUUnavailable) {
		t.Errorf("error = %v, want ErrGPUUnavailable", err)
	}
	if c.Stats() != (FrameStats{}) {
		t.Errorf("stats = %+v, want zero", c.Stats())
	}
}

func TestReleaseDeletesEverything(t *testing.T) {
	gpu := newFakeGPU()
	c := newTestCanvas(gpu)
	m := newTestMap(t)
	c.Render(m)
	c.Release()

	if n := gpu.count("DeleteBuffer"); n != 2 {
		t.Errorf("DeleteBuffer calls = %d, want 2", n)
	}
	if n := gpu.count("DeleteProgram"); n != 2 {
		t.Errorf("DeleteProgram calls = %d, want 2", n)
	}
	if c.buffers.Len() != 0 || len(gpu.buffers) != 0 {
		t.Error("buffers left after Release")
	}

	c.Render(m)
	if n := gpu.count("CreateBuffer"); n != 4 {
		t.Errorf("CreateBuffer calls = %d, want 4 after re-render", n)
	}
	if len(gpu.draws) != 2 {
		t.Errorf("draws = %d, want 2", len(gpu.draws))
	}
}

func TestCloseReleasesMapQuad(t *testing.T) {
	gpu := newFakeGPU()
	c := newTestCanvas(gpu)
	e, err := NewEditor(c, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	m := openLoaded(t, e, "Level1")
	if c.buffers.Len() != 2 {
		t.Fatalf("live buffers = %d, want 2", c.buffers.Len())
	}
	e.CloseOpenMap(m)
	if c.buffers.Len() != 1 {
		t.Errorf("live buffers = %d, want only the unit quad", c.buffers.Len())
	}
	if m.Renderer().quad != nil {
		t.Error("closed map still holds its quad")
	}
}
