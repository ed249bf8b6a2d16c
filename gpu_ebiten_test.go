package mapedit

import (
	"slices"
	"testing"
)

// fakeProgram registers src on g without compiling it.
func fakeProgram(g *EbitenContext, src ShaderSource) ProgramID {
	id := ProgramID(g.next())
	g.programs[id] = &ebitenProgram{src: src, values: make([][]float32, len(src.Uniforms))}
	return id
}

func TestEbitenBufferBookkeeping(t *testing.T) {
	g := NewEbitenContext(nil)
	if _, err := g.CreateBuffer([]float32{1, 2, 3}); err == nil {
		t.Error("odd-length buffer should be rejected")
	}
	data := quadVertices(Vec(2, 3))
	id, err := g.CreateBuffer(data)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 99
	if g.buffers[id][0] != -2 {
		t.Error("buffer should hold a copy of the data")
	}
	g.BindBuffer(id)
	g.DeleteBuffer(id)
	if _, ok := g.buffers[id]; ok || g.bound != 0 {
		t.Error("deleted buffer still bound or stored")
	}
}

func TestEbitenLocations(t *testing.T) {
	g := NewEbitenContext(nil)
	id := fakeProgram(g, backgroundShader)
	if loc := g.AttribLocation(id, attribPosition); loc != 0 {
		t.Errorf("Position location = %d, want 0", loc)
	}
	if loc := g.UniformLocation(id, uniformFillColor); loc != len(backgroundShader.Uniforms)-1 {
		t.Errorf("FillColor location = %d", loc)
	}
	if loc := g.UniformLocation(id, "Missing"); loc != -1 {
		t.Errorf("missing uniform location = %d, want -1", loc)
	}
	if loc := g.AttribLocation(ProgramID(999), attribPosition); loc != -1 {
		t.Errorf("unknown program location = %d, want -1", loc)
	}
}

func TestEbitenUniformsAndFragmentMap(t *testing.T) {
	g := NewEbitenContext(nil)
	// Without a current program uniforms are dropped.
	g.Uniform1f(0, 1)

	id := fakeProgram(g, backgroundShader)
	g.UseProgram(id)
	g.Uniform4f(g.UniformLocation(id, uniformFillColor), 0.1, 0.2, 0.3, 1)
	g.Uniform1f(g.UniformLocation(id, uniformScale), 2)
	g.Uniform2f(-1, 5, 5)

	u := g.current.fragmentUniforms()
	if len(u) != 1 {
		t.Fatalf("fragment uniforms = %v, want only FillColor", u)
	}
	if got, ok := u[uniformFillColor].([]float32); !ok || !slices.Equal(got, []float32{0.1, 0.2, 0.3, 1}) {
		t.Errorf("FillColor = %v", u[uniformFillColor])
	}
	if sprite := (&ebitenProgram{src: spriteShader}).fragmentUniforms(); sprite != nil {
		t.Errorf("sprite fragment uniforms = %v, want nil", sprite)
	}
}

func TestStageMatrix(t *testing.T) {
	g := NewEbitenContext(nil)
	id := fakeProgram(g, spriteShader)
	g.UseProgram(id)
	g.Uniform2f(g.UniformLocation(id, uniformCanvasSize), 800, 600)
	g.Uniform1f(g.UniformLocation(id, uniformScale), 2)
	g.Uniform2f(g.UniformLocation(id, uniformOffset), 10, 0)
	g.Uniform2f(g.UniformLocation(id, uniformTranslate), 5, 5)
	g.Uniform2f(g.UniformLocation(id, uniformHalfSize), 16, 16)

	m := stageMatrix(g.current)
	x, y := transformPoint(m, 1, 1)
	if !approxEqual(x, 462, epsilon) || !approxEqual(y, 258, epsilon) {
		t.Errorf("top-right corner = (%v, %v), want (462, 258)", x, y)
	}

	// The stage agrees with the viewport's scene-to-screen mapping.
	v := Viewport{Bounds: Rect{Width: 800, Height: 600}, Zoom: 2, PixelRatio: 1}
	x, y = transformPoint(m, -1, -1)
	sx, sy := v.SceneToScreen(Vec(15-16, 5-16))
	if !approxEqual(x, sx, epsilon) || !approxEqual(y, sy, epsilon) {
		t.Errorf("bottom-left = (%v, %v), viewport says (%v, %v)", x, y, sx, sy)
	}
}

func TestStageMatrixDefaults(t *testing.T) {
	p := &ebitenProgram{src: spriteShader, values: make([][]float32, len(spriteShader.Uniforms))}
	m := stageMatrix(p)
	x, y := transformPoint(m, 1, 1)
	if x != 1 || y != -1 {
		t.Errorf("default stage maps (1, 1) to (%v, %v), want (1, -1)", x, y)
	}
}

func TestAppendIndices(t *testing.T) {
	if got := appendIndices(nil, PrimitiveTriangleStrip, 4); !slices.Equal(got, []uint16{0, 1, 2, 2, 1, 3}) {
		t.Errorf("strip = %v", got)
	}
	if got := appendIndices(nil, PrimitiveTriangles, 6); !slices.Equal(got, []uint16{0, 1, 2, 3, 4, 5}) {
		t.Errorf("triangles = %v", got)
	}
	if got := appendIndices(nil, PrimitiveTriangleStrip, 2); len(got) != 0 {
		t.Errorf("degenerate strip = %v", got)
	}
}

func TestEbitenDrawWithoutTargetIsNoop(t *testing.T) {
	g := NewEbitenContext(nil)
	id := fakeProgram(g, backgroundShader)
	buf, _ := g.CreateBuffer(quadVertices(unitHalfSize))
	g.BindBuffer(buf)
	g.VertexAttribPointer(0, 2)
	g.EnableVertexAttribArray(0)
	g.UseProgram(id)
	g.DrawArrays(PrimitiveTriangleStrip, 0, 4)
	g.Clear(ColorWhite)
	if len(g.vertices) != 0 {
		t.Error("nothing should be staged without a target")
	}
}
