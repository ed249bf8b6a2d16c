package mapedit

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenProgram is a compiled Kage fragment shader plus the uniform state
// of its program.
type ebitenProgram struct {
	src    ShaderSource
	shader *ebiten.Shader
	values [][]float32 // indexed by uniform location
}

func (p *ebitenProgram) uniform(name string) []float32 {
	for i, n := range p.src.Uniforms {
		if n == name {
			return p.values[i]
		}
	}
	return nil
}

// fragmentUniforms builds the uniform map passed to DrawTrianglesShader.
func (p *ebitenProgram) fragmentUniforms() map[string]any {
	if len(p.src.FragmentUniforms) == 0 {
		return nil
	}
	u := make(map[string]any, len(p.src.FragmentUniforms))
	for _, name := range p.src.FragmentUniforms {
		v := p.uniform(name)
		switch len(v) {
		case 0:
		case 1:
			u[name] = v[0]
		default:
			u[name] = v
		}
	}
	return u
}

// EbitenContext implements GPUContext on top of Ebitengine. Buffers live on
// the CPU; DrawArrays runs the vertex stage from the current uniforms and
// submits the triangles with DrawTrianglesShader.
type EbitenContext struct {
	target *ebiten.Image

	nextID   uint32
	buffers  map[BufferID][]float32
	programs map[ProgramID]*ebitenProgram

	bound      BufferID
	current    *ebitenProgram
	attribSize map[int]int
	enabled    map[int]bool
	texture    *Texture

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewEbitenContext returns a context drawing into target.
func NewEbitenContext(target *ebiten.Image) *EbitenContext {
	return &EbitenContext{
		target:     target,
		buffers:    make(map[BufferID][]float32),
		programs:   make(map[ProgramID]*ebitenProgram),
		attribSize: make(map[int]int),
		enabled:    make(map[int]bool),
	}
}

// SetTarget redirects drawing to img. Buffers and programs are kept.
func (g *EbitenContext) SetTarget(img *ebiten.Image) {
	g.target = img
}

// Target returns the image being drawn into.
func (g *EbitenContext) Target() *ebiten.Image {
	return g.target
}

func (g *EbitenContext) next() uint32 {
	g.nextID++
	return g.nextID
}

// CreateBuffer copies data into a new buffer.
func (g *EbitenContext) CreateBuffer(data []float32) (BufferID, error) {
	if len(data)%2 != 0 {
		return 0, fmt.Errorf("mapedit: buffer length %d is not a multiple of 2", len(data))
	}
	id := BufferID(g.next())
	g.buffers[id] = append([]float32(nil), data...)
	return id, nil
}

func (g *EbitenContext) BindBuffer(id BufferID) { g.bound = id }

func (g *EbitenContext) DeleteBuffer(id BufferID) {
	delete(g.buffers, id)
	if g.bound == id {
		g.bound = 0
	}
}

// CreateProgram compiles the Kage fragment stage of src.
func (g *EbitenContext) CreateProgram(src ShaderSource) (ProgramID, error) {
	if len(src.Kage) == 0 {
		return 0, errors.New("mapedit: shader has no Kage source")
	}
	shader, err := ebiten.NewShader(src.Kage)
	if err != nil {
		return 0, err
	}
	id := ProgramID(g.next())
	g.programs[id] = &ebitenProgram{
		src:    src,
		shader: shader,
		values: make([][]float32, len(src.Uniforms)),
	}
	return id, nil
}

func (g *EbitenContext) UseProgram(id ProgramID) { g.current = g.programs[id] }

func (g *EbitenContext) DeleteProgram(id ProgramID) {
	p, ok := g.programs[id]
	if !ok {
		return
	}
	p.shader.Deallocate()
	delete(g.programs, id)
	if g.current == p {
		g.current = nil
	}
}

func (g *EbitenContext) AttribLocation(id ProgramID, name string) int {
	p, ok := g.programs[id]
	if !ok {
		return -1
	}
	return indexOf(p.src.Attributes, name)
}

func (g *EbitenContext) UniformLocation(id ProgramID, name string) int {
	p, ok := g.programs[id]
	if !ok {
		return -1
	}
	return indexOf(p.src.Uniforms, name)
}

func (g *EbitenContext) VertexAttribPointer(loc, size int) {
	if loc >= 0 {
		g.attribSize[loc] = size
	}
}

func (g *EbitenContext) EnableVertexAttribArray(loc int) {
	if loc >= 0 {
		g.enabled[loc] = true
	}
}

func (g *EbitenContext) Uniform1f(loc int, v float32) { g.setUniform(loc, v) }

func (g *EbitenContext) Uniform2f(loc int, x, y float32) { g.setUniform(loc, x, y) }

func (g *EbitenContext) Uniform4f(loc int, x, y, z, w float32) { g.setUniform(loc, x, y, z, w) }

func (g *EbitenContext) setUniform(loc int, v ...float32) {
	if g.current == nil || loc < 0 || loc >= len(g.current.values) {
		return
	}
	g.current.values[loc] = append(g.current.values[loc][:0], v...)
}

func (g *EbitenContext) BindTexture(t *Texture) { g.texture = t }

// DrawArrays draws count vertices of the bound buffer starting at first.
// Only attribute location 0 (the 2D position) is read.
func (g *EbitenContext) DrawArrays(mode Primitive, first, count int) {
	p := g.current
	data := g.buffers[g.bound]
	if g.target == nil || p == nil || !g.enabled[0] || g.attribSize[0] != 2 {
		return
	}
	if first < 0 || count < 3 || 2*(first+count) > len(data) {
		return
	}

	m := stageMatrix(p)
	var img *ebiten.Image
	var srcX, srcY, srcW, srcH float32
	if p.src.Textured {
		img = g.texture.drawImage()
		b := img.Bounds()
		srcX, srcY = float32(b.Min.X), float32(b.Min.Y)
		srcW, srcH = float32(b.Dx()), float32(b.Dy())
	}

	g.vertices = g.vertices[:0]
	for i := first; i < first+count; i++ {
		x, y := float64(data[2*i]), float64(data[2*i+1])
		dx, dy := transformPoint(m, x, y)
		v := ebiten.Vertex{
			DstX: float32(dx), DstY: float32(dy),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
		if img != nil {
			v.SrcX = srcX + (float32(x)+1)/2*srcW
			v.SrcY = srcY + (1-float32(y))/2*srcH
		}
		g.vertices = append(g.vertices, v)
	}
	g.indices = appendIndices(g.indices[:0], mode, count)

	opts := &ebiten.DrawTrianglesShaderOptions{Uniforms: p.fragmentUniforms()}
	opts.Images[0] = img
	g.target.DrawTrianglesShader(g.vertices, g.indices, p.shader, opts)
}

// Clear fills the target with c.
func (g *EbitenContext) Clear(c Color) {
	if g.target == nil {
		return
	}
	if c.A == 0 {
		g.target.Clear()
		return
	}
	g.target.Fill(c.RGBA())
}

// stageMatrix is the vertex stage of the built-in programs as an affine
// matrix: view(CanvasSize, Scale) * translate(Translate+Offset) * scale(HalfSize).
func stageMatrix(p *ebitenProgram) [6]float64 {
	canvas := vec2Uniform(p.uniform(uniformCanvasSize), 0, 0)
	half := vec2Uniform(p.uniform(uniformHalfSize), 1, 1)
	translate := vec2Uniform(p.uniform(uniformTranslate), 0, 0)
	offset := vec2Uniform(p.uniform(uniformOffset), 0, 0)
	scale := 1.0
	if v := p.uniform(uniformScale); len(v) == 1 {
		scale = float64(v[0])
	}
	view := viewMatrix(0, 0, canvas.X, canvas.Y, scale)
	model := multiplyAffine(translateAffine(translate.X+offset.X, translate.Y+offset.Y), scaleAffine(half.X, half.Y))
	return multiplyAffine(view, model)
}

func vec2Uniform(v []float32, defX, defY float64) Vector2 {
	if len(v) < 2 {
		return Vector2{defX, defY}
	}
	return Vector2{float64(v[0]), float64(v[1])}
}

// appendIndices appends triangle indices for count vertices. Strip
// triangles alternate winding so every triangle faces the same way.
func appendIndices(dst []uint16, mode Primitive, count int) []uint16 {
	switch mode {
	case PrimitiveTriangleStrip:
		for i := 0; i+2 < count; i++ {
			if i%2 == 0 {
				dst = append(dst, uint16(i), uint16(i+1), uint16(i+2))
			} else {
				dst = append(dst, uint16(i+1), uint16(i), uint16(i+2))
			}
		}
	case PrimitiveTriangles:
		for i := 0; i+2 < count; i += 3 {
			dst = append(dst, uint16(i), uint16(i+1), uint16(i+2))
		}
	}
	return dst
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
