package mapedit

// BufferID names a vertex buffer created by a GPUContext.
type BufferID uint32

// ProgramID names a shader program created by a GPUContext.
type ProgramID uint32

// Primitive selects how DrawArrays assembles vertices.
type Primitive uint8

const (
	PrimitiveTriangleStrip Primitive = iota // each vertex after the second adds a triangle
	PrimitiveTriangles                      // every three vertices form a triangle
)

// GPUContext is the subset of a GL-style graphics API the render pipeline
// needs. Calls follow GL binding semantics: Uniform* and VertexAttribPointer
// apply to the current program and bound buffer, and a location of -1 is
// ignored.
type GPUContext interface {
	CreateBuffer(data []float32) (BufferID, error)
	BindBuffer(id BufferID)
	DeleteBuffer(id BufferID)

	CreateProgram(src ShaderSource) (ProgramID, error)
	UseProgram(id ProgramID)
	DeleteProgram(id ProgramID)

	AttribLocation(p ProgramID, name string) int
	UniformLocation(p ProgramID, name string) int
	VertexAttribPointer(loc, size int)
	EnableVertexAttribArray(loc int)

	Uniform1f(loc int, v float32)
	Uniform2f(loc int, x, y float32)
	Uniform4f(loc int, x, y, z, w float32)

	// BindTexture selects the texture sampled by the next draw. A nil
	// texture or one without an image samples a placeholder.
	BindTexture(t *Texture)

	DrawArrays(mode Primitive, first, count int)
	Clear(c Color)
}

// Vertex attribute and uniform names shared by the built-in programs.
const (
	attribPosition    = "Position"
	uniformCanvasSize = "CanvasSize"
	uniformScale      = "Scale"
	uniformOffset     = "Offset"
	uniformTranslate  = "Translate"
	uniformHalfSize   = "HalfSize"
	uniformFillColor  = "FillColor"
)
