package mapedit

import "fmt"

// ShaderSource describes a program. Kage holds the fragment stage for the
// Ebitengine backend; the vertex stage is the fixed transform
//
//	clip = view(CanvasSize, Scale) * (Position*HalfSize + Translate + Offset)
//
// which every backend implements itself. Uniforms lists every uniform the
// program accepts, FragmentUniforms the subset read by the fragment stage.
type ShaderSource struct {
	Name             string
	Kage             []byte
	Textured         bool
	Attributes       []string
	Uniforms         []string
	FragmentUniforms []string
}

var vertexUniforms = []string{
	uniformCanvasSize,
	uniformScale,
	uniformOffset,
	uniformTranslate,
	uniformHalfSize,
}

// backgroundShader fills the map canvas with a flat color.
var backgroundShader = ShaderSource{
	Name: "background",
	Kage: []byte(`//kage:unit pixels

package main

var FillColor vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return FillColor
}
`),
	Attributes:       []string{attribPosition},
	Uniforms:         append(append([]string{}, vertexUniforms...), uniformFillColor),
	FragmentUniforms: []string{uniformFillColor},
}

// spriteShader samples the bound texture.
var spriteShader = ShaderSource{
	Name: "sprite",
	Kage: []byte(`//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return imageSrc0At(srcPos) * color
}
`),
	Textured:   true,
	Attributes: []string{attribPosition},
	Uniforms:   vertexUniforms,
}

// shaderCache compiles programs on first use and remembers failures so a
// broken program is not rebuilt every frame.
type shaderCache struct {
	gpu      GPUContext
	programs map[string]ProgramID
	failed   map[string]error
}

func newShaderCache(gpu GPUContext) *shaderCache {
	return &shaderCache{
		gpu:      gpu,
		programs: make(map[string]ProgramID),
		failed:   make(map[string]error),
	}
}

// program returns the compiled program for src.
func (c *shaderCache) program(src ShaderSource) (ProgramID, error) {
	if id, ok := c.programs[src.Name]; ok {
		return id, nil
	}
	if err, ok := c.failed[src.Name]; ok {
		return 0, err
	}
	id, err := c.gpu.CreateProgram(src)
	if err != nil {
		err = fmt.Errorf("%w: compile %s shader: %v", ErrGPUUnavailable, src.Name, err)
		c.failed[src.Name] = err
		Logger().Error("shader compile failed", "shader", src.Name, "error", err)
		return 0, err
	}
	c.programs[src.Name] = id
	Logger().Debug("shader compiled", "shader", src.Name, "id", id)
	return id, nil
}

// release deletes every compiled program.
func (c *shaderCache) release() {
	for name, id := range c.programs {
		c.gpu.DeleteProgram(id)
		delete(c.programs, name)
	}
	clear(c.failed)
}
