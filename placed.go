package mapedit

// PlacedTexture is one instance of a Texture on a Layer. Position is the
// texture's center in map space (before the map offset is applied).
type PlacedTexture struct {
	texture  *Texture
	position Vector2
}

// Texture returns the shared texture this instance shows.
func (p *PlacedTexture) Texture() *Texture { return p.texture }

// Position returns the center of the instance in map space.
func (p *PlacedTexture) Position() Vector2 { return p.position }

// SetPosition moves the instance.
func (p *PlacedTexture) SetPosition(pos Vector2) { p.position = pos }

// Contains reports whether the scene point lies within the instance's
// rectangle once the map offset is applied. Edges count as inside.
func (p *PlacedTexture) Contains(scene, offset Vector2) bool {
	half := p.texture.HalfSize()
	c := p.position.Add(offset)
	return scene.X >= c.X-half.X && scene.X <= c.X+half.X &&
		scene.Y >= c.Y-half.Y && scene.Y <= c.Y+half.Y
}
