package mapedit

// Layer is an ordered stack of placed textures. Textures are painted in
// insertion order, so later ones appear on top.
type Layer struct {
	owner    *Map // non-owning
	textures []*PlacedTexture
}

// Map returns the map this layer belongs to.
func (l *Layer) Map() *Map { return l.owner }

// Textures returns the placed textures in paint order. The slice must not
// be modified.
func (l *Layer) Textures() []*PlacedTexture { return l.textures }

// Len returns the number of placed textures.
func (l *Layer) Len() int { return len(l.textures) }

// AddTexture places tex at pos on top of the layer and returns the new
// instance.
func (l *Layer) AddTexture(tex *Texture, pos Vector2) *PlacedTexture {
	pt := &PlacedTexture{texture: tex, position: pos}
	l.textures = append(l.textures, pt)
	l.owner.changed()
	return pt
}

// RemoveTexture removes pt from the layer. Returns false if pt is not on it.
func (l *Layer) RemoveTexture(pt *PlacedTexture) bool {
	for i, t := range l.textures {
		if t == pt {
			copy(l.textures[i:], l.textures[i+1:])
			l.textures[len(l.textures)-1] = nil
			l.textures = l.textures[:len(l.textures)-1]
			l.owner.changed()
			return true
		}
	}
	return false
}

// hitTest returns the topmost placed texture containing the scene point,
// or nil.
func (l *Layer) hitTest(scene, offset Vector2) *PlacedTexture {
	for i := len(l.textures) - 1; i >= 0; i-- {
		if l.textures[i].Contains(scene, offset) {
			return l.textures[i]
		}
	}
	return nil
}
