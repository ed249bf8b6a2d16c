package mapedit

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureCanvas is the pixel size of a texture asset.
type TextureCanvas struct {
	Width, Height int
}

// Texture is an immutable image asset available for placement. Textures
// belong to a Project and are shared by every PlacedTexture that shows them.
type Texture struct {
	Name   string
	Canvas TextureCanvas
	// Image is the GPU image drawn for this texture. A nil Image renders as
	// a magenta placeholder.
	Image *ebiten.Image
}

// NewTexture wraps img as a named texture sized to its bounds.
func NewTexture(name string, img *ebiten.Image) *Texture {
	b := img.Bounds()
	return &Texture{
		Name:   name,
		Canvas: TextureCanvas{Width: b.Dx(), Height: b.Dy()},
		Image:  img,
	}
}

// HalfSize returns half the texture's pixel dimensions.
func (t *Texture) HalfSize() Vector2 {
	return Vector2{float64(t.Canvas.Width) / 2, float64(t.Canvas.Height) / 2}
}

// pixelCenterCorrection is the half-unit shift applied on each axis whose
// pixel dimension is odd. It keeps odd-sized edges on whole pixels.
func (t *Texture) pixelCenterCorrection() Vector2 {
	var c Vector2
	if t.Canvas.Width%2 != 0 {
		c.X = 0.5
	}
	if t.Canvas.Height%2 != 0 {
		c.Y = 0.5
	}
	return c
}

// drawImage returns the image to sample when drawing t.
func (t *Texture) drawImage() *ebiten.Image {
	if t == nil || t.Image == nil {
		return ensureMagentaImage()
	}
	return t.Image
}

// magenta placeholder singleton (no sync.Once, rendering is single-threaded)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
