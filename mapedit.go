package mapedit

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at uniform upload time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral sprite tint.
var ColorWhite = Color{1, 1, 1, 1}

// colorFromStd converts any color.Color into a Color.
func colorFromStd(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// color.Color is premultiplied; undo it.
	fa := float64(a)
	return Color{
		R: float64(r) / fa,
		G: float64(g) / fa,
		B: float64(b) / fa,
		A: fa / 0xffff,
	}
}

// premultiplied returns the color as premultiplied float32 components, the
// layout Kage shaders expect for a vec4 uniform.
func (c Color) premultiplied() []float32 {
	return []float32{
		float32(c.R * c.A),
		float32(c.G * c.A),
		float32(c.B * c.A),
		float32(c.A),
	}
}

// RGBA converts the color to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rect is an axis-aligned rectangle in client (screen) coordinates. The
// origin is at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// GestureState is the pointer interaction state of an Editor.
type GestureState uint8

const (
	GestureIdle            GestureState = iota // nothing selected, no button held
	GestureArmedForPlace                       // a palette texture is selected
	GesturePlacingTexture                      // a freshly placed texture follows the pointer
	GesturePanning                             // middle button drags the map offset
	GestureDraggingTexture                     // an existing placed texture follows the pointer
)

func (g GestureState) String() string {
	switch g {
	case GestureIdle:
		return "idle"
	case GestureArmedForPlace:
		return "armed"
	case GesturePlacingTexture:
		return "placing"
	case GesturePanning:
		return "panning"
	case GestureDraggingTexture:
		return "dragging"
	default:
		return "unknown"
	}
}
