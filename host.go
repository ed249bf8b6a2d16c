package mapedit

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Host is an Ebitengine surface for an Editor. It keeps an offscreen frame
// the editor renders into on demand, composites it onto the screen each
// Draw, and turns Ebitengine mouse state into editor pointer events.
type Host struct {
	bounds Rect
	frame  *ebiten.Image
	gpu    *EbitenContext

	inside  bool
	pressed bool
	button  MouseButton
	lastX   float64
	lastY   float64
}

// NewHost returns a host whose canvas occupies bounds of the window.
func NewHost(bounds Rect) *Host {
	h := &Host{gpu: NewEbitenContext(nil)}
	h.Resize(bounds)
	return h
}

// Bounds returns the canvas rectangle in window coordinates.
func (h *Host) Bounds() Rect { return h.bounds }

// PixelSize returns the size of the offscreen frame.
func (h *Host) PixelSize() (w, ht int) {
	if h.frame == nil {
		return 0, 0
	}
	b := h.frame.Bounds()
	return b.Dx(), b.Dy()
}

// GPU returns the context drawing into the offscreen frame.
func (h *Host) GPU() *EbitenContext { return h.gpu }

// Resize moves the canvas. The frame is reallocated when its pixel size
// changes; call Editor.Render afterwards to repaint it.
func (h *Host) Resize(bounds Rect) {
	h.bounds = bounds
	w, ht := int(bounds.Width), int(bounds.Height)
	if w < 1 || ht < 1 {
		w, ht = 1, 1
	}
	if h.frame != nil {
		if b := h.frame.Bounds(); b.Dx() == w && b.Dy() == ht {
			return
		}
		h.frame.Deallocate()
	}
	h.frame = ebiten.NewImage(w, ht)
	h.gpu.SetTarget(h.frame)
}

// Draw composites the last rendered frame onto screen.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.frame == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(h.bounds.X, h.bounds.Y)
	screen.DrawImage(h.frame, op)
}

// PollInput reads the mouse and forwards edges to e: enter when the cursor
// crosses into the canvas, down inside it, moves inside it or anywhere while
// a button is held, up wherever the button is released, and wheel over the
// canvas. Real input is ignored
// while e has injected input pending.
func (h *Host) PollInput(e *Editor) {
	if e.Injecting() {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	// If the pointer is already down, keep the stored button so it does
	// not change mid-gesture.
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	pressed := left || right || middle
	button := h.button
	if pressed && !h.pressed {
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}
	h.dispatch(e, x, y, pressed, button)

	if _, wy := ebiten.Wheel(); wy != 0 && h.bounds.Contains(x, y) {
		// Ebitengine reports wheel-up as positive; DOM-style DeltaY is the opposite.
		e.Wheel(WheelEvent{X: x, Y: y, DeltaY: -wy})
	}
}

// dispatch runs the host pointer state machine for one sample.
func (h *Host) dispatch(e *Editor, x, y float64, pressed bool, button MouseButton) {
	ev := PointerEvent{X: x, Y: y, Button: button}
	inside := h.bounds.Contains(x, y)
	moved := x != h.lastX || y != h.lastY
	h.lastX, h.lastY = x, y

	if inside && !h.inside {
		e.PointerEnter(ev)
	}
	h.inside = inside

	switch {
	case pressed && !h.pressed:
		h.pressed = true
		h.button = button
		if inside {
			e.PointerDown(ev)
		}
	case !pressed && h.pressed:
		h.pressed = false
		e.PointerUp(ev)
	case moved && (inside || h.pressed):
		// A held gesture keeps tracking the pointer outside the canvas.
		e.PointerMove(ev)
	}
}
