package mapedit

import "math"

// PointerEvent is a pointer event in client coordinates.
type PointerEvent struct {
	X, Y   float64
	Button MouseButton
}

// WheelEvent is a wheel event in client coordinates. Positive DeltaY
// scrolls down (zooms out).
type WheelEvent struct {
	X, Y   float64
	DeltaY float64
}

// dragState is the pointer state between a press (or a placement) and the
// next release.
type dragState struct {
	hasOrigin bool
	mouseDown Vector2 // scene position of the press
	hasButton bool
	button    MouseButton

	startOffset Vector2 // map offset when panning started
	dragStart   Vector2

	object  *PlacedTexture
	placing bool // object was created by PointerEnter
}

// GestureState reports the current interaction state.
func (e *Editor) GestureState() GestureState {
	switch {
	case e.drag.object != nil && e.drag.placing:
		return GesturePlacingTexture
	case e.drag.object != nil:
		return GestureDraggingTexture
	case e.drag.hasOrigin && e.drag.hasButton && e.drag.button == MouseButtonMiddle:
		return GesturePanning
	case e.selectedTexture > -1:
		return GestureArmedForPlace
	default:
		return GestureIdle
	}
}

// PointerEnter handles the pointer entering the canvas. With a palette
// texture selected, a new instance is placed under the pointer on the
// active layer and follows the pointer until release.
func (e *Editor) PointerEnter(ev PointerEvent) {
	m := e.active
	if m == nil || e.selectedTexture < 0 {
		return
	}
	textures := m.project.Textures()
	if e.selectedTexture >= len(textures) {
		e.setSelectedTexture(-1)
		return
	}
	pos := e.MouseToScene(ev.X, ev.Y)
	tex := textures[e.selectedTexture]

	e.drag.object = m.ActiveLayer().AddTexture(tex, pos)
	e.drag.placing = true
	e.drag.hasOrigin = true
	e.drag.mouseDown = pos
	e.drag.dragStart = pos
	e.setSelectedTexture(-1)
	e.Render()
}

// PointerDown records the press position, button and current map offset.
// A left press on a placed texture of the active layer picks it up.
func (e *Editor) PointerDown(ev PointerEvent) {
	m := e.active
	if m == nil {
		return
	}
	pos := e.MouseToScene(ev.X, ev.Y)
	e.drag.hasOrigin = true
	e.drag.mouseDown = pos
	e.drag.hasButton = true
	e.drag.button = ev.Button
	e.drag.startOffset = m.offset

	if e.drag.object == nil && ev.Button == MouseButtonLeft {
		if pt := m.ActiveLayer().hitTest(pos, m.offset); pt != nil {
			e.drag.object = pt
			e.drag.placing = false
		}
	}
	if e.drag.object != nil {
		e.drag.dragStart = dragOrigin(e.drag.object, m.offset)
	}
}

// dragOrigin is the drag start for which a zero-length move leaves pt
// where it is.
func dragOrigin(pt *PlacedTexture, offset Vector2) Vector2 {
	return pt.position.Add(offset).Sub(pt.texture.pixelCenterCorrection())
}

// PointerMove moves the held texture or pans the map, depending on the
// gesture in progress.
func (e *Editor) PointerMove(ev PointerEvent) {
	m := e.active
	if m == nil || !e.drag.hasOrigin {
		return
	}
	pos := e.MouseToScene(ev.X, ev.Y)
	delta := pos.Sub(e.drag.mouseDown)

	switch {
	case e.drag.object != nil:
		obj := e.drag.object
		p := e.drag.dragStart.Add(delta).Round()
		n := p.Sub(m.offset).Add(obj.texture.pixelCenterCorrection())
		if n.Equals(obj.position) {
			return
		}
		obj.SetPosition(n)
		m.changed()
	case e.drag.hasButton && e.drag.button == MouseButtonMiddle:
		m.SetOffset(e.drag.startOffset.Add(delta))
	default:
		return
	}
	e.Render()
}

// PointerUp ends any gesture, wherever the pointer is released.
func (e *Editor) PointerUp(PointerEvent) {
	e.drag = dragState{}
	e.setSelectedTexture(-1)
}

// Wheel zooms the active map by a fixed fraction of the current zoom,
// clamped to the configured limits. Only the sign of DeltaY matters; a zero
// delta leaves the zoom unchanged but still redraws.
func (e *Editor) Wheel(ev WheelEvent) {
	m := e.active
	if m == nil {
		return
	}
	z := m.renderer.zoom
	d := e.cfg.Zoom.Sensitivity * -z * sign(ev.DeltaY) / 100
	z = clamp(z+d, e.cfg.Zoom.Min/100, e.cfg.Zoom.Max/100)
	m.renderer.SetZoom(z)
	e.Render()
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
