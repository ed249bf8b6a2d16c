package mapedit

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewAnim holds the active reset-view tweens of one map.
type viewAnim struct {
	m       *Map
	offsetX *gween.Tween
	offsetY *gween.Tween
	zoom    *gween.Tween
	doneX   bool
	doneY   bool
	doneZ   bool
}

// ResetView animates the active map back to offset (0, 0) at zoom 1 over
// duration seconds using easeFn. Pass duration 0 to snap immediately.
func (e *Editor) ResetView(duration float32, easeFn ease.TweenFunc) {
	m := e.active
	if m == nil {
		return
	}
	if duration <= 0 {
		e.view = nil
		m.SetOffset(Vector2{})
		m.renderer.SetZoom(1)
		e.Render()
		return
	}
	e.view = &viewAnim{
		m:       m,
		offsetX: gween.New(float32(m.offset.X), 0, duration, easeFn),
		offsetY: gween.New(float32(m.offset.Y), 0, duration, easeFn),
		zoom:    gween.New(float32(m.renderer.zoom), 1, duration, easeFn),
	}
}

// Animating reports whether a view reset is in progress.
func (e *Editor) Animating() bool { return e.view != nil }

// updateView advances the reset-view tweens by dt seconds.
func (e *Editor) updateView(dt float32) {
	a := e.view
	if a == nil {
		return
	}
	off := a.m.offset
	zoom := a.m.renderer.zoom
	if !a.doneX {
		v, done := a.offsetX.Update(dt)
		off.SetX(float64(v))
		a.doneX = done
	}
	if !a.doneY {
		v, done := a.offsetY.Update(dt)
		off.SetY(float64(v))
		a.doneY = done
	}
	if !a.doneZ {
		v, done := a.zoom.Update(dt)
		zoom = float64(v)
		a.doneZ = done
	}
	if a.doneX && a.doneY && a.doneZ {
		// Land exactly on the target despite float32 tween precision.
		off = Vector2{}
		zoom = 1
		e.view = nil
	}
	a.m.SetOffset(off)
	a.m.renderer.SetZoom(zoom)
	if a.m == e.active {
		e.Render()
	}
}
