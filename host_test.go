package mapedit

import (
	"path/filepath"
	"testing"
)

func newHostEditor(t *testing.T) (*Host, *Editor, *Map) {
	t.Helper()
	bounds := Rect{X: 100, Y: 0, Width: 800, Height: 600}
	e, err := NewEditor(&fakeCanvas{bounds: bounds}, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	m := NewMap(NewLoadedProject(testTextures(), 1), "Level1", filepath.Join(t.TempDir(), "Level1.json"))
	m.Open(t.Context(), e)
	return &Host{bounds: bounds}, e, m
}

func TestHostPlaceAndDrag(t *testing.T) {
	h, e, m := newHostEditor(t)
	e.SelectTexture(0)

	h.dispatch(e, 50, 50, false, MouseButtonLeft)
	if m.ActiveLayer().Len() != 0 {
		t.Fatal("outside the canvas nothing should be placed")
	}
	h.dispatch(e, 500, 300, false, MouseButtonLeft)
	if m.ActiveLayer().Len() != 1 {
		t.Fatal("entering the canvas should place the selection")
	}
	pt := m.ActiveLayer().Textures()[0]
	assertVec(t, "placed", pt.Position(), Vec(0, 0))

	h.dispatch(e, 500, 300, true, MouseButtonLeft)
	h.dispatch(e, 510, 300, true, MouseButtonLeft)
	assertVec(t, "dragged", pt.Position(), Vec(10, 0))

	// Releasing outside still ends the gesture.
	h.dispatch(e, 2000, 2000, false, MouseButtonLeft)
	if e.GestureState() != GestureIdle {
		t.Errorf("state = %v, want idle", e.GestureState())
	}
	h.dispatch(e, 520, 300, false, MouseButtonLeft)
	assertVec(t, "after release", pt.Position(), Vec(10, 0))
	if m.ActiveLayer().Len() != 1 {
		t.Error("re-entering without a selection should not place")
	}
}

func TestHostPressOutsideIgnored(t *testing.T) {
	h, e, m := newHostEditor(t)
	h.dispatch(e, 50, 50, true, MouseButtonMiddle)
	h.dispatch(e, 500, 300, true, MouseButtonMiddle)
	h.dispatch(e, 520, 300, true, MouseButtonMiddle)
	assertVec(t, "offset", m.Offset(), Vec(0, 0))
	if e.GestureState() != GestureIdle {
		t.Errorf("state = %v, want idle", e.GestureState())
	}
}

func TestHostKeepsButtonForGesture(t *testing.T) {
	h, e, m := newHostEditor(t)
	h.dispatch(e, 500, 300, false, MouseButtonLeft)
	h.dispatch(e, 500, 300, true, MouseButtonMiddle)
	h.dispatch(e, 520, 300, true, MouseButtonLeft)
	// The gesture started as a middle-button pan and stays one.
	assertVec(t, "offset", m.Offset(), Vec(20, 0))
	if h.button != MouseButtonMiddle {
		t.Errorf("stored button = %v, want middle", h.button)
	}
}

func TestHostPixelSizeWithoutFrame(t *testing.T) {
	h := &Host{bounds: Rect{Width: 10, Height: 10}}
	if w, ht := h.PixelSize(); w != 0 || ht != 0 {
		t.Errorf("PixelSize = %d, %d", w, ht)
	}
	if h.Bounds().Width != 10 {
		t.Error("Bounds mismatch")
	}
}

func TestHostPanContinuesOutsideCanvas(t *testing.T) {
	h, e, m := newHostEditor(t)
	h.dispatch(e, 500, 300, false, MouseButtonMiddle)
	h.dispatch(e, 500, 300, true, MouseButtonMiddle)
	h.dispatch(e, 950, 300, true, MouseButtonMiddle)
	assertVec(t, "offset outside", m.Offset(), Vec(450, 0))

	h.dispatch(e, 950, 300, false, MouseButtonMiddle)
	h.dispatch(e, 990, 300, false, MouseButtonMiddle)
	assertVec(t, "offset after release", m.Offset(), Vec(450, 0))
}

func TestHostDragContinuesOutsideCanvas(t *testing.T) {
	h, e, m := newHostEditor(t)
	pt := m.ActiveLayer().AddTexture(e.ProjectTextures()[0], Vec(0, 0))
	h.dispatch(e, 500, 300, false, MouseButtonLeft)
	h.dispatch(e, 500, 300, true, MouseButtonLeft)
	h.dispatch(e, 500, 650, true, MouseButtonLeft)
	assertVec(t, "dragged outside", pt.Position(), Vec(0, -350))
}
