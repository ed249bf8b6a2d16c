package mapedit

// Viewport describes how a map is shown on the canvas: the canvas rectangle
// in client coordinates and the effective scale.
type Viewport struct {
	Bounds     Rect
	Zoom       float64
	PixelRatio float64
}

// scale is the number of client pixels per scene unit.
func (v Viewport) scale() float64 {
	return v.Zoom * v.PixelRatio
}

// ScreenToScene converts client coordinates to scene coordinates. The
// scene origin is the canvas center and scene Y points up.
func (v Viewport) ScreenToScene(clientX, clientY float64) Vector2 {
	z := v.scale()
	return Vector2{
		X: (clientX - v.Bounds.X - v.Bounds.Width/2) / z,
		Y: -(clientY - v.Bounds.Y - v.Bounds.Height/2) / z,
	}
}

// SceneToScreen is the inverse of ScreenToScene.
func (v Viewport) SceneToScreen(p Vector2) (clientX, clientY float64) {
	m := viewMatrix(v.Bounds.X, v.Bounds.Y, v.Bounds.Width, v.Bounds.Height, v.scale())
	return transformPoint(m, p.X, p.Y)
}
