package mapedit

import "math"

// Vector2 is a 2D vector used for scene positions, offsets and sizes.
//
// The arithmetic methods return new values. SetX and SetY mutate in place,
// so a Vector2 stored in a struct field can be adjusted one axis at a time.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Mul returns the component-wise product of v and o.
func (v Vector2) Mul(o Vector2) Vector2 {
	return Vector2{v.X * o.X, v.Y * o.Y}
}

// Scale returns v scaled by s on both axes.
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Neg returns -v.
func (v Vector2) Neg() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// Round rounds both components half-up, so 2.5 becomes 3 and -2.5 becomes -2.
func (v Vector2) Round() Vector2 {
	return Vector2{roundHalfUp(v.X), roundHalfUp(v.Y)}
}

// Equals reports exact component equality.
func (v Vector2) Equals(o Vector2) bool {
	return v.X == o.X && v.Y == o.Y
}

// Clone returns a copy of v.
func (v Vector2) Clone() Vector2 {
	return v
}

// SetX sets the X component in place.
func (v *Vector2) SetX(x float64) {
	v.X = x
}

// SetY sets the Y component in place.
func (v *Vector2) SetY(y float64) {
	v.Y = y
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
