// Package core provides fundamental types and utilities shared by the economy
// core and the presentation layers. It contains no external dependencies
// (especially no Bubble Tea) to keep simulation logic pure and testable.
package core

import "fmt"

// Vec is a position in the entity field. X grows right, Y grows down.
type Vec struct {
	X, Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// String returns a string representation of the vector.
func (v Vec) String() string {
	return fmt.Sprintf("(%.1f,%.1f)", v.X, v.Y)
}

// ClampF restricts val to [min, max]. Spawn jitter uses it to keep
// positions inside the unit square.
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
