/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transform

import "fmt"

// Point is a Cartesian point (X, Y).
type Point struct {
	X float64
	Y float64
}

// NewPoint returns a Point at (x, y).
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Transform returns p transformed by m.
func (p Point) Transform(m Matrix) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Displace returns p + delta.
func (p Point) Displace(delta Point) Point {
	return Point{p.X + delta.X, p.Y + delta.Y}
}

// String returns a description of p.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}
