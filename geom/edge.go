/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package geom

// Orientation distinguishes horizontal from vertical edges.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// Edge is an axis-aligned line segment, the table detector's unit of input:
// a Line primitive, a decomposed Rect side, or a synthesized text-cluster
// or explicit-coordinate edge. Horizontal edges have Top==Bottom, vertical
// edges have X0==X1.
type Edge struct {
	X0, Top, X1, Bottom float64
	Width               float64
	Orientation         Orientation
}

// NewHorizontalEdge returns a horizontal edge spanning [x0,x1] at y.
func NewHorizontalEdge(x0, x1, y, width float64) Edge {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return Edge{X0: x0, X1: x1, Top: y, Bottom: y, Width: width, Orientation: Horizontal}
}

// NewVerticalEdge returns a vertical edge spanning [top,bottom] at x.
func NewVerticalEdge(top, bottom, x, width float64) Edge {
	if top > bottom {
		top, bottom = bottom, top
	}
	return Edge{Top: top, Bottom: bottom, X0: x, X1: x, Width: width, Orientation: Vertical}
}

// Length returns the edge's span along its own axis.
func (e Edge) Length() float64 {
	if e.Orientation == Horizontal {
		return e.X1 - e.X0
	}
	return e.Bottom - e.Top
}

// BBox returns the edge's bounding box (zero-width/height along its own
// axis, as a degenerate rectangle).
func (e Edge) BBox() BBox {
	return BBox{X0: e.X0, Top: e.Top, X1: e.X1, Bottom: e.Bottom}
}

// RectEdges decomposes an axis-aligned rectangle into its four sides: two
// horizontals (top and bottom) and two verticals (left and right). The
// interpreter emits a rectangle subpath as a single Rect primitive, not
// four Lines, so this decomposition is the table detector's own
// responsibility wherever an edge-finding strategy needs rectangle sides.
func RectEdges(b BBox, width float64) [4]Edge {
	return [4]Edge{
		NewHorizontalEdge(b.X0, b.X1, b.Top, width),
		NewHorizontalEdge(b.X0, b.X1, b.Bottom, width),
		NewVerticalEdge(b.Top, b.Bottom, b.X0, width),
		NewVerticalEdge(b.Top, b.Bottom, b.X1, width),
	}
}
