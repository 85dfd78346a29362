/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package geom implements the geometry kernel shared by page assembly and
// table detection: axis-aligned bounding boxes, edge primitives, and 1-D
// tolerance clustering, all in a top-left coordinate convention (origin
// top-left, y increases downward, x0 <= x1, top <= bottom). Matrix/point
// algebra lives in internal/transform; this package is everything
// downstream of a transformed coordinate.
package geom

import "math"

// BBox is an axis-aligned bounding box in top-left page coordinates.
type BBox struct {
	X0, Top, X1, Bottom float64
}

// NewBBox returns the BBox spanning the two corners, normalizing so that
// X0 <= X1 and Top <= Bottom regardless of argument order.
func NewBBox(x0, top, x1, bottom float64) BBox {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if top > bottom {
		top, bottom = bottom, top
	}
	return BBox{X0: x0, Top: top, X1: x1, Bottom: bottom}
}

// Width returns x1 - x0.
func (b BBox) Width() float64 { return b.X1 - b.X0 }

// Height returns bottom - top.
func (b BBox) Height() float64 { return b.Bottom - b.Top }

// Valid reports whether b satisfies the ordering every emitted primitive
// must hold: x0 <= x1 and top <= bottom.
func (b BBox) Valid() bool { return b.X0 <= b.X1 && b.Top <= b.Bottom }

// Union returns the smallest BBox containing both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0:     math.Min(b.X0, other.X0),
		Top:    math.Min(b.Top, other.Top),
		X1:     math.Max(b.X1, other.X1),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// UnionAll returns the union of boxes, or the zero BBox if boxes is empty.
func UnionAll(boxes []BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out
}

// Intersects reports whether b and other overlap (touching at an edge
// counts as overlap, since callers use this for "primitive touches the crop
// region" semantics).
func (b BBox) Intersects(other BBox) bool {
	return b.X0 <= other.X1 && b.X1 >= other.X0 && b.Top <= other.Bottom && b.Bottom >= other.Top
}

// Intersection returns the overlapping region of b and other, and whether
// one exists.
func (b BBox) Intersection(other BBox) (BBox, bool) {
	if !b.Intersects(other) {
		return BBox{}, false
	}
	return BBox{
		X0:     math.Max(b.X0, other.X0),
		Top:    math.Max(b.Top, other.Top),
		X1:     math.Min(b.X1, other.X1),
		Bottom: math.Min(b.Bottom, other.Bottom),
	}, true
}

// Contains reports whether other lies fully within b.
func (b BBox) Contains(other BBox) bool {
	return other.X0 >= b.X0 && other.X1 <= b.X1 && other.Top >= b.Top && other.Bottom <= b.Bottom
}

// ContainsPoint reports whether (x, y) lies within b, inclusive of edges.
func (b BBox) ContainsPoint(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Top && y <= b.Bottom
}

// Center returns the midpoint of b.
func (b BBox) Center() (float64, float64) {
	return (b.X0 + b.X1) / 2, (b.Top + b.Bottom) / 2
}

// FlipVertical converts b from a bottom-left-origin space of the given
// height into this package's top-left convention, or back again (the
// operation is its own inverse). The interpreter applies this exactly once,
// at the moment it emits a primitive.
func FlipVertical(x0, y0, x1, y1, height float64) BBox {
	return NewBBox(x0, height-y1, x1, height-y0)
}
