/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import (
	"github.com/jackburrus/ripdoc/geom"
	"github.com/jackburrus/ripdoc/internal/transform"
	"github.com/jackburrus/ripdoc/model"
)

// Char is one positioned, decoded glyph, emitted in top-left page
// coordinates with its full text rendering matrix retained for callers that
// need more than the bounding box.
type Char struct {
	Text             string
	FontName         string
	Size             float64
	BBox             geom.BBox
	DocTop           float64
	Matrix           transform.Matrix
	Upright          bool
	StrokingColor    *model.Color
	NonStrokingColor *model.Color
	AdvanceWidth     float64
	RenderMode       int
}

// Line is a stroked path segment in top-left page coordinates.
type Line struct {
	BBox          geom.BBox
	Width         float64
	StrokingColor *model.Color
}

// Rect is an axis-aligned rectangle subpath, emitted as a single primitive
// rather than decomposed into four Lines.
type Rect struct {
	BBox             geom.BBox
	Width            float64
	StrokingColor    *model.Color
	NonStrokingColor *model.Color
}

// Curve is a cubic Bézier segment; its four control points are retained in
// top-left page coordinates since a curve's bounding box alone discards the
// shape a consumer may want.
type Curve struct {
	P0, P1, P2, P3   transform.Point
	BBox             geom.BBox
	Width            float64
	StrokingColor    *model.Color
	NonStrokingColor *model.Color
}

func curveBBox(p0, p1, p2, p3 transform.Point) geom.BBox {
	minX, maxX := p0.X, p0.X
	minY, maxY := p0.Y, p0.Y
	for _, p := range [...]transform.Point{p1, p2, p3} {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return geom.NewBBox(minX, minY, maxX, maxY)
}
