/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package page

import (
	"testing"

	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/jackburrus/ripdoc/geom"
	"github.com/stretchr/testify/require"
)

func fixturePage() *Page {
	return &Page{
		Number: 1,
		Width:  100,
		Height: 100,
		DocTop: 50,
		Chars: []contentstream.Char{
			charAt("A", 0, 0, 10, 10),
			charAt("B", 50, 50, 60, 60),
			charAt("C", 90, 90, 100, 100),
		},
		Rects: []contentstream.Rect{
			{BBox: geom.NewBBox(0, 0, 10, 10)},
		},
	}
}

func TestCropKeepsIntersectingPrimitives(t *testing.T) {
	p := fixturePage()
	cropped := p.Crop(geom.NewBBox(40, 40, 70, 70))
	require.Len(t, cropped.Chars, 1)
	require.Equal(t, "B", cropped.Chars[0].Text)
	require.Empty(t, cropped.Rects)
	require.Equal(t, p.Number, cropped.Number)
	require.Equal(t, p.DocTop, cropped.DocTop)
}

func TestWithinBBoxRequiresFullContainment(t *testing.T) {
	p := fixturePage()
	// This region overlaps A, B and the rect (not C) but fully contains none of them.
	region := p.WithinBBox(geom.NewBBox(5, 5, 55, 55))
	require.Empty(t, region.Chars)
	require.Empty(t, region.Rects)

	region = p.WithinBBox(geom.NewBBox(0, 0, 100, 100))
	require.Len(t, region.Chars, 3)
	require.Len(t, region.Rects, 1)
}
