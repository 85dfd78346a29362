/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRectEdgesUnionBBoxMatchesRect(t *testing.T) {
	b := NewBBox(10, 20, 110, 220)
	edges := RectEdges(b, 1)
	require.Len(t, edges, 4)

	boxes := make([]BBox, len(edges))
	for i, e := range edges {
		boxes[i] = e.BBox()
	}
	require.Equal(t, b, UnionAll(boxes))

	require.Equal(t, Horizontal, edges[0].Orientation)
	require.Equal(t, Horizontal, edges[1].Orientation)
	require.Equal(t, Vertical, edges[2].Orientation)
	require.Equal(t, Vertical, edges[3].Orientation)
}
