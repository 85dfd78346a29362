/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBBoxNormalizes(t *testing.T) {
	b := NewBBox(10, 20, 1, 2)
	require.True(t, b.Valid())
	require.Equal(t, 1.0, b.X0)
	require.Equal(t, 10.0, b.X1)
	require.Equal(t, 2.0, b.Top)
	require.Equal(t, 20.0, b.Bottom)
}

func TestUnion(t *testing.T) {
	a := NewBBox(0, 0, 1, 1)
	b := NewBBox(2, 2, 3, 3)
	u := a.Union(b)
	require.Equal(t, NewBBox(0, 0, 3, 3), u)
}

func TestContainsAndIntersects(t *testing.T) {
	outer := NewBBox(0, 0, 10, 10)
	inner := NewBBox(2, 2, 4, 4)
	require.True(t, outer.Contains(inner))
	require.False(t, inner.Contains(outer))
	require.True(t, outer.Intersects(inner))

	disjoint := NewBBox(20, 20, 30, 30)
	require.False(t, outer.Intersects(disjoint))
	require.False(t, outer.Contains(disjoint))
}

func TestFlipVerticalIsSelfInverse(t *testing.T) {
	height := 792.0
	flipped := FlipVertical(10, 20, 30, 40, height)
	back := FlipVertical(flipped.X0, flipped.Top, flipped.X1, flipped.Bottom, height)
	require.InDelta(t, 10, back.X0, 1e-9)
	require.InDelta(t, 20, back.Top, 1e-9)
	require.InDelta(t, 30, back.X1, 1e-9)
	require.InDelta(t, 40, back.Bottom, 1e-9)
}
