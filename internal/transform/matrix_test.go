/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package transform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityIsNeutral(t *testing.T) {
	m := NewMatrix(2, 3, 4, 5, 6, 7)
	id := IdentityMatrix()

	got := id.Mult(m)
	require.InDelta(t, m[0], got[0], 1e-9)
	require.InDelta(t, m[6], got[6], 1e-9)

	got2 := m.Mult(id)
	require.InDelta(t, m[0], got2[0], 1e-9)
	require.InDelta(t, m[6], got2[6], 1e-9)
}

func TestTranslationComposition(t *testing.T) {
	a := TranslationMatrix(3, 4)
	b := TranslationMatrix(10, -1)
	got := a.Mult(b)
	x, y := got.Translation()
	require.InDelta(t, 13, x, 1e-9)
	require.InDelta(t, 3, y, 1e-9)
}

func TestTransformPoint(t *testing.T) {
	m := NewMatrix(2, 0, 0, 2, 5, 5)
	x, y := m.Transform(1, 1)
	require.InDelta(t, 7, x, 1e-9)
	require.InDelta(t, 7, y, 1e-9)
}

func TestUpright(t *testing.T) {
	require.True(t, IdentityMatrix().Upright(1e-6))
	rotated := NewMatrix(0, 1, -1, 0, 0, 0)
	require.False(t, rotated.Upright(1e-6))
}

func TestInverseRoundTrip(t *testing.T) {
	m := NewMatrix(2, 0.5, -0.3, 1.5, 10, -4)
	inv, ok := m.Inverse()
	require.True(t, ok)
	x, y := m.Transform(3, 4)
	xp, yp := inv.Transform(x, y)
	require.InDelta(t, 3, xp, 1e-6)
	require.InDelta(t, 4, yp, 1e-6)
}
