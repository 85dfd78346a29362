/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsNormalizedFillsDefaults(t *testing.T) {
	s := Settings{}.normalized()
	require.Equal(t, StrategyLines, s.VerticalStrategy)
	require.Equal(t, StrategyLines, s.HorizontalStrategy)
	require.Equal(t, 3.0, s.SnapXTolerance)
	require.Equal(t, 3.0, s.SnapYTolerance)
	require.Equal(t, 3.0, s.JoinXTolerance)
	require.Equal(t, 3.0, s.IntersectionXTolerance)
	require.Equal(t, 3, s.MinWordsVertical)
	require.Equal(t, 1, s.MinWordsHorizontal)
}

func TestSettingsNormalizedPreservesPerAxisOverride(t *testing.T) {
	s := Settings{SnapTolerance: 5, SnapXTolerance: 9}.normalized()
	require.Equal(t, 9.0, s.SnapXTolerance)
	require.Equal(t, 5.0, s.SnapYTolerance)
}

func TestSettingsNormalizedIsIdempotent(t *testing.T) {
	once := Settings{SnapTolerance: 2}.normalized()
	twice := once.normalized()
	require.Equal(t, once, twice)
}
