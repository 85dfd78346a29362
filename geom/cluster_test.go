/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCluster1DZeroToleranceNeverMerges(t *testing.T) {
	clusters := Cluster1D([]float64{1, 1.0001, 2}, 0)
	require.Len(t, clusters, 3)
}

func TestCluster1DGroupsWithinTolerance(t *testing.T) {
	clusters := Cluster1D([]float64{1.0, 1.2, 5.0, 5.1, 9.0}, 0.5)
	require.Len(t, clusters, 3)
	require.ElementsMatch(t, []int{0, 1}, clusters[0])
	require.ElementsMatch(t, []int{2, 3}, clusters[1])
	require.ElementsMatch(t, []int{4}, clusters[2])
}

func TestDedupeSorted1D(t *testing.T) {
	out := DedupeSorted1D([]float64{3, 1, 1.05, 10}, 0.1)
	require.Equal(t, []float64{1, 3, 10}, out)
}

func TestNearestIndex(t *testing.T) {
	sorted := []float64{1, 5, 9}
	require.Equal(t, 1, NearestIndex(sorted, 5.2, 0.5))
	require.Equal(t, -1, NearestIndex(sorted, 20, 0.5))
}
