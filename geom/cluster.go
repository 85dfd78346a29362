/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package geom

import "sort"

// Cluster1D groups values into runs where each consecutive pair (in sorted
// order) differs by no more than tolerance. A tolerance of 0 never merges
// distinct values. Returned clusters are sorted ascending by mean; indices
// within each cluster refer to the original, unsorted values slice.
func Cluster1D(values []float64, tolerance float64) [][]int {
	if len(values) == 0 {
		return nil
	}
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return values[order[i]] < values[order[j]] })

	var clusters [][]int
	current := []int{order[0]}
	for _, idx := range order[1:] {
		last := current[len(current)-1]
		if values[idx]-values[last] <= tolerance {
			current = append(current, idx)
		} else {
			clusters = append(clusters, current)
			current = []int{idx}
		}
	}
	clusters = append(clusters, current)
	return clusters
}

// ClusterMean returns the mean of values at the given indices.
func ClusterMean(values []float64, indices []int) float64 {
	var sum float64
	for _, i := range indices {
		sum += values[i]
	}
	return sum / float64(len(indices))
}

// DedupeSorted1D returns the sorted, tolerance-deduplicated members of
// values: sort ascending, then drop every value that is within tolerance of
// the last value kept.
func DedupeSorted1D(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	out := []float64{sorted[0]}
	for _, v := range sorted[1:] {
		if v-out[len(out)-1] > tolerance {
			out = append(out, v)
		}
	}
	return out
}

// NearestIndex returns the index into sorted (ascending) whose value is
// within tolerance of target, preferring the closest match, or -1 if none
// qualifies. Used to test "does this coordinate already appear in the
// intersection set" without an O(n) tolerance-aware map.
func NearestIndex(sorted []float64, target, tolerance float64) int {
	best := -1
	bestDist := tolerance
	i := sort.SearchFloat64s(sorted, target-tolerance)
	for ; i < len(sorted) && sorted[i] <= target+tolerance; i++ {
		d := sorted[i] - target
		if d < 0 {
			d = -d
		}
		if d <= bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
