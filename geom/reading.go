/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package geom

import "math"

// SameLine reports whether two Top values belong to the same visual line
// within yTolerance, a jitter allowance for reading-order sorts where
// glyphs on one visual baseline rarely share an exact Top value.
func SameLine(top1, top2, yTolerance float64) bool {
	return math.Abs(top1-top2) <= yTolerance
}
