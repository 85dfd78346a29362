/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package table implements the geometric table detector of the
// specification's §4.7/§4.8: edges are collected per axis, filtered and
// snapped, merged into maximal collinear runs, intersected to recover
// grid-line crossings, and the crossings are turned into cells and grouped
// into tables by connectivity. Everything here is a pure function over a
// page's primitives and word list; no state is retained between calls.
package table

// Strategy selects how one axis's edges are produced.
type Strategy string

const (
	// StrategyLines takes all Line primitives of the axis's orientation
	// plus the decomposed sides of every Rect.
	StrategyLines Strategy = "lines"
	// StrategyLinesStrict is the same edge source as StrategyLines, but the
	// merge pass (stage 3) requires collinear runs to be unbroken: only
	// overlapping or touching spans merge, and no gap is bridged.
	StrategyLinesStrict Strategy = "lines_strict"
	// StrategyText infers edges from clustered word positions.
	StrategyText Strategy = "text"
	// StrategyExplicit converts caller-supplied coordinate lists into
	// full-page edges.
	StrategyExplicit Strategy = "explicit"
)

// Settings is the table-detection configuration block of spec §6. Any
// zero-valued tolerance/count field is filled from the shared defaults by
// normalized(); callers only need to set the fields they want to override.
type Settings struct {
	VerticalStrategy   Strategy
	HorizontalStrategy Strategy

	SnapTolerance  float64
	SnapXTolerance float64
	SnapYTolerance float64

	JoinTolerance  float64
	JoinXTolerance float64
	JoinYTolerance float64

	EdgeMinLength float64

	MinWordsVertical   int
	MinWordsHorizontal int

	IntersectionTolerance  float64
	IntersectionXTolerance float64
	IntersectionYTolerance float64

	TextTolerance  float64
	TextXTolerance float64
	TextYTolerance float64

	ExplicitVerticalLines   []float64
	ExplicitHorizontalLines []float64

	// DetectMergedCells runs the optional stage-8 post-pass that widens a
	// cell's span across a missing interior edge (spec §4.8, scenario 6).
	// A zero-value Settings{} leaves this off, matching the "zero value is
	// meaningful" convention the rest of this struct follows; DefaultSettings
	// turns it on.
	DetectMergedCells bool
}

// DefaultSettings returns the spec §6 defaults: lines strategy on both
// axes, 3.0pt snap/join/intersection tolerance, 3.0pt minimum edge length,
// a 3-word minimum for vertical text-clusters and 1-word minimum for
// horizontal ones, merged-cell detection on.
func DefaultSettings() Settings {
	return Settings{
		VerticalStrategy:        StrategyLines,
		HorizontalStrategy:      StrategyLines,
		SnapTolerance:           3.0,
		JoinTolerance:           3.0,
		EdgeMinLength:           3.0,
		MinWordsVertical:        3,
		MinWordsHorizontal:      1,
		IntersectionTolerance:   3.0,
		TextTolerance:           3.0,
		DetectMergedCells:       true,
	}
}

func firstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func firstPositiveInt(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

// normalized fills every per-axis override that was left at zero from the
// shared tolerance for its family, and any family left wholly at zero from
// DefaultSettings.
func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.VerticalStrategy == "" {
		s.VerticalStrategy = d.VerticalStrategy
	}
	if s.HorizontalStrategy == "" {
		s.HorizontalStrategy = d.HorizontalStrategy
	}

	s.SnapTolerance = firstPositive(s.SnapTolerance, d.SnapTolerance)
	s.SnapXTolerance = firstPositive(s.SnapXTolerance, s.SnapTolerance)
	s.SnapYTolerance = firstPositive(s.SnapYTolerance, s.SnapTolerance)

	s.JoinTolerance = firstPositive(s.JoinTolerance, d.JoinTolerance)
	s.JoinXTolerance = firstPositive(s.JoinXTolerance, s.JoinTolerance)
	s.JoinYTolerance = firstPositive(s.JoinYTolerance, s.JoinTolerance)

	s.EdgeMinLength = firstPositive(s.EdgeMinLength, d.EdgeMinLength)

	s.MinWordsVertical = firstPositiveInt(s.MinWordsVertical, d.MinWordsVertical)
	s.MinWordsHorizontal = firstPositiveInt(s.MinWordsHorizontal, d.MinWordsHorizontal)

	s.IntersectionTolerance = firstPositive(s.IntersectionTolerance, d.IntersectionTolerance)
	s.IntersectionXTolerance = firstPositive(s.IntersectionXTolerance, s.IntersectionTolerance)
	s.IntersectionYTolerance = firstPositive(s.IntersectionYTolerance, s.IntersectionTolerance)

	s.TextTolerance = firstPositive(s.TextTolerance, d.TextTolerance)
	s.TextXTolerance = firstPositive(s.TextXTolerance, s.TextTolerance)
	s.TextYTolerance = firstPositive(s.TextYTolerance, s.TextTolerance)

	return s
}
