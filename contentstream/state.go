/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import (
	"github.com/jackburrus/ripdoc/internal/transform"
	"github.com/jackburrus/ripdoc/model"
)

// GraphicsState is the live graphics state: the CTM, line parameters, and
// stroking/non-stroking colorspace and color. `q` pushes a copy onto a
// stack; `Q` restores the most recent one.
type GraphicsState struct {
	CTM transform.Matrix

	LineWidth  float64
	LineCap    int
	LineJoin   int
	MiterLimit float64
	DashArray  []float64
	DashPhase  float64

	StrokingColorspace    *model.Colorspace
	NonStrokingColorspace *model.Colorspace
	StrokingColor         *model.Color
	NonStrokingColor      *model.Color
}

// NewGraphicsState returns the state the interpreter starts a page (or a
// Form XObject body) in: identity CTM, 1pt lines, absent colors.
func NewGraphicsState() GraphicsState {
	return GraphicsState{
		CTM:              transform.IdentityMatrix(),
		LineWidth:        1.0,
		MiterLimit:       10.0,
		StrokingColor:    model.NoColor,
		NonStrokingColor: model.NoColor,
	}
}

// Clone returns a deep-enough copy of gs for `q`: the DashArray slice is
// copied so that a nested `d` operator cannot mutate the saved state.
func (gs GraphicsState) Clone() GraphicsState {
	if gs.DashArray != nil {
		gs.DashArray = append([]float64{}, gs.DashArray...)
	}
	return gs
}

// GraphicsStateStack is the value stack `q`/`Q` operate. `Q` on an empty
// stack is a no-op, not an underflow error: ill-formed streams occur in the
// wild and the interpreter must degrade gracefully rather than abort the
// page.
type GraphicsStateStack []GraphicsState

// Push appends gs to the stack.
func (s *GraphicsStateStack) Push(gs GraphicsState) { *s = append(*s, gs) }

// Pop removes and returns the top of the stack, or ok=false if empty.
func (s *GraphicsStateStack) Pop() (GraphicsState, bool) {
	if len(*s) == 0 {
		return GraphicsState{}, false
	}
	gs := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return gs, true
}

// TextState holds the text-positioning and text-showing parameters that
// persist across BT/ET pairs, except Tm/Tlm which BT resets to identity.
// Tm/Tlm are only meaningful while a text object is open.
type TextState struct {
	FontName      string
	FontSize      float64
	CharSpacing   float64
	WordSpacing   float64
	HorizScaling  float64 // percent, 100 = unscaled
	Leading       float64
	Rise          float64
	RenderMode    int

	Tm  transform.Matrix
	Tlm transform.Matrix
}

// NewTextState returns the initial text state: 100% horizontal scaling,
// identity Tm/Tlm, everything else zeroed. BT resets only Tm/Tlm.
func NewTextState() TextState {
	return TextState{
		HorizScaling: 100,
		Tm:           transform.IdentityMatrix(),
		Tlm:          transform.IdentityMatrix(),
	}
}
