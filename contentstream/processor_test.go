/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import (
	"testing"

	"github.com/jackburrus/ripdoc/core"
	"github.com/jackburrus/ripdoc/internal/transform"
	"github.com/jackburrus/ripdoc/model"
	"github.com/stretchr/testify/require"
)

// stubResolver always returns the same pre-built FontInfo, regardless of
// the in-page name or resources it is asked to resolve.
type stubResolver struct{ fi *model.FontInfo }

func (s stubResolver) ResolveFont(_ *model.Resources, _ string) *model.FontInfo { return s.fi }

func helveticaLike(t *testing.T) *model.FontInfo {
	t.Helper()
	dict := core.MakeDict()
	dict.Set("Subtype", core.MakeName("Type1"))
	dict.Set("BaseFont", core.MakeName("Helvetica"))
	dict.Set("FirstChar", core.MakeInteger(32))
	widths := make([]float64, 95)
	for i := range widths {
		widths[i] = 500
	}
	dict.Set("Widths", core.MakeArrayFromFloats(widths))

	fi, err := model.NewFontInfoFromDict("F1", dict, nil)
	require.NoError(t, err)
	return fi
}

// TestBasicText checks that "Hi" shown at 12pt, 72pt down from a 792pt-tall
// page, decodes into two characters with the expected top offset and width.
func TestBasicText(t *testing.T) {
	fi := helveticaLike(t)
	ops, err := Tokenize([]byte(`BT /F1 12 Tf 72 720 Td (Hi) Tj ET`))
	require.NoError(t, err)

	p := NewProcessor(nil, stubResolver{fi}, nil, 792, 0)
	require.NoError(t, p.Run(ops))

	require.Len(t, p.Chars, 2)
	require.Equal(t, "H", p.Chars[0].Text)
	require.Equal(t, "i", p.Chars[1].Text)
	require.InDelta(t, 60, p.Chars[0].BBox.Top, 1e-6)
	require.InDelta(t, 6, p.Chars[0].BBox.X1-p.Chars[0].BBox.X0, 1e-6)
	require.InDelta(t, p.Chars[0].BBox.Top, p.Chars[0].DocTop, 1e-9)
}

// TestKerningInTJ checks that a TJ array's numeric kerning adjustment
// produces the expected horizontal displacement between glyphs.
func TestKerningInTJ(t *testing.T) {
	fi := helveticaLike(t)
	ops, err := Tokenize([]byte(`BT /F1 10 Tf 0 792 Td [(A) -120 (V)] TJ ET`))
	require.NoError(t, err)

	p := NewProcessor(nil, stubResolver{fi}, nil, 792, 0)
	require.NoError(t, p.Run(ops))

	require.Len(t, p.Chars, 2)
	want := 500.0/1000*10 + 120.0/1000*10
	require.InDelta(t, want, p.Chars[1].BBox.X0-p.Chars[0].BBox.X0, 1e-6)
}

// TestQQBalance exercises the graphics-stack discipline: Q on an empty
// stack is a no-op, not an underflow.
func TestQQBalance(t *testing.T) {
	ops, err := Tokenize([]byte(`q 1 0 0 1 5 5 cm Q Q`))
	require.NoError(t, err)
	p := NewProcessor(nil, stubResolver{}, nil, 792, 0)
	require.NoError(t, p.Run(ops))
	require.Equal(t, transform.IdentityMatrix(), p.gs.CTM)
}

// TestRectEmitsSinglePrimitive checks that a rectangle subpath painted with
// both fill and stroke emits exactly one Rect, not four Lines.
func TestRectEmitsSinglePrimitive(t *testing.T) {
	ops, err := Tokenize([]byte(`0 0 100 50 re B`))
	require.NoError(t, err)
	p := NewProcessor(nil, stubResolver{}, nil, 792, 0)
	require.NoError(t, p.Run(ops))
	require.Len(t, p.Rects, 1)
	require.Empty(t, p.Lines)
}

// passthroughDecoder returns a stream's Raw bytes unchanged, standing in for
// a real filter chain in tests that only care about recursion control flow.
type passthroughDecoder struct{}

func (passthroughDecoder) Decode(s *core.PdfObjectStream) ([]byte, error) { return s.Raw, nil }

// TestFormXObjectRecursionCap ensures a Form XObject that invokes itself
// cannot recurse past maxFormDepth.
func TestFormXObjectRecursionCap(t *testing.T) {
	xobjDict := core.MakeDict()
	formStream := &core.PdfObjectStream{Raw: []byte(`/Cycle Do`)}
	formStream.Set("Subtype", core.MakeName("Form"))
	xobjDict.Set("Cycle", formStream)

	resourceDict := core.MakeDict()
	resourceDict.Set("XObject", xobjDict)

	p := NewProcessor(model.NewResources(resourceDict), stubResolver{}, passthroughDecoder{}, 792, 0)
	p.doXObject("Cycle")

	require.Equal(t, 0, p.formDepth, "formDepth must be restored after the call returns")
}
