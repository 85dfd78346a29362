/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package contentstream

import (
	"math"

	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/core"
	"github.com/jackburrus/ripdoc/geom"
	"github.com/jackburrus/ripdoc/internal/transform"
	"github.com/jackburrus/ripdoc/model"
)

// maxFormDepth bounds Form XObject recursion. A Form cycle is pathological
// but possible in malformed input; past this depth a Do is silently skipped
// rather than recursing further.
const maxFormDepth = 16

// FontResolver resolves an in-page font resource name to a FontInfo, given
// the resource dictionary it should be looked up in. Implementations
// typically cache by the resolved font dictionary so repeat Tf calls for the
// same font do not re-parse it; see document.Document's font cache.
type FontResolver interface {
	ResolveFont(resources *model.Resources, name string) *model.FontInfo
}

// Processor is the content-stream interpreter: a stack machine that walks
// a sequence of operations, maintaining graphics and text state, and emits
// the four primitive vectors in top-left page coordinates.
type Processor struct {
	gs      GraphicsState
	gsStack GraphicsStateStack
	ts      TextState
	inText  bool

	path         []pathSegment
	rawCurrent   transform.Point
	rawSubStart  transform.Point

	resources *model.Resources
	fonts     FontResolver
	decoder   model.StreamDecoder

	pageHeight    float64
	docTopOffset  float64
	formDepth     int

	Chars  []Char
	Lines  []Line
	Rects  []Rect
	Curves []Curve
}

type pathOp byte

const (
	opMove pathOp = iota
	opLine
	opCurve
	opClose
	opRect
)

type pathSegment struct {
	op  pathOp
	pts [3]transform.Point
}

// NewProcessor returns a Processor ready to interpret one page's (or Form
// XObject's) content stream. pageHeight is the page's height (for the
// native-to-top-left flip) and docTopOffset is the cumulative height of
// prior pages (for Char.DocTop).
func NewProcessor(resources *model.Resources, fonts FontResolver, decoder model.StreamDecoder, pageHeight, docTopOffset float64) *Processor {
	return &Processor{
		gs:           NewGraphicsState(),
		ts:           NewTextState(),
		resources:    resources,
		fonts:        fonts,
		decoder:      decoder,
		pageHeight:   pageHeight,
		docTopOffset: docTopOffset,
	}
}

// Run interprets ops against the processor's live state, appending to
// Chars/Lines/Rects/Curves. Unknown operators are skipped without error.
func (p *Processor) Run(ops []Operation) error {
	for _, op := range ops {
		p.execute(op)
	}
	return nil
}

func (p *Processor) execute(op Operation) {
	switch op.Operator {
	case "q":
		p.gsStack.Push(p.gs.Clone())
	case "Q":
		if gs, ok := p.gsStack.Pop(); ok {
			p.gs = gs
		}
	case "cm":
		if m, ok := matrixOperand(op.Operands); ok {
			p.gs.CTM.Concat(m)
		}
	case "w":
		if v, ok := float(op.Operands, 0); ok {
			p.gs.LineWidth = v
		}
	case "J":
		if v, ok := intOperand(op.Operands, 0); ok {
			p.gs.LineCap = v
		}
	case "j":
		if v, ok := intOperand(op.Operands, 0); ok {
			p.gs.LineJoin = v
		}
	case "M":
		if v, ok := float(op.Operands, 0); ok {
			p.gs.MiterLimit = v
		}
	case "d":
		if len(op.Operands) == 2 {
			if arr, ok := core.GetArray(op.Operands[0]); ok {
				vals, _ := arr.ToFloat64Array(core.Resolve)
				p.gs.DashArray = vals
			}
			if v, ok := floatVal(op.Operands[1]); ok {
				p.gs.DashPhase = v
			}
		}
	case "gs":
		p.applyExtGState(op.Operands)

	case "CS":
		if n, ok := nameOperand(op.Operands, 0); ok {
			p.gs.StrokingColorspace = model.ResolveColorspace(n, p.colorSpaceDict())
		}
	case "cs":
		if n, ok := nameOperand(op.Operands, 0); ok {
			p.gs.NonStrokingColorspace = model.ResolveColorspace(n, p.colorSpaceDict())
		}
	case "SC", "SCN":
		vals := numericOperands(op.Operands)
		p.gs.StrokingColor = model.ColorFromComponents(p.gs.StrokingColorspace, vals)
	case "sc", "scn":
		vals := numericOperands(op.Operands)
		p.gs.NonStrokingColor = model.ColorFromComponents(p.gs.NonStrokingColorspace, vals)
	case "G":
		if v, ok := float(op.Operands, 0); ok {
			p.gs.StrokingColorspace = model.ResolveColorspace("DeviceGray", nil)
			p.gs.StrokingColor = model.NewGrayColor(v)
		}
	case "g":
		if v, ok := float(op.Operands, 0); ok {
			p.gs.NonStrokingColorspace = model.ResolveColorspace("DeviceGray", nil)
			p.gs.NonStrokingColor = model.NewGrayColor(v)
		}
	case "RG":
		if vals := numericOperands(op.Operands); len(vals) == 3 {
			p.gs.StrokingColorspace = model.ResolveColorspace("DeviceRGB", nil)
			p.gs.StrokingColor = model.NewRGBColor(vals[0], vals[1], vals[2])
		}
	case "rg":
		if vals := numericOperands(op.Operands); len(vals) == 3 {
			p.gs.NonStrokingColorspace = model.ResolveColorspace("DeviceRGB", nil)
			p.gs.NonStrokingColor = model.NewRGBColor(vals[0], vals[1], vals[2])
		}
	case "K":
		if vals := numericOperands(op.Operands); len(vals) == 4 {
			p.gs.StrokingColorspace = model.ResolveColorspace("DeviceCMYK", nil)
			p.gs.StrokingColor = model.NewCMYKColor(vals[0], vals[1], vals[2], vals[3])
		}
	case "k":
		if vals := numericOperands(op.Operands); len(vals) == 4 {
			p.gs.NonStrokingColorspace = model.ResolveColorspace("DeviceCMYK", nil)
			p.gs.NonStrokingColor = model.NewCMYKColor(vals[0], vals[1], vals[2], vals[3])
		}

	case "BT":
		p.inText = true
		p.ts.Tm = transform.IdentityMatrix()
		p.ts.Tlm = transform.IdentityMatrix()
	case "ET":
		p.inText = false
	case "Tf":
		if n, ok := nameOperand(op.Operands, 0); ok {
			p.ts.FontName = n
		}
		if v, ok := float(op.Operands, 1); ok {
			p.ts.FontSize = v
		}
	case "Tc":
		if v, ok := float(op.Operands, 0); ok {
			p.ts.CharSpacing = v
		}
	case "Tw":
		if v, ok := float(op.Operands, 0); ok {
			p.ts.WordSpacing = v
		}
	case "Tz":
		if v, ok := float(op.Operands, 0); ok {
			p.ts.HorizScaling = v
		}
	case "TL":
		if v, ok := float(op.Operands, 0); ok {
			p.ts.Leading = v
		}
	case "Tr":
		if v, ok := intOperand(op.Operands, 0); ok {
			p.ts.RenderMode = v
		}
	case "Ts":
		if v, ok := float(op.Operands, 0); ok {
			p.ts.Rise = v
		}
	case "Td":
		if tx, ok := float(op.Operands, 0); ok {
			if ty, ok := float(op.Operands, 1); ok {
				p.moveTextLine(tx, ty)
			}
		}
	case "TD":
		if tx, ok := float(op.Operands, 0); ok {
			if ty, ok := float(op.Operands, 1); ok {
				p.ts.Leading = -ty
				p.moveTextLine(tx, ty)
			}
		}
	case "Tm":
		if m, ok := matrixOperand(op.Operands); ok {
			p.ts.Tm = m
			p.ts.Tlm = m
		}
	case "T*":
		p.moveTextLine(0, -p.ts.Leading)

	case "Tj":
		if s, ok := stringOperand(op.Operands, 0); ok {
			p.showText(s)
		}
	case "TJ":
		p.showTextArray(op.Operands)
	case "'":
		p.moveTextLine(0, -p.ts.Leading)
		if s, ok := stringOperand(op.Operands, 0); ok {
			p.showText(s)
		}
	case `"`:
		if aw, ok := float(op.Operands, 0); ok {
			p.ts.WordSpacing = aw
		}
		if ac, ok := float(op.Operands, 1); ok {
			p.ts.CharSpacing = ac
		}
		p.moveTextLine(0, -p.ts.Leading)
		if s, ok := stringOperand(op.Operands, 2); ok {
			p.showText(s)
		}

	case "m":
		if x, ok := float(op.Operands, 0); ok {
			if y, ok := float(op.Operands, 1); ok {
				pt := transform.NewPoint(x, y)
				p.rawCurrent = pt
				p.rawSubStart = pt
				p.path = append(p.path, pathSegment{op: opMove, pts: [3]transform.Point{pt, {}, {}}})
			}
		}
	case "l":
		if x, ok := float(op.Operands, 0); ok {
			if y, ok := float(op.Operands, 1); ok {
				pt := transform.NewPoint(x, y)
				p.path = append(p.path, pathSegment{op: opLine, pts: [3]transform.Point{pt, {}, {}}})
				p.rawCurrent = pt
			}
		}
	case "c":
		if vals, ok := floats(op.Operands, 6); ok {
			p1, p2, p3 := transform.NewPoint(vals[0], vals[1]), transform.NewPoint(vals[2], vals[3]), transform.NewPoint(vals[4], vals[5])
			p.path = append(p.path, pathSegment{op: opCurve, pts: [3]transform.Point{p1, p2, p3}})
			p.rawCurrent = p3
		}
	case "v":
		if vals, ok := floats(op.Operands, 4); ok {
			p2, p3 := transform.NewPoint(vals[0], vals[1]), transform.NewPoint(vals[2], vals[3])
			p.path = append(p.path, pathSegment{op: opCurve, pts: [3]transform.Point{p.rawCurrent, p2, p3}})
			p.rawCurrent = p3
		}
	case "y":
		if vals, ok := floats(op.Operands, 4); ok {
			p1, p3 := transform.NewPoint(vals[0], vals[1]), transform.NewPoint(vals[2], vals[3])
			p.path = append(p.path, pathSegment{op: opCurve, pts: [3]transform.Point{p1, p3, p3}})
			p.rawCurrent = p3
		}
	case "h":
		p.path = append(p.path, pathSegment{op: opClose})
		p.rawCurrent = p.rawSubStart
	case "re":
		if vals, ok := floats(op.Operands, 4); ok {
			corner1 := transform.NewPoint(vals[0], vals[1])
			corner2 := transform.NewPoint(vals[0]+vals[2], vals[1]+vals[3])
			p.path = append(p.path, pathSegment{op: opRect, pts: [3]transform.Point{corner1, corner2, {}}})
			p.rawCurrent = corner1
			p.rawSubStart = corner1
		}

	case "S":
		p.paintPath(true, false, false)
	case "s":
		p.paintPath(true, false, true)
	case "f", "F":
		p.paintPath(false, true, false)
	case "f*":
		p.paintPath(false, true, false)
	case "B":
		p.paintPath(true, true, false)
	case "B*":
		p.paintPath(true, true, false)
	case "b":
		p.paintPath(true, true, true)
	case "b*":
		p.paintPath(true, true, true)
	case "n":
		p.path = nil

	case "Do":
		if n, ok := nameOperand(op.Operands, 0); ok {
			p.doXObject(n)
		}

	default:
		common.Log.Trace("contentstream: skipping unrecognized operator %q", op.Operator)
	}
}

func (p *Processor) colorSpaceDict() *core.PdfObjectDictionary {
	if p.resources == nil {
		return nil
	}
	return p.resources.ColorSpaceDict()
}

func (p *Processor) moveTextLine(tx, ty float64) {
	p.ts.Tlm.Concat(transform.TranslationMatrix(tx, ty))
	p.ts.Tm = p.ts.Tlm
}

func (p *Processor) applyExtGState(operands []core.PdfObject) {
	n, ok := nameOperand(operands, 0)
	if !ok || p.resources == nil {
		return
	}
	dict, ok := p.resources.ExtGStateDict(n)
	if !ok {
		return
	}
	if v, err := core.GetNumberAsFloatKey(dict, "LW"); err == nil {
		p.gs.LineWidth = v
	}
	if v, ok := core.GetIntValKey(dict, "LC"); ok {
		p.gs.LineCap = v
	}
	if v, ok := core.GetIntValKey(dict, "LJ"); ok {
		p.gs.LineJoin = v
	}
	if arr, ok := core.GetArrayVal(dict, "Font"); ok && arr.Len() == 2 {
		if n, ok := core.GetNameVal(core.Resolve(arr.Get(0))); ok {
			_ = n // only the size of a /Font entry is applied; its font reference is not resolved and the current font name is left unchanged.
		}
		if sz, err := core.GetNumberAsFloat(core.Resolve(arr.Get(1))); err == nil {
			p.ts.FontSize = sz
		}
	}
}

// showText decodes raw and emits one Char per decoded code, advancing Tm.
func (p *Processor) showText(raw []byte) {
	if len(raw) == 0 {
		return
	}
	font := p.currentFont()
	h := p.ts.HorizScaling / 100
	for _, dc := range font.Decode(raw) {
		p.emitGlyph(dc, h)
	}
}

func (p *Processor) showTextArray(operands []core.PdfObject) {
	if len(operands) != 1 {
		return
	}
	arr, ok := core.GetArray(operands[0])
	if !ok {
		return
	}
	h := p.ts.HorizScaling / 100
	font := p.currentFont()
	for _, item := range arr.Elements() {
		switch v := item.(type) {
		case *core.PdfObjectString:
			for _, dc := range font.Decode(v.Bytes()) {
				p.emitGlyph(dc, h)
			}
		case *core.PdfObjectInteger:
			p.adjustByAmount(float64(*v), h)
		case *core.PdfObjectFloat:
			p.adjustByAmount(float64(*v), h)
		}
	}
}

func (p *Processor) adjustByAmount(n, h float64) {
	tx := -(n / 1000) * p.ts.FontSize * h
	p.ts.Tm.Concat(transform.TranslationMatrix(tx, 0))
}

func (p *Processor) currentFont() *model.FontInfo {
	if p.fonts != nil {
		if fi := p.fonts.ResolveFont(p.resources, p.ts.FontName); fi != nil {
			return fi
		}
	}
	return model.DefaultFontInfo(p.ts.FontName)
}

// emitGlyph composes the text rendering matrix (Trm = FontMatrix · Tm ·
// CTM) for one decoded glyph, derives its bounding box and effective size
// from Trm, and advances Tm by the glyph's displacement.
func (p *Processor) emitGlyph(dc model.DecodedChar, h float64) {
	size := p.ts.FontSize
	fontMatrix := transform.NewMatrix(size*h, 0, 0, size, 0, p.ts.Rise)

	trm := p.gs.CTM
	trm.Concat(p.ts.Tm)
	trm.Concat(fontMatrix)

	effSize := trm.ScalingFactorY()
	w0 := dc.Width / 1000
	tx := (w0*size + p.ts.CharSpacing) * h
	if dc.Text == " " {
		tx += p.ts.WordSpacing * h
	}

	if effSize > 0 {
		x0, y0 := trm.Translation()
		x1 := x0 + w0*effSize*h
		bottom := p.pageHeight - y0
		top := bottom - effSize
		char := Char{
			Text:             dc.Text,
			FontName:         p.ts.FontName,
			Size:             effSize,
			BBox:             geom.NewBBox(x0, top, x1, bottom),
			DocTop:           top + p.docTopOffset,
			Matrix:           trm,
			Upright:          trm.Upright(1e-6),
			StrokingColor:    p.gs.StrokingColor,
			NonStrokingColor: p.gs.NonStrokingColor,
			AdvanceWidth:     w0 * effSize * h,
			RenderMode:       p.ts.RenderMode,
		}
		p.Chars = append(p.Chars, char)
	} else {
		common.Log.Debug("contentstream: dropping zero-size glyph %q", dc.Text)
	}

	p.ts.Tm.Concat(transform.TranslationMatrix(tx, 0))
}

// paintPath replays the accumulated path under the current CTM, emitting
// Lines/Rects/Curves, then clears the path buffer.
func (p *Processor) paintPath(stroke, fill, close bool) {
	defer func() { p.path = nil }()

	var curTransformed, subStartTransformed transform.Point
	haveCurrent := false

	emitLine := func(from, to transform.Point) {
		if !stroke {
			return
		}
		p.Lines = append(p.Lines, Line{
			BBox:          flippedBBox(from, to, p.pageHeight),
			Width:         p.gs.LineWidth,
			StrokingColor: p.gs.StrokingColor,
		})
	}

	for _, seg := range p.path {
		switch seg.op {
		case opMove:
			curTransformed = seg.pts[0].Transform(p.gs.CTM)
			subStartTransformed = curTransformed
			haveCurrent = true
		case opLine:
			to := seg.pts[0].Transform(p.gs.CTM)
			if haveCurrent {
				emitLine(curTransformed, to)
			}
			curTransformed = to
		case opCurve:
			p0 := curTransformed
			p1 := seg.pts[0].Transform(p.gs.CTM)
			p2 := seg.pts[1].Transform(p.gs.CTM)
			p3 := seg.pts[2].Transform(p.gs.CTM)
			p.Curves = append(p.Curves, Curve{
				P0: flipPoint(p0, p.pageHeight), P1: flipPoint(p1, p.pageHeight),
				P2: flipPoint(p2, p.pageHeight), P3: flipPoint(p3, p.pageHeight),
				BBox:             curveBBox(flipPoint(p0, p.pageHeight), flipPoint(p1, p.pageHeight), flipPoint(p2, p.pageHeight), flipPoint(p3, p.pageHeight)),
				Width:            p.gs.LineWidth,
				StrokingColor:    strokeOrNil(stroke, p.gs.StrokingColor),
				NonStrokingColor: fillOrNil(fill, p.gs.NonStrokingColor),
			})
			curTransformed = p3
		case opClose:
			if haveCurrent && (math.Abs(curTransformed.X-subStartTransformed.X) > 1e-6 || math.Abs(curTransformed.Y-subStartTransformed.Y) > 1e-6) {
				emitLine(curTransformed, subStartTransformed)
			}
			curTransformed = subStartTransformed
		case opRect:
			c1 := seg.pts[0].Transform(p.gs.CTM)
			c2 := seg.pts[1].Transform(p.gs.CTM)
			bbox := geom.NewBBox(c1.X, p.pageHeight-c1.Y, c2.X, p.pageHeight-c2.Y)
			p.Rects = append(p.Rects, Rect{
				BBox:             bbox,
				Width:            p.gs.LineWidth,
				StrokingColor:    strokeOrNil(stroke, p.gs.StrokingColor),
				NonStrokingColor: fillOrNil(fill, p.gs.NonStrokingColor),
			})
			curTransformed = c1
			subStartTransformed = c1
			haveCurrent = true
		}
	}

	if close && haveCurrent {
		if math.Abs(curTransformed.X-subStartTransformed.X) > 1e-6 || math.Abs(curTransformed.Y-subStartTransformed.Y) > 1e-6 {
			emitLine(curTransformed, subStartTransformed)
		}
	}
}

func strokeOrNil(stroke bool, c *model.Color) *model.Color {
	if stroke {
		return c
	}
	return model.NoColor
}

func fillOrNil(fill bool, c *model.Color) *model.Color {
	if fill {
		return c
	}
	return model.NoColor
}

func flipPoint(p transform.Point, pageHeight float64) transform.Point {
	return transform.NewPoint(p.X, pageHeight-p.Y)
}

func flippedBBox(from, to transform.Point, pageHeight float64) geom.BBox {
	f := flipPoint(from, pageHeight)
	t := flipPoint(to, pageHeight)
	return geom.NewBBox(f.X, f.Y, t.X, t.Y)
}

// doXObject resolves and, if it is a Form, recursively interprets a Do
// operand. Non-Form XObjects (images) and unreadable streams are ignored;
// image decoding is out of scope for this interpreter.
func (p *Processor) doXObject(name string) {
	if p.resources == nil {
		return
	}
	stream, ok := p.resources.XObjectStream(name)
	if !ok {
		return
	}
	subtype, _ := core.GetNameValKey(&stream.PdfObjectDictionary, "Subtype")
	if subtype != "Form" {
		return
	}
	if p.formDepth >= maxFormDepth {
		common.Log.Debug("contentstream: Form XObject recursion capped at depth %d, skipping Do %s", maxFormDepth, name)
		return
	}
	if p.decoder == nil {
		return
	}
	content, err := p.decoder.Decode(stream)
	if err != nil {
		common.Log.Debug("contentstream: Form XObject %s: %v", name, err)
		return
	}
	ops, err := Tokenize(content)
	if err != nil {
		common.Log.Debug("contentstream: Form XObject %s content: %v", name, err)
		return
	}

	formResources := p.resources
	if resDict, ok := core.GetDictVal(&stream.PdfObjectDictionary, "Resources"); ok {
		formResources = model.NewResources(resDict)
	}

	savedGS, savedResources, savedDepth := p.gs, p.resources, p.formDepth
	p.gsStack.Push(p.gs.Clone())
	if m, ok := formMatrix(&stream.PdfObjectDictionary); ok {
		p.gs.CTM.Concat(m)
	}
	p.resources = formResources
	p.formDepth++

	p.Run(ops)

	p.formDepth = savedDepth
	p.resources = savedResources
	if gs, ok := p.gsStack.Pop(); ok {
		p.gs = gs
	} else {
		p.gs = savedGS
	}
}

func formMatrix(dict *core.PdfObjectDictionary) (transform.Matrix, bool) {
	arr, ok := core.GetArrayVal(dict, "Matrix")
	if !ok || arr.Len() != 6 {
		return transform.Matrix{}, false
	}
	vals, err := arr.ToFloat64Array(core.Resolve)
	if err != nil {
		return transform.Matrix{}, false
	}
	return transform.NewMatrix(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), true
}

// --- operand helpers ---

func float(operands []core.PdfObject, i int) (float64, bool) {
	if i < 0 || i >= len(operands) {
		return 0, false
	}
	return floatVal(operands[i])
}

func floatVal(obj core.PdfObject) (float64, bool) {
	v, err := core.GetNumberAsFloat(obj)
	return v, err == nil
}

func floats(operands []core.PdfObject, n int) ([]float64, bool) {
	if len(operands) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := floatVal(operands[i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func intOperand(operands []core.PdfObject, i int) (int, bool) {
	v, ok := float(operands, i)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func nameOperand(operands []core.PdfObject, i int) (string, bool) {
	if i < 0 || i >= len(operands) {
		return "", false
	}
	return core.GetNameVal(operands[i])
}

func stringOperand(operands []core.PdfObject, i int) ([]byte, bool) {
	if i < 0 || i >= len(operands) {
		return nil, false
	}
	return core.GetStringBytes(operands[i])
}

func numericOperands(operands []core.PdfObject) []float64 {
	var vals []float64
	for _, o := range operands {
		if v, ok := floatVal(o); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

func matrixOperand(operands []core.PdfObject) (transform.Matrix, bool) {
	vals, ok := floats(operands, 6)
	if !ok {
		return transform.Matrix{}, false
	}
	return transform.NewMatrix(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), true
}
