/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package model resolves the PDF object layer into the domain types the
// content-stream interpreter and table detector consume: colors and
// colorspaces, page resource dictionaries, and fonts.
package model

import (
	"fmt"

	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/core"
)

// ColorKind tags which variant a Color value holds.
type ColorKind int

// The four Color variants: an explicit absence, and the three component
// spaces a content stream's color operators set.
const (
	ColorNone ColorKind = iota
	ColorGray
	ColorRGB
	ColorCMYK
)

// Color is a tagged color variant: Gray(v), RGB(r,g,b), CMYK(c,m,y,k), or an
// explicit absence. Colors are built once per graphics-state change and
// shared by reference across every primitive drawn under that state, rather
// than copied per character.
type Color struct {
	Kind             ColorKind
	Gray             float64
	R, G, B          float64
	C, M, Y, K       float64
}

// NoColor is the shared representation of an absent color.
var NoColor = &Color{Kind: ColorNone}

// NewGrayColor returns a Color in DeviceGray.
func NewGrayColor(v float64) *Color { return &Color{Kind: ColorGray, Gray: v} }

// NewRGBColor returns a Color in DeviceRGB.
func NewRGBColor(r, g, b float64) *Color { return &Color{Kind: ColorRGB, R: r, G: g, B: b} }

// NewCMYKColor returns a Color in DeviceCMYK.
func NewCMYKColor(c, m, y, k float64) *Color { return &Color{Kind: ColorCMYK, C: c, M: m, Y: y, K: k} }

func (c *Color) String() string {
	if c == nil {
		return "none"
	}
	switch c.Kind {
	case ColorGray:
		return fmt.Sprintf("gray(%.3f)", c.Gray)
	case ColorRGB:
		return fmt.Sprintf("rgb(%.3f,%.3f,%.3f)", c.R, c.G, c.B)
	case ColorCMYK:
		return fmt.Sprintf("cmyk(%.3f,%.3f,%.3f,%.3f)", c.C, c.M, c.Y, c.K)
	}
	return "none"
}

// Colorspace identifies the family a color operand sequence is interpreted
// under. Only the component count matters to this module: rendering and ICC
// profile interpretation are out of scope, so Indexed, Separation, DeviceN,
// Lab and ICCBased colorspaces are all resolved to their declared or
// alternate component count and never converted to RGB.
type Colorspace struct {
	Name          string
	NumComponents int
}

var (
	deviceGray = &Colorspace{Name: "DeviceGray", NumComponents: 1}
	deviceRGB  = &Colorspace{Name: "DeviceRGB", NumComponents: 3}
	deviceCMYK = &Colorspace{Name: "DeviceCMYK", NumComponents: 4}
)

// ColorFromComponents builds a Color from operands already coerced to
// float64, picking the variant by component count: 1 component is Gray,
// 3 is RGB, 4 is CMYK. Colorspaces whose component count this module does
// not model directly (Indexed, Separation, Lab, ICCBased, ...) still resolve
// through this same fallback.
func ColorFromComponents(cs *Colorspace, vals []float64) *Color {
	n := len(vals)
	if cs != nil {
		n = cs.NumComponents
		if len(vals) < n {
			n = len(vals)
		}
	}
	switch len(vals) {
	case 1:
		return NewGrayColor(vals[0])
	case 3:
		return NewRGBColor(vals[0], vals[1], vals[2])
	case 4:
		return NewCMYKColor(vals[0], vals[1], vals[2], vals[3])
	}
	if n == 1 && len(vals) >= 1 {
		return NewGrayColor(vals[0])
	}
	common.Log.Debug("ColorFromComponents: unrecognized component count %d", len(vals))
	return NoColor
}

// ResolveColorspace looks up a named colorspace: the three device spaces
// directly, or a /ColorSpace resource entry by name. A name that cannot be
// found, or a family this module does not interpret, resolves to a
// Colorspace with zero components.
func ResolveColorspace(name string, resources *core.PdfObjectDictionary) *Colorspace {
	switch name {
	case "DeviceGray", "CalGray", "G":
		return deviceGray
	case "DeviceRGB", "CalRGB", "RGB":
		return deviceRGB
	case "DeviceCMYK", "CMYK":
		return deviceCMYK
	case "Pattern":
		return &Colorspace{Name: "Pattern", NumComponents: 0}
	}
	if resources == nil {
		return &Colorspace{Name: name, NumComponents: 0}
	}
	csDict, ok := core.GetDictVal(resources, "ColorSpace")
	if !ok {
		return &Colorspace{Name: name, NumComponents: 0}
	}
	entry := core.Resolve(csDict.Get(core.PdfObjectName(name)))
	return colorspaceFromObject(name, entry)
}

func colorspaceFromObject(name string, obj core.PdfObject) *Colorspace {
	if n, ok := core.GetNameVal(obj); ok {
		return ResolveColorspace(n, nil)
	}
	arr, ok := core.GetArray(obj)
	if !ok || arr.Len() == 0 {
		return &Colorspace{Name: name, NumComponents: 0}
	}
	family, _ := core.GetNameVal(core.Resolve(arr.Get(0)))
	switch family {
	case "ICCBased":
		stream, ok := core.GetDict(core.Resolve(arr.Get(1)))
		n := 3
		if ok {
			if v, ok := core.GetIntValKey(stream, "N"); ok {
				n = v
			}
		}
		return &Colorspace{Name: "ICCBased", NumComponents: n}
	case "Indexed":
		return &Colorspace{Name: "Indexed", NumComponents: 1}
	case "Separation":
		return &Colorspace{Name: "Separation", NumComponents: 1}
	case "DeviceN":
		names, _ := core.GetArray(core.Resolve(arr.Get(1)))
		return &Colorspace{Name: "DeviceN", NumComponents: names.Len()}
	case "CalGray":
		return deviceGray
	case "CalRGB", "Lab":
		return deviceRGB
	}
	return &Colorspace{Name: family, NumComponents: 0}
}
