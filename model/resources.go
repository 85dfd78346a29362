/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/jackburrus/ripdoc/core"

// Resources wraps a page's /Resources dictionary with typed lookups for the
// sub-dictionaries the interpreter consults by name: Font, XObject, and
// ExtGState.
type Resources struct {
	dict *core.PdfObjectDictionary
}

// NewResources wraps dict, which may be nil (an empty resource set, as used
// for a page that specifies no /Resources at any level of its tree).
func NewResources(dict *core.PdfObjectDictionary) *Resources {
	if dict == nil {
		dict = core.MakeDict()
	}
	return &Resources{dict: dict}
}

// FontDict resolves a font by its in-page resource name (the operand of
// Tf), e.g. "F1".
func (r *Resources) FontDict(name string) (*core.PdfObjectDictionary, bool) {
	return r.subDict("Font", name)
}

// XObjectStream resolves a named XObject (the operand of Do) to its stream.
func (r *Resources) XObjectStream(name string) (*core.PdfObjectStream, bool) {
	sub, ok := core.GetDictVal(r.dict, "XObject")
	if !ok {
		return nil, false
	}
	obj := core.Resolve(sub.Get(core.PdfObjectName(name)))
	stream, ok := obj.(*core.PdfObjectStream)
	return stream, ok
}

// ExtGStateDict resolves a named graphics-state parameter dictionary (the
// operand of gs).
func (r *Resources) ExtGStateDict(name string) (*core.PdfObjectDictionary, bool) {
	return r.subDict("ExtGState", name)
}

// ColorSpaceDict returns the whole resource dictionary; ResolveColorspace
// looks up its /ColorSpace entry for names that are not device spaces.
func (r *Resources) ColorSpaceDict() *core.PdfObjectDictionary {
	return r.dict
}

func (r *Resources) subDict(category, name string) (*core.PdfObjectDictionary, bool) {
	sub, ok := core.GetDictVal(r.dict, core.PdfObjectName(category))
	if !ok {
		return nil, false
	}
	return core.GetDictVal(sub, core.PdfObjectName(name))
}
