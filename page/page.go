/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package page implements page assembly (§4.3 of the specification): it
// turns a page dictionary plus its content stream into a Page — the
// caller-facing collection of positioned primitives — and the pure
// functions that operate on one: word grouping, text extraction, cropping,
// and search. Table detection lives in the sibling table package, which
// consumes a Page's primitives the same way these functions do.
package page

import (
	"github.com/jackburrus/ripdoc/contentstream"
	"github.com/jackburrus/ripdoc/core"
	"github.com/jackburrus/ripdoc/geom"
	"github.com/jackburrus/ripdoc/model"
)

// Page is one page's positioned primitives, in top-left coordinates, plus
// the page metadata (number, dimensions, cumulative doctop offset) a
// consumer needs to interpret them. Built once by Assemble and cached by
// the owning document; every primitive slice is owned by the Page.
type Page struct {
	Number int
	Width  float64
	Height float64
	DocTop float64

	Chars  []contentstream.Char
	Lines  []contentstream.Line
	Rects  []contentstream.Rect
	Curves []contentstream.Curve
}

// ContentSource supplies the raw bytes of a page's content stream(s).
// Streams needed for font resolution are decoded through the separate
// model.StreamDecoder. *core.PdfParser satisfies this directly.
type ContentSource interface {
	PageContentStreams(page *core.PdfObjectDictionary) ([]byte, error)
}

// Assemble builds a Page from a page dictionary: it resolves the page's
// box and resources (walking /Parent for both), decodes and interprets the
// content stream(s) with a fresh contentstream.Processor, and packages the
// four emitted primitive vectors. docTopOffset is the sum of the heights of
// every earlier page in the document.
func Assemble(num int, dict *core.PdfObjectDictionary, source ContentSource, fonts contentstream.FontResolver, decoder model.StreamDecoder, docTopOffset float64) (*Page, error) {
	box := core.ResolvePageBox(dict)
	width, height := box[2]-box[0], box[3]-box[1]
	if width <= 0 {
		width = 612
	}
	if height <= 0 {
		height = 792
	}

	resDict := core.InheritedResources(dict)
	resources := model.NewResources(resDict)

	content, err := source.PageContentStreams(dict)
	if err != nil {
		return nil, err
	}

	ops, err := contentstream.Tokenize(content)
	if err != nil {
		return nil, err
	}

	proc := contentstream.NewProcessor(resources, fonts, decoder, height, docTopOffset)
	if err := proc.Run(ops); err != nil {
		return nil, err
	}

	return &Page{
		Number: num,
		Width:  width,
		Height: height,
		DocTop: docTopOffset,
		Chars:  proc.Chars,
		Lines:  proc.Lines,
		Rects:  proc.Rects,
		Curves: proc.Curves,
	}, nil
}

// BBox returns the page's full-extent bounding box in top-left coordinates.
func (p *Page) BBox() geom.BBox {
	return geom.NewBBox(0, 0, p.Width, p.Height)
}
