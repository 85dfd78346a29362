/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package page

import "github.com/jackburrus/ripdoc/geom"

// Crop returns a derived Page containing every primitive that intersects
// bbox, at the same page dimensions and doctop offset as p.
func (p *Page) Crop(bbox geom.BBox) *Page {
	return p.filter(bbox, geom.BBox.Intersects)
}

// WithinBBox returns a derived Page containing only primitives fully
// contained by bbox.
func (p *Page) WithinBBox(bbox geom.BBox) *Page {
	return p.filter(bbox, func(b, region geom.BBox) bool { return region.Contains(b) })
}

func (p *Page) filter(bbox geom.BBox, keep func(primitive, region geom.BBox) bool) *Page {
	out := &Page{Number: p.Number, Width: p.Width, Height: p.Height, DocTop: p.DocTop}
	for _, c := range p.Chars {
		if keep(c.BBox, bbox) {
			out.Chars = append(out.Chars, c)
		}
	}
	for _, l := range p.Lines {
		if keep(l.BBox, bbox) {
			out.Lines = append(out.Lines, l)
		}
	}
	for _, r := range p.Rects {
		if keep(r.BBox, bbox) {
			out.Rects = append(out.Rects, r)
		}
	}
	for _, cu := range p.Curves {
		if keep(cu.BBox, bbox) {
			out.Curves = append(out.Curves, cu)
		}
	}
	return out
}
