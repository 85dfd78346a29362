/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

// Package document is the library's public entry point: Open a PDF by path
// or byte buffer, then request pages by 1-based number. A Document owns the
// object-layer parser, a per-page extraction cache, and a per-document font
// cache; page extraction is synchronous and single-threaded (see §5 of the
// specification) — share a *Document across goroutines only behind a mutex,
// or open one Document per goroutine.
package document

import (
	"os"

	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/core"
	"github.com/jackburrus/ripdoc/page"
	"golang.org/x/xerrors"
)

// Document is an opened PDF: its object store, page count, and the two
// caches page extraction borrows from (font cache, page cache).
type Document struct {
	parser *core.PdfParser
	fonts  *fontCache
	pages  map[int]*page.Page
}

// Open reads the file at path fully into memory and parses it.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("document: open %q: %v: %w", path, err, ErrPdfParse)
	}
	return OpenBytes(data)
}

// OpenBytes parses an in-memory PDF buffer.
func OpenBytes(data []byte) (*Document, error) {
	parser, err := core.NewParser(data)
	if err != nil {
		return nil, xerrors.Errorf("document: parse: %v: %w", err, ErrPdfParse)
	}
	d := &Document{
		parser: parser,
		pages:  map[int]*page.Page{},
	}
	d.fonts = newFontCache(d)
	return d, nil
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() (int, error) {
	n, err := d.parser.CountPages()
	if err != nil {
		return 0, xerrors.Errorf("document: count pages: %v: %w", err, ErrPdfParse)
	}
	return n, nil
}

// GetPage returns the num'th (1-based) page, assembling and caching it on
// first request.
func (d *Document) GetPage(num int) (*page.Page, error) {
	if p, ok := d.pages[num]; ok {
		return p, nil
	}
	if num < 1 {
		return nil, xerrors.Errorf("document: page %d: %w", num, ErrPageNotFound)
	}

	dict, err := d.parser.GetPageDict(num)
	if err != nil {
		return nil, xerrors.Errorf("document: page %d: %v: %w", num, err, ErrPageNotFound)
	}

	offset, err := d.docTopOffset(num)
	if err != nil {
		return nil, xerrors.Errorf("document: page %d: %v: %w", num, err, ErrPdfParse)
	}

	p, err := page.Assemble(num, dict, d.parser, d.fonts, d.parser, offset)
	if err != nil {
		common.Log.Debug("document: page %d: content stream: %v", num, err)
		return nil, xerrors.Errorf("document: page %d: %v: %w", num, err, ErrContentStream)
	}

	d.pages[num] = p
	return p, nil
}

// docTopOffset sums the heights of every page before num, assembling (and
// caching) each one along the way — doctop is only meaningful once every
// earlier page's height is known.
func (d *Document) docTopOffset(num int) (float64, error) {
	var offset float64
	for i := 1; i < num; i++ {
		p, err := d.GetPage(i)
		if err != nil {
			return 0, err
		}
		offset += p.Height
	}
	return offset, nil
}

// Pages returns every page in the document, in order, assembling and
// caching any not yet requested.
func (d *Document) Pages() ([]*page.Page, error) {
	n, err := d.NumPages()
	if err != nil {
		return nil, err
	}
	out := make([]*page.Page, 0, n)
	for i := 1; i <= n; i++ {
		p, err := d.GetPage(i)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
