/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package document

import (
	"github.com/jackburrus/ripdoc/geom"
	"github.com/jackburrus/ripdoc/page"
	"github.com/jackburrus/ripdoc/table"
	"golang.org/x/xerrors"
)

// ExtractText returns the num'th page's text per opts.
func (d *Document) ExtractText(num int, opts page.TextOptions) (string, error) {
	p, err := d.GetPage(num)
	if err != nil {
		return "", err
	}
	return p.ExtractText(opts), nil
}

// Words returns the num'th page's reconstructed words.
func (d *Document) Words(num int, xTol, yTol float64) ([]page.Word, error) {
	p, err := d.GetPage(num)
	if err != nil {
		return nil, err
	}
	return p.Words(xTol, yTol), nil
}

// FindTables runs the table detector over the num'th page.
func (d *Document) FindTables(num int, settings table.Settings) ([]*table.Table, error) {
	p, err := d.GetPage(num)
	if err != nil {
		return nil, err
	}
	tables, err := table.FindTables(p, settings)
	if err != nil {
		return nil, xerrors.Errorf("document: page %d: %v: %w", num, err, ErrTableDetection)
	}
	return tables, nil
}

// ExtractTables runs the table detector and projects every result to a grid.
func (d *Document) ExtractTables(num int, settings table.Settings) ([][][]*string, error) {
	p, err := d.GetPage(num)
	if err != nil {
		return nil, err
	}
	grids, err := table.ExtractTables(p, settings)
	if err != nil {
		return nil, xerrors.Errorf("document: page %d: %v: %w", num, err, ErrTableDetection)
	}
	return grids, nil
}

// Crop returns the intersection of the num'th page's primitives with bbox.
func (d *Document) Crop(num int, bbox geom.BBox) (*page.Page, error) {
	p, err := d.GetPage(num)
	if err != nil {
		return nil, err
	}
	if !bbox.Valid() {
		return nil, xerrors.Errorf("document: crop page %d: %w", num, ErrInvalidBBox)
	}
	return p.Crop(bbox), nil
}

// WithinBBox returns the num'th page's primitives fully contained by bbox.
func (d *Document) WithinBBox(num int, bbox geom.BBox) (*page.Page, error) {
	p, err := d.GetPage(num)
	if err != nil {
		return nil, err
	}
	if !bbox.Valid() {
		return nil, xerrors.Errorf("document: within-bbox page %d: %w", num, ErrInvalidBBox)
	}
	return p.WithinBBox(bbox), nil
}

// Search finds pattern on the num'th page.
func (d *Document) Search(num int, pattern string, regex bool) ([]page.Match, error) {
	p, err := d.GetPage(num)
	if err != nil {
		return nil, err
	}
	matches, err := p.Search(pattern, regex)
	if err != nil {
		return nil, xerrors.Errorf("document: search page %d: %v: %w", num, err, ErrEncoding)
	}
	return matches, nil
}
