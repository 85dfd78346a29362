/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package core

import "fmt"

// letterSize is the MediaBox fallback (US Letter, in points) for page trees
// that omit it at every level, which happens often enough in the wild to
// warrant a default instead of an error.
var letterSize = [4]float64{0, 0, 612, 792}

// GetPageDict returns the num'th page dictionary (1-based) by walking the
// page tree rooted at the document catalog's /Pages entry through /Kids,
// counting leaves in order (/Count is not consulted). Inherited attributes (/Resources, /MediaBox, /CropBox) are not
// copied down here: callers resolve those by walking /Parent from the
// returned dictionary, since a page dictionary only carries its own
// overrides.
func (p *PdfParser) GetPageDict(num int) (*PdfObjectDictionary, error) {
	root, ok := GetDictVal(p.trailer, "Root")
	if !ok {
		return nil, fmt.Errorf("missing document catalog")
	}
	pagesRoot, ok := GetDictVal(root, "Pages")
	if !ok {
		return nil, fmt.Errorf("missing page tree root")
	}

	count := 0
	seen := map[*PdfObjectDictionary]bool{}
	var walk func(node *PdfObjectDictionary) (*PdfObjectDictionary, error)
	walk = func(node *PdfObjectDictionary) (*PdfObjectDictionary, error) {
		if node == nil || seen[node] {
			return nil, nil
		}
		seen[node] = true

		typeName, _ := GetNameValKey(node, "Type")
		if typeName == "Page" {
			count++
			if count == num {
				return node, nil
			}
			return nil, nil
		}

		kids, ok := GetArrayVal(node, "Kids")
		if !ok {
			// Some producers omit /Type on leaves; treat a Kids-less node
			// with content-ish keys as a page.
			if node.Get("Contents") != nil || node.Get("MediaBox") != nil {
				count++
				if count == num {
					return node, nil
				}
			}
			return nil, nil
		}
		for _, k := range kids.Elements() {
			child, ok := GetDict(Resolve(k))
			if !ok {
				continue
			}
			if !hasParent(child) {
				child.Set("Parent", parentRef(node))
			}
			found, err := walk(child)
			if err != nil {
				return nil, err
			}
			if found != nil {
				return found, nil
			}
		}
		return nil, nil
	}

	page, err := walk(pagesRoot)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// hasParent reports whether node already carries a /Parent entry; used while
// threading synthetic parent pointers through trees the brute-force scanner
// rebuilt without object identity for inherited-attribute lookups.
func hasParent(node *PdfObjectDictionary) bool {
	return node.Get("Parent") != nil
}

// parentRef returns a direct (non-indirect) reference to node; since this
// parser does not preserve object numbers on dictionaries reached purely
// through array traversal, inherited attributes are looked up by walking
// these direct pointers rather than re-resolving indirect references.
func parentRef(node *PdfObjectDictionary) PdfObject {
	return node
}

// CountPages returns the page-tree root's /Count when present; otherwise it
// counts the /Type /Page leaves in the tree.
func (p *PdfParser) CountPages() (int, error) {
	root, ok := GetDictVal(p.trailer, "Root")
	if !ok {
		return 0, fmt.Errorf("missing document catalog")
	}
	pagesRoot, ok := GetDictVal(root, "Pages")
	if !ok {
		return 0, fmt.Errorf("missing page tree root")
	}
	if n, ok := GetIntValKey(pagesRoot, "Count"); ok {
		return n, nil
	}
	count := 0
	var walk func(node *PdfObjectDictionary)
	seen := map[*PdfObjectDictionary]bool{}
	walk = func(node *PdfObjectDictionary) {
		if node == nil || seen[node] {
			return
		}
		seen[node] = true
		if t, _ := GetNameValKey(node, "Type"); t == "Page" {
			count++
			return
		}
		kids, ok := GetArrayVal(node, "Kids")
		if !ok {
			return
		}
		for _, k := range kids.Elements() {
			if child, ok := GetDict(Resolve(k)); ok {
				walk(child)
			}
		}
	}
	walk(pagesRoot)
	return count, nil
}

// InheritedMediaBox resolves /MediaBox on page, walking /Parent, and falling
// back to US Letter when no level of the tree specifies one.
func InheritedMediaBox(page *PdfObjectDictionary) [4]float64 {
	box, ok := inheritedArray(page, "MediaBox")
	if !ok || box.Len() != 4 {
		return letterSize
	}
	vals, err := box.ToFloat64Array(Resolve)
	if err != nil || len(vals) != 4 {
		return letterSize
	}
	return [4]float64{vals[0], vals[1], vals[2], vals[3]}
}

// InheritedCropBox resolves /CropBox, falling back to the MediaBox.
func InheritedCropBox(page *PdfObjectDictionary) [4]float64 {
	box, ok := inheritedArray(page, "CropBox")
	if !ok || box.Len() != 4 {
		return InheritedMediaBox(page)
	}
	vals, err := box.ToFloat64Array(Resolve)
	if err != nil || len(vals) != 4 {
		return InheritedMediaBox(page)
	}
	return [4]float64{vals[0], vals[1], vals[2], vals[3]}
}

// InheritedResources resolves /Resources, walking /Parent.
func InheritedResources(page *PdfObjectDictionary) *PdfObjectDictionary {
	node := page
	seen := map[*PdfObjectDictionary]bool{}
	for node != nil && !seen[node] {
		seen[node] = true
		if res, ok := GetDictVal(node, "Resources"); ok {
			return res
		}
		parent, ok := node.Get("Parent").(*PdfObjectDictionary)
		if !ok {
			break
		}
		node = parent
	}
	return MakeDict()
}

// ResolvePageBox resolves a page's drawing-area box in the order page
// assembly requires: /MediaBox (walking /Parent), else /CropBox (same
// walk), else US Letter. Unlike InheritedMediaBox this never substitutes
// the letter default ahead of a present CropBox.
func ResolvePageBox(page *PdfObjectDictionary) [4]float64 {
	if box, ok := inheritedArray(page, "MediaBox"); ok && box.Len() == 4 {
		if vals, err := box.ToFloat64Array(Resolve); err == nil && len(vals) == 4 {
			return [4]float64{vals[0], vals[1], vals[2], vals[3]}
		}
	}
	if box, ok := inheritedArray(page, "CropBox"); ok && box.Len() == 4 {
		if vals, err := box.ToFloat64Array(Resolve); err == nil && len(vals) == 4 {
			return [4]float64{vals[0], vals[1], vals[2], vals[3]}
		}
	}
	return letterSize
}

// PageContentStreams resolves a page's /Contents entry — a single stream or
// an array of streams, both occur in the wild — decodes each member through
// the parser's filter chain, and joins them with a space, per the PDF
// convention that a multi-stream content program is equivalent to their
// concatenation with whitespace inserted at the seams.
func (p *PdfParser) PageContentStreams(page *PdfObjectDictionary) ([]byte, error) {
	contents := Resolve(page.Get("Contents"))
	switch v := contents.(type) {
	case *PdfObjectStream:
		return p.Decode(v)
	case *PdfObjectArray:
		var buf []byte
		for i, elem := range v.Elements() {
			stream, ok := Resolve(elem).(*PdfObjectStream)
			if !ok {
				continue
			}
			decoded, err := p.Decode(stream)
			if err != nil {
				return buf, err
			}
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = append(buf, decoded...)
		}
		return buf, nil
	default:
		return nil, nil
	}
}

func inheritedArray(page *PdfObjectDictionary, key PdfObjectName) (*PdfObjectArray, bool) {
	node := page
	seen := map[*PdfObjectDictionary]bool{}
	for node != nil && !seen[node] {
		seen[node] = true
		if arr, ok := GetArrayVal(node, key); ok {
			return arr, true
		}
		parent, ok := node.Get("Parent").(*PdfObjectDictionary)
		if !ok {
			break
		}
		node = parent
	}
	return nil, false
}
