/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package document

import "errors"

// The closed error taxonomy of spec §7. Every error Document returns wraps
// exactly one of these via golang.org/x/xerrors, so callers can test with
// errors.Is(err, document.ErrFont) etc. regardless of the underlying cause.
var (
	ErrPdfParse       = errors.New("pdf parse error")
	ErrFont           = errors.New("font error")
	ErrContentStream  = errors.New("content stream error")
	ErrEncoding       = errors.New("encoding error")
	ErrTableDetection = errors.New("table detection error")
	ErrPageNotFound   = errors.New("page not found")
	ErrInvalidBBox    = errors.New("invalid bbox")
)
