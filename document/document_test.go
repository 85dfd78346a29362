/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package document

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jackburrus/ripdoc/page"
	"github.com/stretchr/testify/require"
)

// syntheticPDF builds a minimal, uncompressed, single-page PDF around a
// literal content stream, for tests that need a real *Document without a
// fixture file on disk.
func syntheticPDF(t *testing.T, content string) []byte {
	t.Helper()
	widths := strings.TrimSpace(strings.Repeat("500 ", 100))
	body := fmt.Sprintf(`%%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R] /Count 1 >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>
endobj
4 0 obj
<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /Widths [ %s ] >>
endobj
5 0 obj
<< /Length %d >>
stream
%s
endstream
endobj
trailer
<< /Root 1 0 R >>
`, widths, len(content), content)
	return []byte(body)
}

func TestOpenBytesAndExtractText(t *testing.T) {
	data := syntheticPDF(t, "BT /F1 12 Tf 72 72 Td (Hi) Tj ET")
	doc, err := OpenBytes(data)
	require.NoError(t, err)

	n, err := doc.NumPages()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	text, err := doc.ExtractText(1, page.DefaultTextOptions())
	require.NoError(t, err)
	require.Equal(t, "Hi", text)
}

func TestGetPageCachesAcrossCalls(t *testing.T) {
	data := syntheticPDF(t, "BT /F1 12 Tf 72 72 Td (Hi) Tj ET")
	doc, err := OpenBytes(data)
	require.NoError(t, err)

	p1, err := doc.GetPage(1)
	require.NoError(t, err)
	p2, err := doc.GetPage(1)
	require.NoError(t, err)
	require.Same(t, p1, p2)
}

func TestGetPageOutOfRangeWrapsPageNotFound(t *testing.T) {
	data := syntheticPDF(t, "BT /F1 12 Tf 72 72 Td (Hi) Tj ET")
	doc, err := OpenBytes(data)
	require.NoError(t, err)

	_, err = doc.GetPage(99)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestOpenBytesRejectsGarbage(t *testing.T) {
	_, err := OpenBytes([]byte("not a pdf"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrPdfParse)
}
