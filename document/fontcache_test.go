/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package document

import (
	"testing"

	"github.com/jackburrus/ripdoc/core"
	"github.com/jackburrus/ripdoc/model"
	"github.com/stretchr/testify/require"
)

func TestFontCacheResolvesSameDictOnce(t *testing.T) {
	fontDict := core.MakeDict()
	fontDict.Set("Subtype", core.MakeName("Type1"))
	fontDict.Set("BaseFont", core.MakeName("Helvetica"))

	fonts := core.MakeDict()
	fonts.Set("F1", fontDict)
	resDict := core.MakeDict()
	resDict.Set("Font", fonts)
	resources := model.NewResources(resDict)

	fc := newFontCache(&Document{})
	first := fc.ResolveFont(resources, "F1")
	second := fc.ResolveFont(resources, "F1")
	require.Same(t, first, second, "repeated resolution of the same font dict must return the cached FontInfo")
}

func TestFontCacheMissingNameFallsBackToDefault(t *testing.T) {
	resources := model.NewResources(core.MakeDict())
	fc := newFontCache(&Document{})
	fi := fc.ResolveFont(resources, "Missing")
	require.Equal(t, "Helvetica", fi.BaseFont)
}
