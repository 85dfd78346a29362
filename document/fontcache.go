/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package document

import (
	"github.com/jackburrus/ripdoc/common"
	"github.com/jackburrus/ripdoc/core"
	"github.com/jackburrus/ripdoc/model"
)

// fontCache resolves font resource names to FontInfo, caching by the font
// dictionary's identity so that repeated Tf calls for the same in-page font
// (the overwhelmingly common case) parse the dictionary once. It implements
// contentstream.FontResolver.
type fontCache struct {
	doc   *Document
	byDict map[*core.PdfObjectDictionary]*model.FontInfo
}

func newFontCache(doc *Document) *fontCache {
	return &fontCache{doc: doc, byDict: map[*core.PdfObjectDictionary]*model.FontInfo{}}
}

// ResolveFont looks up name in resources, parsing and caching its FontInfo
// on first use. A missing dictionary or a resolution error degrades to
// DefaultFontInfo rather than aborting the page (spec §7).
func (fc *fontCache) ResolveFont(resources *model.Resources, name string) *model.FontInfo {
	dict, ok := resources.FontDict(name)
	if !ok {
		common.Log.Warning("document: font resource %q not found", name)
		return model.DefaultFontInfo(name)
	}
	if fi, ok := fc.byDict[dict]; ok {
		return fi
	}
	fi, err := model.NewFontInfoFromDict(name, dict, fc.doc.parser)
	if err != nil {
		common.Log.Warning("document: font %q: %v", name, err)
	}
	fc.byDict[dict] = fi
	return fi
}
