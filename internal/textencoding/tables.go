/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

// asciiTable covers code points 0x20-0x7E, which WinAnsi, MacRoman,
// Standard and PDFDoc all agree on except for 0x27 (quotesingle vs.
// quoteright) and 0x60 (grave vs. quoteleft).
func asciiTable() map[byte]rune {
	t := make(map[byte]rune, 95)
	for b := byte(0x20); b < 0x7F; b++ {
		t[b] = rune(b)
	}
	return t
}

// winAnsiTable approximates Windows-1252: ASCII, plus the CP1252 upper
// range (0x80-0x9F) and Latin-1 Supplement (0xA0-0xFF).
var winAnsiTable = buildWinAnsi()

func buildWinAnsi() map[byte]rune {
	t := asciiTable()
	cp1252 := map[byte]rune{
		0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„', 0x85: '…', 0x86: '†',
		0x87: '‡', 0x88: 'ˆ', 0x89: '‰', 0x8A: 'Š', 0x8B: '‹', 0x8C: 'Œ',
		0x8E: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“', 0x94: '”', 0x95: '•',
		0x96: '–', 0x97: '—', 0x98: '˜', 0x99: '™', 0x9A: 'š', 0x9B: '›',
		0x9C: 'œ', 0x9E: 'ž', 0x9F: 'Ÿ',
	}
	for b, r := range cp1252 {
		t[b] = r
	}
	for b := 0xA0; b <= 0xFF; b++ {
		t[byte(b)] = rune(b)
	}
	return t
}

// macRomanTable approximates Mac OS Roman's upper range.
var macRomanTable = buildMacRoman()

func buildMacRoman() map[byte]rune {
	t := asciiTable()
	upper := []rune{
		'Ä', 'Å', 'Ç', 'É', 'Ñ', 'Ö', 'Ü', 'á', 'à', 'â', 'ä', 'ã', 'å', 'ç',
		'é', 'è', 'ê', 'ë', 'í', 'ì', 'î', 'ï', 'ñ', 'ó', 'ò', 'ô', 'ö', 'õ',
		'ú', 'ù', 'û', 'ü', '†', '°', '¢', '£', '§', '•', '¶', 'ß', '®', '©',
		'™', '´', '¨', '≠', 'Æ', 'Ø', '∞', '±', '≤', '≥', '¥', 'µ', '∂', '∑',
		'∏', 'π', '∫', 'ª', 'º', 'Ω', 'æ', 'ø', '¿', '¡', '¬', '√', 'ƒ', '≈',
		'∆', '«', '»', '…', ' ', 'À', 'Ã', 'Õ', 'Œ', 'œ', '–', '—', '“', '”',
		'‘', '’', '÷', '◊', 'ÿ', 'Ÿ', '⁄', '€', '‹', '›', 'ﬁ', 'ﬂ', '‡', '·',
		'‚', '„', '‰', 'Â', 'Ê', 'Á', 'Ë', 'È', 'Í', 'Î', 'Ï', 'Ì', 'Ó', 'Ô',
		0, 'Ò', 'Ú', 'Û', 'Ù', 'ı', 'ˆ', '˜', '¯', '˘', '˙', '˚', '¸', '˝',
		'˛', 'ˇ',
	}
	for i, r := range upper {
		if r == 0 {
			continue
		}
		t[byte(0x80+i)] = r
	}
	return t
}

// standardTable is Adobe StandardEncoding: ASCII with quoteleft/quoteright
// swapped in at 0x60/0x27 and a different (sparser) upper range than
// WinAnsi/MacRoman.
var standardTable = buildStandard()

func buildStandard() map[byte]rune {
	t := asciiTable()
	t[0x27] = '’'
	t[0x60] = '‘'
	upper := map[byte]rune{
		0xA1: '¡', 0xA2: '¢', 0xA3: '£', 0xA4: '⁄', 0xA5: '¥', 0xA6: 'ƒ',
		0xA7: '§', 0xA8: '¤', 0xA9: '\'', 0xAA: '“', 0xAB: '«', 0xAC: '‹',
		0xAD: '›', 0xAE: 'ﬁ', 0xAF: 'ﬂ', 0xB1: '–', 0xB2: '†', 0xB3: '‡',
		0xB4: '·', 0xB6: '¶', 0xB7: '•', 0xB8: '‚', 0xB9: '„', 0xBA: '”',
		0xBB: '»', 0xBC: '…', 0xBD: '‰', 0xBF: '¿', 0xC1: '`', 0xC2: '´',
		0xC3: 'ˆ', 0xC4: '˜', 0xC5: '¯', 0xC6: '˘', 0xC7: '˙', 0xC8: '¨',
		0xCA: '˚', 0xCB: '¸', 0xCD: '˝', 0xCE: '˛', 0xCF: 'ˇ', 0xD0: '—',
		0xE1: 'Æ', 0xE3: 'ª', 0xE8: 'Ø', 0xE9: 'Œ', 0xEA: 'º', 0xF1: 'æ',
		0xF5: 'ı', 0xF8: 'ø', 0xF9: 'œ', 0xFA: 'ß',
	}
	for b, r := range upper {
		t[b] = r
	}
	return t
}

// pdfDocTable is Adobe PDFDocEncoding, used for document information-
// dictionary strings. It agrees with WinAnsi on the upper range closely
// enough for text extraction purposes.
var pdfDocTable = buildWinAnsi()

// macExpertTable is Adobe MacExpertEncoding (small caps, oldstyle figures,
// fractions). It is rarely seen outside specialist typesetting fonts; this
// module maps its ASCII-range codes straight through and leaves the
// expert-set glyphs in the upper range unmapped rather than guessing glyph
// identities it cannot verify.
var macExpertTable = asciiTable()
