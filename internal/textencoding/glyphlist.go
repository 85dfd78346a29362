/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package textencoding

import (
	"strconv"
	"strings"
)

// GlyphToRune resolves an Adobe glyph name to a rune. "uniXXXX"/"uXXXX"
// forms are decoded directly; everything else is looked up in glyphList,
// a practical subset of the Adobe Glyph List covering the Latin glyphs
// that WinAnsi/MacRoman/Standard/PDFDoc encodings and typical
// /Differences arrays actually reference.
func GlyphToRune(glyph GlyphName) (rune, bool) {
	name := string(glyph)
	if r, ok := glyphList[name]; ok {
		return r, true
	}
	if strings.HasPrefix(name, "uni") && len(name) >= 7 {
		if v, err := strconv.ParseUint(name[3:7], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	return MissingCodeRune, false
}

// glyphList is a working subset of the Adobe Glyph List: the ASCII
// letters/digits/punctuation plus the accented and symbol glyphs that the
// five named encodings below actually use.
var glyphList = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"quoteright": '’', "parenleft": '(', "parenright": ')',
	"asterisk": '*', "plus": '+', "comma": ',', "hyphen": '-', "period": '.',
	"slash": '/', "zero": '0', "one": '1', "two": '2', "three": '3',
	"four": '4', "five": '5', "six": '6', "seven": '7', "eight": '8',
	"nine": '9', "colon": ':', "semicolon": ';', "less": '<', "equal": '=',
	"greater": '>', "question": '?', "at": '@',
	"A": 'A', "B": 'B', "C": 'C', "D": 'D', "E": 'E', "F": 'F', "G": 'G',
	"H": 'H', "I": 'I', "J": 'J', "K": 'K', "L": 'L', "M": 'M', "N": 'N',
	"O": 'O', "P": 'P', "Q": 'Q', "R": 'R', "S": 'S', "T": 'T', "U": 'U',
	"V": 'V', "W": 'W', "X": 'X', "Y": 'Y', "Z": 'Z',
	"bracketleft": '[', "backslash": '\\', "bracketright": ']',
	"asciicircum": '^', "underscore": '_', "grave": '`', "quoteleft": '‘',
	"a": 'a', "b": 'b', "c": 'c', "d": 'd', "e": 'e', "f": 'f', "g": 'g',
	"h": 'h', "i": 'i', "j": 'j', "k": 'k', "l": 'l', "m": 'm', "n": 'n',
	"o": 'o', "p": 'p', "q": 'q', "r": 'r', "s": 's', "t": 't', "u": 'u',
	"v": 'v', "w": 'w', "x": 'x', "y": 'y', "z": 'z',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~',
	"exclamdown": '¡', "cent": '¢', "sterling": '£',
	"currency": '¤', "yen": '¥', "brokenbar": '¦',
	"section": '§', "dieresis": '¨', "copyright": '©',
	"ordfeminine": 'ª', "guillemotleft": '«', "logicalnot": '¬',
	"registered": '®', "macron": '¯', "degree": '°',
	"plusminus": '±', "acute": '´', "mu": 'µ',
	"paragraph": '¶', "periodcentered": '·', "cedilla": '¸',
	"ordmasculine": 'º', "guillemotright": '»',
	"onequarter": '¼', "onehalf": '½', "threequarters": '¾',
	"questiondown": '¿',
	"Agrave": 'À', "Aacute": 'Á', "Acircumflex": 'Â',
	"Atilde": 'Ã', "Adieresis": 'Ä', "Aring": 'Å',
	"AE": 'Æ', "Ccedilla": 'Ç', "Egrave": 'È',
	"Eacute": 'É', "Ecircumflex": 'Ê', "Edieresis": 'Ë',
	"Igrave": 'Ì', "Iacute": 'Í', "Icircumflex": 'Î',
	"Idieresis": 'Ï', "Eth": 'Ð', "Ntilde": 'Ñ',
	"Ograve": 'Ò', "Oacute": 'Ó', "Ocircumflex": 'Ô',
	"Otilde": 'Õ', "Odieresis": 'Ö', "multiply": '×',
	"Oslash": 'Ø', "Ugrave": 'Ù', "Uacute": 'Ú',
	"Ucircumflex": 'Û', "Udieresis": 'Ü', "Yacute": 'Ý',
	"Thorn": 'Þ', "germandbls": 'ß',
	"agrave": 'à', "aacute": 'á', "acircumflex": 'â',
	"atilde": 'ã', "adieresis": 'ä', "aring": 'å',
	"ae": 'æ', "ccedilla": 'ç', "egrave": 'è',
	"eacute": 'é', "ecircumflex": 'ê', "edieresis": 'ë',
	"igrave": 'ì', "iacute": 'í', "icircumflex": 'î',
	"idieresis": 'ï', "eth": 'ð', "ntilde": 'ñ',
	"ograve": 'ò', "oacute": 'ó', "ocircumflex": 'ô',
	"otilde": 'õ', "odieresis": 'ö', "divide": '÷',
	"oslash": 'ø', "ugrave": 'ù', "uacute": 'ú',
	"ucircumflex": 'û', "udieresis": 'ü', "yacute": 'ý',
	"thorn": 'þ', "ydieresis": 'ÿ',
	"quotesinglbase": '‚', "florin": 'ƒ', "quotedblbase": '„',
	"ellipsis": '…', "dagger": '†', "daggerdbl": '‡',
	"circumflex": 'ˆ', "perthousand": '‰', "Scaron": 'Š',
	"guilsinglleft": '‹', "OE": 'Œ', "Zcaron": 'Ž',
	"quotedblleft": '“', "quotedblright": '”', "bullet": '•',
	"endash": '–', "emdash": '—', "tilde": '˜',
	"trademark": '™', "scaron": 'š', "guilsinglright": '›',
	"oe": 'œ', "zcaron": 'ž', "Ydieresis": 'Ÿ',
	"nbspace": ' ', "minus": '−', "fi": 'ﬁ', "fl": 'ﬂ',
}
