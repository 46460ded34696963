package query

import "unicode"

// cjk covers the blocks that trigger bigram matching:
//
//	U+3040–U+30FF  Hiragana and Katakana
//	U+3400–U+4DBF  CJK Unified Ideographs Extension A
//	U+4E00–U+9FFF  CJK Unified Ideographs
//	U+F900–U+FAFF  CJK Compatibility Ideographs
//	U+FF66–U+FF9F  Halfwidth Katakana
var cjk = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x3040, Hi: 0x30ff, Stride: 1},
		{Lo: 0x3400, Hi: 0x4dbf, Stride: 1},
		{Lo: 0x4e00, Hi: 0x9fff, Stride: 1},
		{Lo: 0xf900, Hi: 0xfaff, Stride: 1},
		{Lo: 0xff66, Hi: 0xff9f, Stride: 1},
	},
}

// IsCJK reports whether r is in one of the Japanese/Chinese blocks above.
func IsCJK(r rune) bool {
	return unicode.Is(cjk, r)
}

// ContainsCJK reports whether any rune of s satisfies IsCJK.
func ContainsCJK(s string) bool {
	for _, r := range s {
		if IsCJK(r) {
			return true
		}
	}
	return false
}
