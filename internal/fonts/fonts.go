package fonts

import "path/filepath"

// Font identifies a subtitle typeface by family name and asset file name.
// File is relative to the configured font directory.
type Font struct {
	Script string
	Family string
	File   string
}

// scriptRange binds an inclusive code point range to the font that covers it.
type scriptRange struct {
	lo   rune
	hi   rune
	font Font
}

// Default is the Latin fallback used when no script range matches.
var Default = Font{Script: "Latin", Family: "Noto Sans", File: "NotoSans-Regular.ttf"}

// table is scanned in order; earlier entries win when a sample mixes scripts.
// The ordering is part of the contract and must not be re-sorted.
var table = []scriptRange{
	{0x0600, 0x06FF, Font{Script: "Arabic", Family: "Noto Naskh Arabic", File: "NotoNaskhArabic-Regular.ttf"}},
	{0x0590, 0x05FF, Font{Script: "Hebrew", Family: "Noto Sans Hebrew", File: "NotoSansHebrew-Regular.ttf"}},
	{0x3040, 0x30FF, Font{Script: "Japanese", Family: "Noto Sans JP", File: "NotoSansJP-Regular.ttf"}},
	{0xAC00, 0xD7AF, Font{Script: "Korean", Family: "Noto Sans KR", File: "NotoSansKR-Regular.ttf"}},
	{0x4E00, 0x9FFF, Font{Script: "CJK", Family: "Noto Sans SC", File: "NotoSansSC-Regular.ttf"}},
	{0x0900, 0x097F, Font{Script: "Devanagari", Family: "Noto Sans Devanagari", File: "NotoSansDevanagari-Regular.ttf"}},
	{0x0980, 0x09FF, Font{Script: "Bengali", Family: "Noto Sans Bengali", File: "NotoSansBengali-Regular.ttf"}},
	{0x0A00, 0x0A7F, Font{Script: "Gurmukhi", Family: "Noto Sans Gurmukhi", File: "NotoSansGurmukhi-Regular.ttf"}},
	{0x0A80, 0x0AFF, Font{Script: "Gujarati", Family: "Noto Sans Gujarati", File: "NotoSansGujarati-Regular.ttf"}},
	{0x0B00, 0x0B7F, Font{Script: "Oriya", Family: "Noto Sans Oriya", File: "NotoSansOriya-Regular.ttf"}},
	{0x0B80, 0x0BFF, Font{Script: "Tamil", Family: "Noto Sans Tamil", File: "NotoSansTamil-Regular.ttf"}},
	{0x0C00, 0x0C7F, Font{Script: "Telugu", Family: "Noto Sans Telugu", File: "NotoSansTelugu-Regular.ttf"}},
	{0x0C80, 0x0CFF, Font{Script: "Kannada", Family: "Noto Sans Kannada", File: "NotoSansKannada-Regular.ttf"}},
	{0x0D00, 0x0D7F, Font{Script: "Malayalam", Family: "Noto Sans Malayalam", File: "NotoSansMalayalam-Regular.ttf"}},
	{0x0E00, 0x0E7F, Font{Script: "Thai", Family: "Noto Sans Thai", File: "NotoSansThai-Regular.ttf"}},
	{0x0E80, 0x0EFF, Font{Script: "Lao", Family: "Noto Sans Lao", File: "NotoSansLao-Regular.ttf"}},
	{0x1780, 0x17FF, Font{Script: "Khmer", Family: "Noto Sans Khmer", File: "NotoSansKhmer-Regular.ttf"}},
	{0x1000, 0x109F, Font{Script: "Myanmar", Family: "Noto Sans Myanmar", File: "NotoSansMyanmar-Regular.ttf"}},
	{0x1200, 0x137F, Font{Script: "Ethiopic", Family: "Noto Sans Ethiopic", File: "NotoSansEthiopic-Regular.ttf"}},
	{0x0530, 0x058F, Font{Script: "Armenian", Family: "Noto Sans Armenian", File: "NotoSansArmenian-Regular.ttf"}},
	{0x10A0, 0x10FF, Font{Script: "Georgian", Family: "Noto Sans Georgian", File: "NotoSansGeorgian-Regular.ttf"}},
}

// Select returns the font covering the first table range that any rune of the
// sample falls into. Empty or unrecognized samples select Default. The result
// depends only on the input, so callers may select once per run from a
// representative sample (typically the first translated segment).
func Select(sample string) Font {
	if sample == "" {
		return Default
	}
	for _, sr := range table {
		for _, r := range sample {
			if r >= sr.lo && r <= sr.hi {
				return sr.font
			}
		}
	}
	return Default
}

// AssetPath resolves the font's file against a font directory. An empty
// directory returns just the file name, leaving resolution to the renderer.
func (f Font) AssetPath(dir string) string {
	if dir == "" {
		return f.File
	}
	return filepath.Join(dir, f.File)
}
