// Package fonts selects a glyph-compatible subtitle font for a text sample by
// classifying its code points against an ordered table of Unicode script ranges.
package fonts
