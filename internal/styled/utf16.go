package styled

import (
	"unicode/utf16"
	"unicode/utf8"
)

// ToUTF16 converts annotation offsets from UTF-8 bytes to UTF-16 code units,
// the indexing used by Android and JavaScript text widgets.
// Offsets that fall inside a multi-byte rune map to the rune's start.
func ToUTF16(text string, annotations []Annotation) []Annotation {
	index := make([]int, len(text)+1)
	units := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		for j := i; j < i+size; j++ {
			index[j] = units
		}
		units += utf16.RuneLen(r)
		i += size
	}
	index[len(text)] = units

	out := make([]Annotation, len(annotations))
	for i, a := range annotations {
		a.Start = index[clampOffset(a.Start, len(text))]
		a.End = index[clampOffset(a.End, len(text))]
		out[i] = a
	}
	return out
}

func clampOffset(off, n int) int {
	return min(max(off, 0), n)
}
