package styled

import (
	"unicode"
	"unicode/utf8"
)

// Trim narrows text to [start, end) with leading and trailing Unicode
// whitespace removed, and rebases annotations onto the narrowed text.
// Annotations that end up empty after clamping are dropped.
// start and end are clamped to the text bounds.
func Trim(text string, annotations []Annotation, start, end int) (string, []Annotation) {
	start = max(start, 0)
	end = min(end, len(text))
	if start > end {
		start = end
	}

	for start < end {
		r, size := utf8.DecodeRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(text[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}

	length := end - start
	rebased := make([]Annotation, 0, len(annotations))
	for _, a := range annotations {
		a.Start = max(0, a.Start-start)
		a.End = min(length, a.End-start)
		if a.Start >= a.End {
			continue
		}
		rebased = append(rebased, a)
	}
	return text[start:end], rebased
}

// TrimSpace trims the whole text. See Trim.
func TrimSpace(text string, annotations []Annotation) (string, []Annotation) {
	return Trim(text, annotations, 0, len(text))
}
