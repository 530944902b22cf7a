package styled

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuffer_WriteAndAnnotate(t *testing.T) {
	t.Parallel()

	var b Buffer
	if _, ok := b.LastByte(); ok {
		t.Fatal("LastByte() on empty buffer reported a byte")
	}

	b.WriteString("hello")
	b.WriteString("\n")
	if got := b.Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}
	if !b.EndsWith("\n") {
		t.Error("EndsWith(\"\\n\") = false, want true")
	}
	if last, _ := b.LastByte(); last != '\n' {
		t.Errorf("LastByte() = %q, want '\\n'", last)
	}

	b.Annotate(Annotation{Kind: Bold, Start: 0, End: 5})
	got := b.Annotations()
	want := []Annotation{{Kind: Bold, Start: 0, End: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Annotations() = %+v, want %+v", got, want)
	}

	// Returned slice is a copy.
	got[0].End = 1
	if b.Annotations()[0].End != 5 {
		t.Error("Annotations() exposed internal storage")
	}
}

func TestBuffer_AnnotateOutOfRangePanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ann  Annotation
	}{
		{name: "negative start", ann: Annotation{Kind: Bold, Start: -1, End: 2}},
		{name: "inverted", ann: Annotation{Kind: Bold, Start: 3, End: 2}},
		{name: "past end", ann: Annotation{Kind: Bold, Start: 0, End: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var b Buffer
			b.WriteString("abc")
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic, got none")
				}
				if msg, ok := r.(string); !ok || !strings.Contains(msg, "outside text") {
					t.Errorf("panic = %v, want message about range", r)
				}
			}()
			b.Annotate(tt.ann)
		})
	}
}

func TestTrim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		anns     []Annotation
		wantText string
		wantAnns []Annotation
	}{
		{
			name:     "surrounding whitespace",
			text:     " \nhello \n ",
			anns:     []Annotation{{Kind: Bold, Start: 0, End: 10}},
			wantText: "hello",
			wantAnns: []Annotation{{Kind: Bold, Start: 0, End: 5}},
		},
		{
			name:     "nothing to trim",
			text:     "abc",
			anns:     []Annotation{{Kind: Italic, Start: 1, End: 2}},
			wantText: "abc",
			wantAnns: []Annotation{{Kind: Italic, Start: 1, End: 2}},
		},
		{
			name:     "annotation entirely in trimmed prefix is dropped",
			text:     "\n\nabc",
			anns:     []Annotation{{Kind: Quote, Start: 0, End: 2}, {Kind: Bold, Start: 2, End: 5}},
			wantText: "abc",
			wantAnns: []Annotation{{Kind: Bold, Start: 0, End: 3}},
		},
		{
			name:     "annotation entirely in trimmed suffix is dropped",
			text:     "abc\n\n",
			anns:     []Annotation{{Kind: CenterAlign, Start: 3, End: 5}},
			wantText: "abc",
			wantAnns: []Annotation{},
		},
		{
			name:     "all whitespace",
			text:     " \t\n ",
			anns:     []Annotation{{Kind: Bold, Start: 0, End: 4}},
			wantText: "",
			wantAnns: []Annotation{},
		},
		{
			name:     "unicode whitespace",
			text:     "\u2003x\u00a0",
			anns:     []Annotation{{Kind: Bold, Start: 0, End: 6}},
			wantText: "x",
			wantAnns: []Annotation{{Kind: Bold, Start: 0, End: 1}},
		},
		{
			name:     "payload preserved",
			text:     " link ",
			anns:     []Annotation{{Kind: Link, Start: 1, End: 5, URL: "http://example.com/"}},
			wantText: "link",
			wantAnns: []Annotation{{Kind: Link, Start: 0, End: 4, URL: "http://example.com/"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotText, gotAnns := TrimSpace(tt.text, tt.anns)
			if gotText != tt.wantText {
				t.Errorf("text = %q, want %q", gotText, tt.wantText)
			}
			if !reflect.DeepEqual(gotAnns, tt.wantAnns) {
				t.Errorf("annotations = %+v, want %+v", gotAnns, tt.wantAnns)
			}
		})
	}
}

func TestTrim_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{" \nhello \n ", "", "   ", "a", "\n\n• item\n\n", "x\u00a0y "}
	for _, in := range inputs {
		anns := []Annotation{{Kind: Bold, Start: 0, End: len(in)}}
		once, onceAnns := TrimSpace(in, anns)
		twice, twiceAnns := TrimSpace(once, onceAnns)
		if once != twice {
			t.Errorf("TrimSpace(%q): second pass changed text %q -> %q", in, once, twice)
		}
		if !reflect.DeepEqual(onceAnns, twiceAnns) {
			t.Errorf("TrimSpace(%q): second pass changed annotations %+v -> %+v", in, onceAnns, twiceAnns)
		}
	}
}

func TestTrim_ClampsBounds(t *testing.T) {
	t.Parallel()

	text, anns := Trim("  ab  ", []Annotation{{Kind: Bold, Start: 2, End: 4}}, -5, 100)
	if text != "ab" {
		t.Errorf("text = %q, want %q", text, "ab")
	}
	want := []Annotation{{Kind: Bold, Start: 0, End: 2}}
	if !reflect.DeepEqual(anns, want) {
		t.Errorf("annotations = %+v, want %+v", anns, want)
	}
}

func TestToUTF16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		anns []Annotation
		want []Annotation
	}{
		{
			name: "ascii unchanged",
			text: "hello",
			anns: []Annotation{{Kind: Bold, Start: 1, End: 4}},
			want: []Annotation{{Kind: Bold, Start: 1, End: 4}},
		},
		{
			name: "three byte rune is one unit",
			text: "a€b",
			anns: []Annotation{{Kind: Bold, Start: 4, End: 5}},
			want: []Annotation{{Kind: Bold, Start: 2, End: 3}},
		},
		{
			name: "astral rune is two units",
			text: "😀x",
			anns: []Annotation{{Kind: Italic, Start: 0, End: 5}},
			want: []Annotation{{Kind: Italic, Start: 0, End: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ToUTF16(tt.text, tt.anns)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ToUTF16() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
