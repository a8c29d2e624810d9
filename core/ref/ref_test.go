package ref

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	usfmerrors "github.com/FocuswithJustin/usfmkit/core/errors"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		input string
		want  Ref
		str   string
	}{
		{"PSA", Ref{Book: "PSA"}, "PSA"},
		{"gen", Ref{Book: "GEN"}, "GEN"},
		{"1SA 3", Ref{Book: "1SA", Chapter: 3}, "1SA 3"},
		{"GEN 1:2", Ref{Book: "GEN", Chapter: 1, Verse: 2}, "GEN 1:2"},
		{"GEN 1:2-3", Ref{Book: "GEN", Chapter: 1, Verse: 2, VerseEnd: 3}, "GEN 1:2-3"},
		{"GEN.1.2-3", Ref{Book: "GEN", Chapter: 1, Verse: 2, VerseEnd: 3}, "GEN 1:2-3"},
		{"GEN.1", Ref{Book: "GEN", Chapter: 1}, "GEN 1"},
		{"  JHN 3:16  ", Ref{Book: "JHN", Chapter: 3, Verse: 16}, "JHN 3:16"},
		{"PS2 1", Ref{Book: "PS2", Chapter: 1}, "PS2 1"},
		{"MAT 5:3-3", Ref{Book: "MAT", Chapter: 5, Verse: 3, VerseEnd: 3}, "MAT 5:3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRef(tt.input)
			if err != nil {
				t.Fatalf("ParseRef(%q) error: %v", tt.input, err)
			}
			if *got != tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.input, *got, tt.want)
			}
			if s := got.String(); s != tt.str {
				t.Errorf("String() = %q, want %q", s, tt.str)
			}
		})
	}
}

func TestParseRefErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "1:2", "GEN 1:", "GEN 1:2-", "GEN 0", "GEN 1:0", "GEN 1:5-2", "GEN 1:2:3"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRef(input)
			if err == nil {
				t.Fatalf("ParseRef(%q) error = nil", input)
			}
			if !errors.Is(err, usfmerrors.ErrInvalidInput) {
				t.Errorf("ParseRef(%q) error = %v, want ErrInvalidInput", input, err)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := &Ref{Book: "GEN", Chapter: 1, Verse: 2, VerseEnd: 4}
	tests := []struct {
		book           string
		chapter, verse int
		want           bool
	}{
		{"GEN", 1, 2, true},
		{"gen", 1, 4, true},
		{"GEN", 1, 1, false},
		{"GEN", 1, 5, false},
		{"GEN", 2, 3, false},
		{"EXO", 1, 3, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.book, tt.chapter, tt.verse); got != tt.want {
			t.Errorf("Contains(%s, %d, %d) = %v, want %v", tt.book, tt.chapter, tt.verse, got, tt.want)
		}
	}

	book := &Ref{Book: "GEN"}
	if !book.Contains("GEN", 50, 26) {
		t.Error("book reference does not contain GEN 50:26")
	}
	chapter := &Ref{Book: "GEN", Chapter: 1}
	if !chapter.Contains("GEN", 1, 31) || chapter.Contains("GEN", 2, 1) {
		t.Error("chapter reference containment wrong")
	}
}

func TestSelect(t *testing.T) {
	heading := ast.Text{Content: "The First Day", Heading: 4}
	nodes := []ast.Node{
		ast.Book{Name: "GEN"},
		ast.Text{Content: "Genesis", Heading: 1},
		ast.Chapter{Number: 1},
		ast.Text{Content: "The Creation", Heading: 3},
		ast.SingleVerse(1),
		ast.Text{Content: "one "},
		ast.SingleVerse(2),
		ast.Text{Content: "two "},
		heading,
		ast.Verse{Start: 3, End: 4},
		ast.Text{Content: "three four "},
		ast.Break{Kind: ast.BreakParagraph},
		ast.Chapter{Number: 2},
		ast.SingleVerse(1),
		ast.Text{Content: "again "},
		ast.Book{Name: "EXO"},
		ast.Chapter{Number: 1},
		ast.SingleVerse(1),
		ast.Text{Content: "exodus "},
	}

	tests := []struct {
		ref  string
		want []ast.Node
	}{
		{
			ref: "GEN 1:2",
			want: []ast.Node{
				ast.Book{Name: "GEN"},
				ast.Chapter{Number: 1},
				ast.SingleVerse(2),
				ast.Text{Content: "two "},
				heading,
			},
		},
		{
			ref: "gen 1:4",
			want: []ast.Node{
				ast.Book{Name: "GEN"},
				ast.Chapter{Number: 1},
				ast.Verse{Start: 3, End: 4},
				ast.Text{Content: "three four "},
				ast.Break{Kind: ast.BreakParagraph},
			},
		},
		{
			ref: "GEN 2",
			want: []ast.Node{
				ast.Book{Name: "GEN"},
				ast.Chapter{Number: 2},
				ast.SingleVerse(1),
				ast.Text{Content: "again "},
			},
		},
		{
			ref:  "EXO",
			want: nodes[15:],
		},
		{
			ref:  "LEV 1:1",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			r, err := ParseRef(tt.ref)
			if err != nil {
				t.Fatalf("ParseRef(%q) error: %v", tt.ref, err)
			}
			if diff := cmp.Diff(tt.want, Select(nodes, r)); diff != "" {
				t.Errorf("Select(%s) mismatch (-want +got):\n%s", tt.ref, diff)
			}
		})
	}
}
