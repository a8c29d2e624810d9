package ast

import (
	"fmt"
	"strconv"
)

// Node is one element of a flat document: a versification reference,
// a run of text, or a structural break.
//
// The set of node types is closed; only the types in this package
// implement Node.
type Node interface {
	node()
}

// Book starts a new book. Name is the book id as written in the source
// (e.g. "GEN").
type Book struct {
	Name string
}

// Section marks a division inside a book, such as the five books of Psalms.
// Index counts from 1 within the current book.
type Section struct {
	Index int
}

// Chapter starts a new chapter.
type Chapter struct {
	Number int
}

// Verse starts a new verse. Combined or paraphrased verses are ranges with
// End > Start; a single verse has End == Start.
type Verse struct {
	Start int
	End   int
}

// Text is a run of literal text. Heading is zero for body text.
type Text struct {
	Content string
	Heading HeadingLevel
	Align   Align
}

// Break is a structural boundary carrying no text.
type Break struct {
	Kind BreakKind
}

func (Book) node()    {}
func (Section) node() {}
func (Chapter) node() {}
func (Verse) node()   {}
func (Text) node()    {}
func (Break) node()   {}

// SingleVerse returns the Verse node for verse n.
func SingleVerse(n int) Verse {
	return Verse{Start: n, End: n}
}

// IsRange reports whether v covers more than one verse.
func (v Verse) IsRange() bool {
	return v.End > v.Start
}

// Contains reports whether verse n is covered by v.
func (v Verse) Contains(n int) bool {
	end := v.End
	if end < v.Start {
		end = v.Start
	}
	return n >= v.Start && n <= end
}

func (v Verse) String() string {
	if v.IsRange() {
		return strconv.Itoa(v.Start) + "-" + strconv.Itoa(v.End)
	}
	return strconv.Itoa(v.Start)
}

// IsSimple reports whether t is plain body text: no heading and no alignment.
func (t Text) IsSimple() bool {
	return t.Heading == 0 && t.Align == AlignNone
}

// HeadingLevel is an HTML-style heading level. Zero means "not a heading".
type HeadingLevel int

const (
	// MinHeading is the top level, reserved for book titles.
	MinHeading HeadingLevel = 1
	// MaxHeading is the deepest supported level.
	MaxHeading HeadingLevel = 6
)

// Valid reports whether h is within MinHeading..MaxHeading.
func (h HeadingLevel) Valid() bool {
	return h >= MinHeading && h <= MaxHeading
}

// Tag returns the HTML tag name for h, e.g. "h3", or "" for zero.
func (h HeadingLevel) Tag() string {
	if h == 0 {
		return ""
	}
	return "h" + strconv.Itoa(int(h))
}

func parseHeadingTag(s string) (HeadingLevel, error) {
	if len(s) != 2 || s[0] != 'h' {
		return 0, fmt.Errorf("invalid heading tag %q", s)
	}
	h := HeadingLevel(s[1] - '0')
	if !h.Valid() {
		return 0, fmt.Errorf("invalid heading tag %q", s)
	}
	return h, nil
}

// Align is the horizontal alignment of a text run.
type Align string

const (
	AlignNone   Align = ""
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// BreakKind distinguishes paragraph, block and line breaks.
type BreakKind string

const (
	BreakParagraph BreakKind = "paragraph"
	BreakBlock     BreakKind = "block"
	BreakLine      BreakKind = "line"
)
