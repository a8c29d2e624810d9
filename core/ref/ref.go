// Package ref parses passage references such as "GEN 1:2-3" and selects the
// matching part of a node sequence.
package ref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	"github.com/FocuswithJustin/usfmkit/core/errors"
)

// Ref is a passage reference. Zero Chapter means the whole book; zero Verse
// means the whole chapter.
type Ref struct {
	// Book is the USFM book id, upper case (e.g. "GEN", "1SA").
	Book string `json:"book"`

	Chapter int `json:"chapter,omitempty"`
	Verse   int `json:"verse,omitempty"`

	// VerseEnd is the last verse of a range, or zero.
	VerseEnd int `json:"verse_end,omitempty"`
}

// refGrammar accepts "GEN", "GEN 1", "GEN 1:2", "GEN 1:2-3" and the dotted
// forms "GEN.1.2-3".
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string       `@Int?`
	BookName   string       `@Ident`
	ChapterRef *chapterPart `( "."? @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterPart struct {
	Chapter  int        `@Int`
	VerseRef *versePart `( ( ":" | "." ) @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type versePart struct {
	Verse int  `@Int`
	Range *int `( "-" @Int )?`
}

// Book ids may contain digits after the first letter ("PS2", "S3Y").
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9]*`},
	{Name: "Punct", Pattern: `[.:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseRef parses a passage reference. Book ids are case-insensitive.
func ParseRef(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NewParse("reference", s, "empty reference", nil)
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, errors.NewParse("reference", s, err.Error(), nil)
	}

	r := &Ref{Book: strings.ToUpper(parsed.BookPrefix + parsed.BookName)}
	if c := parsed.ChapterRef; c != nil {
		if c.Chapter < 1 {
			return nil, errors.NewValidation("chapter", "chapter numbers start at 1")
		}
		r.Chapter = c.Chapter
		if v := c.VerseRef; v != nil {
			if v.Verse < 1 {
				return nil, errors.NewValidation("verse", "verse numbers start at 1")
			}
			r.Verse = v.Verse
			if v.Range != nil {
				if *v.Range < v.Verse {
					return nil, errors.NewValidation("verse", fmt.Sprintf("range end %d before start %d", *v.Range, v.Verse))
				}
				r.VerseEnd = *v.Range
			}
		}
	}
	return r, nil
}

// ChapterSet reports whether r names a chapter.
func (r *Ref) ChapterSet() bool { return r.Chapter != 0 }

// VerseSet reports whether r names a verse or verse range.
func (r *Ref) VerseSet() bool { return r.Verse != 0 }

// IsRange returns true if this reference spans multiple verses.
func (r *Ref) IsRange() bool {
	return r.VerseEnd > r.Verse
}

func (r *Ref) lastVerse() int {
	if r.IsRange() {
		return r.VerseEnd
	}
	return r.Verse
}

// String formats r as "GEN 1:2-3".
func (r *Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	if r.Chapter > 0 {
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(r.Chapter))
		if r.Verse > 0 {
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(r.Verse))
			if r.IsRange() {
				sb.WriteString("-")
				sb.WriteString(strconv.Itoa(r.VerseEnd))
			}
		}
	}
	return sb.String()
}

// Contains reports whether verse of chapter in book falls inside r.
func (r *Ref) Contains(book string, chapter, verse int) bool {
	if !strings.EqualFold(r.Book, book) {
		return false
	}
	if r.Chapter == 0 {
		return true
	}
	if r.Chapter != chapter {
		return false
	}
	if r.Verse == 0 {
		return true
	}
	return verse >= r.Verse && verse <= r.lastVerse()
}

func (r *Ref) hasChapter(book string, chapter int) bool {
	return strings.EqualFold(r.Book, book) && (r.Chapter == 0 || r.Chapter == chapter)
}

// overlaps reports whether any verse of v falls inside r.
func (r *Ref) overlaps(book string, chapter int, v ast.Verse) bool {
	if !r.VerseSet() {
		return r.hasChapter(book, chapter)
	}
	if !r.hasChapter(book, chapter) {
		return false
	}
	return v.Start <= r.lastVerse() && max(v.End, v.Start) >= r.Verse
}
