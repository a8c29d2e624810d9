// Package ast defines the flat node sequence produced by the USFM parser.
//
// A document is a []Node rather than a tree. Versification is carried by
// reference nodes (Book, Section, Chapter, Verse) that apply to everything
// after them until the next reference of the same kind:
//
//	Book{GEN} Chapter{1} Text{"The Creation", h3} Verse{1} Text{"In the beginning..."}
//
// # Node types
//
//   - Book: a new book, named by its id
//   - Section: a division inside a book (Psalms' five books)
//   - Chapter, Verse: numbering; a Verse may be a range
//   - Text: literal text, optionally a heading or aligned
//   - Break: a paragraph, block or line boundary
//
// # Canonical form
//
// The parser's raw output keeps the source's whitespace and every break it
// saw. Canonicalize merges, trims and prunes that into the form renderers
// expect. Visitors walk either form with Walk.
package ast
