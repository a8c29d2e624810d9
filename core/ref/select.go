package ref

import (
	"strings"

	"github.com/FocuswithJustin/usfmkit/core/ast"
)

// Select returns the nodes of nodes that fall inside r, in order.
//
// Book and Chapter nodes are kept when r covers them, so the result still
// reads as a document. Other nodes belong to the latest Book, Chapter and
// Verse before them; a heading between two verses goes with the earlier one.
// Nodes before the first Verse of a chapter are kept only when r names no
// verse.
func Select(nodes []ast.Node, r *Ref) []ast.Node {
	var (
		out      []ast.Node
		book     string
		chapter  int
		verse    ast.Verse
		hasVerse bool
	)

	for _, n := range nodes {
		var keep bool
		switch n := n.(type) {
		case ast.Book:
			book, chapter, hasVerse = n.Name, 0, false
			keep = strings.EqualFold(r.Book, book)
		case ast.Chapter:
			chapter, hasVerse = n.Number, false
			keep = book != "" && r.hasChapter(book, chapter)
		case ast.Verse:
			verse, hasVerse = n, true
			keep = r.overlaps(book, chapter, verse)
		default:
			if hasVerse {
				keep = r.overlaps(book, chapter, verse)
			} else {
				keep = !r.VerseSet() && r.hasChapter(book, chapter)
			}
		}
		if keep {
			out = append(out, n)
		}
	}
	return out
}
