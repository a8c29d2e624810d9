// Package html renders a node sequence as an HTML fragment.
package html

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	nethtml "golang.org/x/net/html"

	"github.com/FocuswithJustin/usfmkit/core/ast"
	"github.com/FocuswithJustin/usfmkit/core/errors"
)

// Renderer writes HTML for nodes. A Break is skipped unless inline content
// follows it. Paragraphs opened by Break nodes close
// before the next block-level element and at the end of Render. Void
// elements are self-closed, so the output is also well-formed XML.
type Renderer struct {
	w   io.Writer
	err error

	// ChapterLabel returns the heading of a chapter.
	ChapterLabel func(n int) string
	// SectionLabel returns the heading of a section, such as the books of
	// Psalms.
	SectionLabel func(n int) string

	inParagraph bool
}

// New returns a Renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{
		w:            w,
		ChapterLabel: func(n int) string { return "Chapter " + strconv.Itoa(n) },
		SectionLabel: func(n int) string { return "Book " + strconv.Itoa(n) },
	}
}

// Render writes nodes. It fails on the first write error or on a node type
// it does not know.
func (r *Renderer) Render(nodes []ast.Node) error {
	for i, n := range nodes {
		if _, ok := n.(ast.Break); ok && (i+1 == len(nodes) || !isInline(nodes[i+1])) {
			continue
		}
		if err := ast.Visit(r, n, i); err != nil {
			return err
		}
		if r.err != nil {
			return r.err
		}
	}
	if r.inParagraph {
		r.endParagraph()
	}
	return r.err
}

// isInline reports whether n renders inside a paragraph.
func isInline(n ast.Node) bool {
	switch n := n.(type) {
	case ast.Verse:
		return true
	case ast.Text:
		return n.Heading == 0
	}
	return false
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

func (r *Renderer) startTag(tag string, inline bool, class string) {
	if r.inParagraph && !inline {
		r.endParagraph()
	}
	if class != "" {
		r.write(fmt.Sprintf("<%s class=\"%s\">", tag, nethtml.EscapeString(class)))
		return
	}
	r.write("<" + tag + ">")
}

func (r *Renderer) endTag(tag string) {
	r.write("</" + tag + ">")
}

func (r *Renderer) element(tag string, inline bool, class, text string) {
	r.startTag(tag, inline, class)
	r.write(nethtml.EscapeString(text))
	r.endTag(tag)
}

func (r *Renderer) startParagraph(class string) {
	r.startTag("p", false, class)
	r.inParagraph = true
}

func (r *Renderer) endParagraph() {
	r.endTag("p")
	r.inParagraph = false
}

func (r *Renderer) Book(b ast.Book, _ int) error {
	r.element("h1", false, "", BookName(b.Name))
	return nil
}

func (r *Renderer) Section(s ast.Section, _ int) error {
	r.element("h2", false, "", r.SectionLabel(s.Index))
	return nil
}

func (r *Renderer) Chapter(c ast.Chapter, _ int) error {
	r.element("h2", false, "", r.ChapterLabel(c.Number))
	return nil
}

func (r *Renderer) Verse(v ast.Verse, _ int) error {
	r.element("sup", true, "", v.String())
	return nil
}

func (r *Renderer) Text(t ast.Text, _ int) error {
	if t.Content == "" {
		return nil
	}
	var class string
	if t.Align != ast.AlignNone {
		class = "align-" + string(t.Align)
	}
	if t.Heading != 0 {
		r.element(t.Heading.Tag(), false, class, t.Content)
		return nil
	}

	text := trimTrailingSpace(t.Content)
	if class != "" {
		r.element("span", true, class, text)
		return nil
	}
	r.write(nethtml.EscapeString(text))
	return nil
}

func (r *Renderer) Break(b ast.Break, _ int) error {
	switch b.Kind {
	case ast.BreakParagraph:
		r.startParagraph("")
	case ast.BreakBlock:
		r.startParagraph(string(ast.BreakBlock))
	case ast.BreakLine:
		if r.inParagraph {
			r.write("<br/>")
		}
	default:
		return errors.NewUnsupported("break kind", strconv.Quote(string(b.Kind)))
	}
	return nil
}

// trimTrailingSpace replaces trailing whitespace with a single space.
func trimTrailingSpace(s string) string {
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	if len(trimmed) == len(s) {
		return s
	}
	return trimmed + " "
}
