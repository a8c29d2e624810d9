// Package diag formats parser errors for people: file position, a short
// message, and the offending source line with a caret under the token.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/colorstring"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"

	"github.com/FocuswithJustin/usfmkit/core/usfm"
)

// DefaultWidth is used when the output is not a terminal.
const DefaultWidth = 100

// Locate converts a byte offset in src to a 1-based line and column.
// Columns count runes.
func Locate(src string, offset int) (line, col int) {
	offset = max(0, min(offset, len(src)))
	before := src[:offset]
	line = strings.Count(before, "\n") + 1
	start := strings.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCountInString(before[start:]) + 1
}

// Message returns a one-line description of kind.
func Message(kind usfm.ErrorKind) string {
	switch kind {
	case usfm.ExpectedSelfClose:
		return `milestone is not closed with \*`
	case usfm.ExpectedAttributeValue:
		return "attribute has no value after '='"
	case usfm.ExpectedNumber:
		return "expected a chapter or verse number"
	case usfm.InvalidHeadingLevel:
		return "heading level is out of range"
	}
	return kind.String()
}

// Printer writes diagnostics to W.
type Printer struct {
	W io.Writer
	// Color enables ANSI styling.
	Color bool
	// Width is the widest source line printed; longer lines are cut.
	Width int
}

// NewPrinter returns a Printer for f, with color and the terminal width when
// f is a terminal.
func NewPrinter(f *os.File) *Printer {
	p := &Printer{W: f, Width: DefaultWidth}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		p.Color = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			p.Width = w
		}
	}
	return p
}

func (p *Printer) colorize(s string) string {
	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !p.Color,
		Reset:   true,
	}
	return c.Color(s)
}

// Print writes one diagnostic for e, found in src read from path.
func (p *Printer) Print(path, src string, e *usfm.ParseError) error {
	line, col := Locate(src, e.Token.Start)
	msg := Message(e.Kind)
	if e.Opening != nil {
		ol, oc := Locate(src, e.Opening.Start)
		msg = fmt.Sprintf("%s (opened at %d:%d)", msg, ol, oc)
	}

	source := sourceLine(src, e.Token.Start)
	caret := strings.Repeat(" ", ansi.PrintableRuneWidth(source.prefix))
	text := source.text
	if p.Width > 0 {
		text = truncate.StringWithTail(text, uint(p.Width), "…")
		if len(caret) >= p.Width {
			caret = strings.Repeat(" ", p.Width-1)
		}
	}

	_, err := fmt.Fprintf(p.W, "%s:%d:%d: %s %s\n    %s\n    %s\n",
		path, line, col,
		p.colorize("[bold][red]error:"), msg,
		text,
		p.colorize("[green]"+caret+"^"),
	)
	return err
}

// PrintAll writes a diagnostic for every error in doc and returns how many
// it wrote.
func (p *Printer) PrintAll(path, src string, doc *usfm.Document) (int, error) {
	for i, e := range doc.Errors {
		if err := p.Print(path, src, e); err != nil {
			return i, err
		}
	}
	return len(doc.Errors), nil
}

type lineView struct {
	// text is the whole line, tabs expanded to one space.
	text string
	// prefix is the part of the line before the offset.
	prefix string
}

func sourceLine(src string, offset int) lineView {
	offset = max(0, min(offset, len(src)))
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += offset
	}
	clean := strings.NewReplacer("\t", " ", "\r", "")
	return lineView{
		text:   clean.Replace(src[start:end]),
		prefix: clean.Replace(src[start:offset]),
	}
}
