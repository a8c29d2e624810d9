package usfm

import (
	"errors"

	"github.com/FocuswithJustin/usfmkit/core/ast"
)

// Document is the result of parsing one buffer: the raw node sequence and
// every recoverable problem found along the way.
type Document struct {
	Nodes  []ast.Node    `json:"nodes"`
	Errors []*ParseError `json:"errors"`
}

// Canonical returns the canonicalized node sequence. d.Nodes is unchanged.
func (d *Document) Canonical() []ast.Node {
	return ast.Canonicalize(d.Nodes)
}

// Parse parses src. It never fails: malformed input yields a best-effort
// node sequence and a non-empty Errors list.
func Parse(src string) *Document {
	return NewParser(NewTokenizer(src)).Document()
}

// outcome is a handler's verdict on a marker.
type outcome int

const (
	// notApplicable passes the marker to the next handler.
	notApplicable outcome = iota
	// consumed ends dispatch for the marker.
	consumed
)

// handler processes an opening marker. A non-nil error is recorded and
// parsing continues with the next token.
type handler struct {
	name    string
	applies func(Tag) bool
	handle  func(p *Parser, tok Token, tag Tag) (outcome, error)
}

// Parser builds a Document from a Tokenizer, one token of lookahead at a
// time. Use a new Parser for each document.
type Parser struct {
	tz       *Tokenizer
	nodes    []ast.Node
	errs     []*ParseError
	section  int
	depth    int // open inline spans
	handlers []handler
}

// maxInlineDepth bounds inline span nesting. Openers deeper than this do
// not take their content; it is parsed by the enclosing span instead.
const maxInlineDepth = 256

// NewParser returns a Parser reading from tz.
func NewParser(tz *Tokenizer) *Parser {
	p := &Parser{tz: tz, section: 1}
	// First match wins.
	p.handlers = []handler{
		{name: "marker", applies: isReferenceMarker, handle: (*Parser).marker},
		{name: "milestone", applies: Tag.IsMilestone, handle: (*Parser).milestone},
		{name: "inline", applies: Tag.IsInline, handle: (*Parser).inline},
		{name: "paragraph", applies: Tag.IsParagraph, handle: (*Parser).paragraph},
		{name: "character", applies: Tag.IsCharacter, handle: (*Parser).character},
	}
	return p
}

// Document parses until the end of input.
func (p *Parser) Document() *Document {
	for p.step() {
	}
	return &Document{Nodes: p.nodes, Errors: p.errs}
}

// step consumes one token and dispatches it, recording any error. It
// returns false at the end of input.
func (p *Parser) step() bool {
	tok := p.tz.Next()
	if tok.Kind == KindEOF {
		return false
	}
	if err := p.dispatch(tok); err != nil {
		p.record(err)
	}
	return true
}

func (p *Parser) dispatch(tok Token) error {
	if tok.Kind == KindTagOpen {
		if tag, err := Classify(p.tz.View(tok)); err == nil {
			for _, h := range p.handlers {
				if !h.applies(tag) {
					continue
				}
				out, err := h.handle(p, tok, tag)
				if err != nil {
					return err
				}
				if out == consumed {
					return nil
				}
			}
		}
	}
	p.text(tok)
	return nil
}

func (p *Parser) record(err error) {
	var perr *ParseError
	if errors.As(err, &perr) {
		p.errs = append(p.errs, perr)
	}
}

func (p *Parser) append(n ast.Node) {
	p.nodes = append(p.nodes, n)
}

// text emits a text token verbatim. Other token kinds are dropped.
func (p *Parser) text(tok Token) bool {
	if tok.Kind != KindText {
		return false
	}
	p.append(ast.Text{Content: p.tz.View(tok)})
	return true
}

// expect consumes the next token if it is of kind k.
func (p *Parser) expect(k Kind, fail ErrorKind) (Token, error) {
	tok := p.tz.Peek()
	if tok.Kind != k {
		return tok, &ParseError{Token: tok, Kind: fail}
	}
	return p.tz.Next(), nil
}

// maybeClose consumes the closing marker matching open, if it comes next.
func (p *Parser) maybeClose(open Token) bool {
	next := p.tz.Peek()
	if next.Kind != KindTagClose {
		return false
	}
	closeText := p.tz.View(next)
	if p.tz.View(open) != closeText[:len(closeText)-1] {
		return false
	}
	p.tz.Next()
	return true
}

// isSelfClose reports whether tok is the generic \* marker.
func (p *Parser) isSelfClose(tok Token) bool {
	return tok.Kind == KindTagClose && p.tz.View(tok) == `\*`
}
