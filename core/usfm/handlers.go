package usfm

import (
	"regexp"
	"strconv"

	"github.com/FocuswithJustin/usfmkit/core/ast"
)

// Reference markers carry versification: \id, \c, \v, and \ts which counts
// sections within a book.
var referenceMarkers = newMarkerSet("id", "c", "v", "ts")

// Inline markers whose content is kept. Everything else inline (footnotes,
// cross references, study notes) is parsed and then dropped.
var keptInlineMarkers = newMarkerSet(
	"w",     // word
	"qs",    // selah
	"qac",   // acrostic letter
	"litl",  // list entry total
	"lik",   // list entry key
	"liv",   // list entry value
	"add",   // translator addition
	"k",     // keyword
	"nd",    // name of deity
	"ord",   // ordinal ending
	"pn",    // proper name
	"png",   // geographic name
	"addpn", // add + pn
	"qt",    // quoted text
	"sig",   // signature
	"sls",   // secondary language source
	"tl",    // transliterated
	"wj",    // words of Jesus
	"em",    // emphasis
	"bd",    // bold
	"it",    // italic
	"bdit",  // bold italic
	"no",    // normal
	"sc",    // small caps
	"sup",   // superscript
)

// Paragraph markers that become block breaks.
var blockMarkers = newMarkerSet("pm", "pmo", "pmc", "pmr", "q", "qm", "qd")

type alignment struct {
	brk   ast.BreakKind
	align ast.Align
}

// Paragraph markers whose text is aligned.
var alignedMarkers = map[string]alignment{
	"qr":  {ast.BreakBlock, ast.AlignRight},
	"qc":  {ast.BreakBlock, ast.AlignCenter},
	"pmr": {ast.BreakBlock, ast.AlignRight},
	"pmc": {ast.BreakBlock, ast.AlignCenter},
	"pr":  {ast.BreakParagraph, ast.AlignRight},
	"pc":  {ast.BreakParagraph, ast.AlignCenter},
}

const (
	// headingOffset reserves h1 and h2 for book and chapter titles.
	headingOffset = 2
	maxHeadingTag = int(ast.MaxHeading) - headingOffset
)

var (
	bookWord    = regexp.MustCompile(`^\w+`)
	chapterNum  = regexp.MustCompile(`^[ \t]*(\d+)\s*`)
	verseNumber = regexp.MustCompile(`^[ \t]*(\d+)(?:-(\d+))?\s*`)
)

func isReferenceMarker(t Tag) bool {
	return referenceMarkers.has(t.Name)
}

// marker handles \id, \c, \v and \ts.
func (p *Parser) marker(tok Token, tag Tag) (outcome, error) {
	switch tag.Name {
	case "ts":
		p.append(ast.Section{Index: p.section})
		p.section++
		if p.isSelfClose(p.tz.Peek()) {
			p.tz.Next()
		}
		return consumed, nil

	case "id":
		next := p.tz.Peek()
		if next.Kind != KindText {
			return consumed, nil
		}
		p.tz.Next()
		if name := bookWord.FindString(p.tz.View(next)); name != "" {
			p.append(ast.Book{Name: name})
			p.section = 1
		}
		return consumed, nil
	}

	next := p.tz.Peek()
	if next.Kind != KindText {
		return consumed, &ParseError{Token: tok, Kind: ExpectedNumber}
	}
	text := p.tz.View(next)

	// Numbers run straight into the verse text, so the cursor is moved to
	// just after the number instead of past the whole text token.
	if tag.Name == "v" {
		if m := verseNumber.FindStringSubmatchIndex(text); m != nil {
			start, err1 := strconv.Atoi(text[m[2]:m[3]])
			if err1 == nil && m[4] >= 0 {
				if end, err2 := strconv.Atoi(text[m[4]:m[5]]); err2 == nil && end >= start {
					p.tz.Seek(next.Start + m[1])
					p.append(ast.Verse{Start: start, End: end})
					return consumed, nil
				}
			}
		}
	}

	m := chapterNum.FindStringSubmatchIndex(text)
	if m == nil {
		return consumed, &ParseError{Token: tok, Kind: ExpectedNumber}
	}
	n, err := strconv.Atoi(text[m[2]:m[3]])
	if err != nil {
		return consumed, &ParseError{Token: tok, Kind: ExpectedNumber}
	}
	p.tz.Seek(next.Start + m[1])
	if tag.Name == "c" {
		p.append(ast.Chapter{Number: n})
	} else {
		p.append(ast.SingleVerse(n))
	}
	return consumed, nil
}

// milestone handles \qt-s, \zaln-e and the like: attributes, then \*.
func (p *Parser) milestone(tok Token, tag Tag) (outcome, error) {
	if _, err := p.attributes(tag); err != nil {
		return consumed, err
	}
	next := p.tz.Peek()
	if next.Kind == KindTagClose {
		p.tz.Next()
		if p.isSelfClose(next) {
			return consumed, nil
		}
	}
	opening := tok
	return consumed, &ParseError{Token: next, Kind: ExpectedSelfClose, Opening: &opening}
}

// inline handles markers like \f ... \f* whose content is parsed as if it
// were top level. Content of markers not in keptInlineMarkers is dropped.
func (p *Parser) inline(tok Token, tag Tag) (outcome, error) {
	if p.depth >= maxInlineDepth {
		if _, err := p.attributes(tag); err != nil {
			return consumed, err
		}
		p.maybeClose(tok)
		return consumed, nil
	}

	mark := len(p.nodes)
	p.depth++
	for {
		k := p.tz.Peek().Kind
		if k != KindTagOpen && k != KindText {
			break
		}
		p.step()
	}
	p.depth--
	if !keptInlineMarkers.has(tag.Name) {
		clear(p.nodes[mark:])
		p.nodes = p.nodes[:mark]
	}

	if _, err := p.attributes(tag); err != nil {
		return consumed, err
	}
	p.maybeClose(tok)
	return consumed, nil
}

// paragraph handles block-level markers.
func (p *Parser) paragraph(tok Token, tag Tag) (outcome, error) {
	if tag.IsHeading() {
		return p.heading(tok, tag)
	}
	if tag.Name == "b" {
		p.append(ast.Break{Kind: ast.BreakLine})
		return consumed, nil
	}
	if a, ok := alignedMarkers[tag.Name]; ok {
		p.append(ast.Break{Kind: a.brk})
		if next := p.tz.Peek(); next.Kind == KindText {
			p.tz.Next()
			p.append(ast.Text{Content: p.tz.View(next), Align: a.align})
		}
		return consumed, nil
	}
	if blockMarkers.has(tag.Name) {
		p.append(ast.Break{Kind: ast.BreakBlock})
		return consumed, nil
	}
	p.append(ast.Break{Kind: ast.BreakParagraph})
	return consumed, nil
}

// heading turns a heading marker and its text into a heading Text node.
// \toc1 is the book title; other \toc levels are dropped.
func (p *Parser) heading(tok Token, tag Tag) (outcome, error) {
	next := p.tz.Peek()
	if next.Kind != KindText {
		return consumed, nil
	}
	p.tz.Next()
	text := p.tz.View(next)
	level := tag.LevelOr(1)

	if tag.Name == "toc" {
		if level == 1 {
			p.append(ast.Text{Content: text, Heading: ast.MinHeading})
		}
		return consumed, nil
	}

	if level < 1 || level > maxHeadingTag {
		return consumed, &ParseError{Token: tok, Kind: InvalidHeadingLevel}
	}
	p.append(ast.Text{Content: text, Heading: ast.HeadingLevel(level + headingOffset)})
	return consumed, nil
}

// character handles character styling such as \xt ... \xt*. Only the text
// is kept.
func (p *Parser) character(tok Token, tag Tag) (outcome, error) {
	found := p.text(p.tz.Peek())
	if found {
		p.tz.Next()
	}
	if _, err := p.attributes(tag); err != nil {
		return consumed, err
	}
	p.maybeClose(tok)
	if !found {
		return notApplicable, nil
	}
	return consumed, nil
}
