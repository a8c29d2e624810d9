package usfm

const (
	// openTagSpace bounds the whitespace skipped after an opening marker.
	// "\v 1" needs one; more than two is left as text.
	openTagSpace = 2
	// attributeSpace bounds the whitespace skipped inside attribute lists.
	attributeSpace = 257
)

// Tokenizer splits a USFM buffer into Tokens. Its state is a cursor into the
// buffer and whether it is inside an attribute list, so saving and restoring
// it for lookahead is cheap.
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	src         string
	pos         int
	inAttribute bool
}

// NewTokenizer returns a Tokenizer positioned at the start of src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Tokenize returns every token of src, ending with the eof token.
func Tokenize(src string) []Token {
	tz := NewTokenizer(src)
	var tokens []Token
	for {
		tok := tz.Next()
		tokens = append(tokens, tok)
		if tok.Kind == KindEOF {
			return tokens
		}
	}
}

// Source returns the buffer being tokenized.
func (tz *Tokenizer) Source() string {
	return tz.src
}

// Pos returns the cursor offset.
func (tz *Tokenizer) Pos() int {
	return tz.pos
}

// Seek moves the cursor to offset pos, clamped to the buffer.
func (tz *Tokenizer) Seek(pos int) {
	tz.pos = max(0, min(pos, len(tz.src)))
}

// View returns the text a token spans.
func (tz *Tokenizer) View(tok Token) string {
	return tz.src[tok.Start:tok.End]
}

// Peek returns the token the next call to Next will return, without
// advancing.
func (tz *Tokenizer) Peek() Token {
	pos, inAttribute := tz.pos, tz.inAttribute
	tok := tz.Next()
	tz.pos, tz.inAttribute = pos, inAttribute
	return tok
}

// Next returns the next token and advances past it. At the end of the buffer
// it returns a zero-length eof token, and keeps returning it.
func (tz *Tokenizer) Next() Token {
	start := tz.pos
	if tz.pos >= len(tz.src) {
		return Token{Kind: KindEOF, Start: start, End: start}
	}

	c := tz.src[tz.pos]
	tz.pos++

	switch {
	case c == '\\':
		tz.inAttribute = false
		tz.scanUntil(isMarkerEnd)
		tok := Token{Start: start, End: tz.pos}
		if tz.src[tz.pos-1] == '*' {
			tok.Kind = KindTagClose
			return tok
		}
		tok.Kind = KindTagOpen
		tz.skipSpace(openTagSpace)
		return tok

	case c == '|':
		tz.inAttribute = true
		tz.skipSpace(attributeSpace)
		return Token{Kind: KindAttributeStart, Start: start, End: start + 1}

	case tz.inAttribute && c == '=':
		tz.skipSpace(attributeSpace)
		return Token{Kind: KindKVSep, Start: start, End: start + 1}

	case tz.inAttribute && c == '"':
		tok := tz.scanQuoted(start)
		tz.skipSpace(attributeSpace)
		return tok

	case tz.inAttribute:
		tz.scanUntil(isIDEnd)
		tok := Token{Kind: KindID, Start: start, End: tz.pos}
		tz.skipSpace(attributeSpace)
		return tok

	default:
		tz.inAttribute = false
		tz.scanUntil(isTextEnd)
		return Token{Kind: KindText, Start: start, End: tz.pos}
	}
}

// scanUntil advances to the next byte for which end reports true. A '*'
// terminator is consumed; any other terminator is left for the next token.
func (tz *Tokenizer) scanUntil(end func(byte) bool) {
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		if end(c) {
			if c == '*' {
				tz.pos++
			}
			return
		}
		tz.pos++
	}
}

// scanQuoted reads the attribute value opened by the quote at offset quote
// and returns it as an id token without the quotes. \" does not terminate
// the value. An unterminated value runs to the end of the buffer.
func (tz *Tokenizer) scanQuoted(quote int) Token {
	escaped := false
	for tz.pos < len(tz.src) {
		c := tz.src[tz.pos]
		tz.pos++
		if c == '"' && !escaped {
			return Token{Kind: KindID, Start: quote + 1, End: tz.pos - 1}
		}
		escaped = c == '\\'
	}
	return Token{Kind: KindID, Start: quote + 1, End: tz.pos}
}

// skipSpace skips at most limit whitespace bytes.
func (tz *Tokenizer) skipSpace(limit int) {
	for n := 0; n < limit && tz.pos < len(tz.src) && isSpace(tz.src[tz.pos]); n++ {
		tz.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isMarkerEnd(c byte) bool {
	return isSpace(c) || c == '*' || c == '\\' || c == '|'
}

func isIDEnd(c byte) bool {
	return isSpace(c) || c == '=' || c == '\\'
}

func isTextEnd(c byte) bool {
	return c == '|' || c == '\\'
}
