package usfm

import "fmt"

// Kind is the lexical class of a Token.
type Kind int

const (
	KindEOF            Kind = iota // end of input, zero-length
	KindTagOpen                    // \p, \v, \zaln-s
	KindTagClose                   // \w*, \f*, or the generic \*
	KindText                       // literal text between markers
	KindAttributeStart             // | opening an attribute list
	KindID                         // attribute key or value
	KindKVSep                      // = between key and value
)

var kindNames = [...]string{
	KindEOF:            "eof",
	KindTagOpen:        "tag_open",
	KindTagClose:       "tag_close",
	KindText:           "text",
	KindAttributeStart: "attribute_start",
	KindID:             "id",
	KindKVSep:          "kv_sep",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes k as its snake_case name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a span of the source buffer. It owns no text; use
// Tokenizer.View to read it.
type Token struct {
	Kind  Kind `json:"kind"`
	Start int  `json:"start"`
	End   int  `json:"end"`
}

// Len returns the number of bytes the token spans.
func (t Token) Len() int {
	return t.End - t.Start
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End)
}
