package usfm

import "fmt"

// ErrorKind is the closed set of structural problems the parser records.
type ErrorKind int

const (
	// ExpectedSelfClose: a milestone was not closed by the generic \*.
	ExpectedSelfClose ErrorKind = iota + 1
	// ExpectedAttributeValue: an attribute key and '=' had no value after them.
	ExpectedAttributeValue
	// ExpectedNumber: a chapter or verse marker was not followed by a number.
	ExpectedNumber
	// InvalidHeadingLevel: a heading marker's level is out of range.
	InvalidHeadingLevel
)

var errorKindNames = map[ErrorKind]string{
	ExpectedSelfClose:      "expected_self_close",
	ExpectedAttributeValue: "expected_attribute_value",
	ExpectedNumber:         "expected_number",
	InvalidHeadingLevel:    "invalid_heading_level",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// MarshalText encodes k as its snake_case name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseError is a recoverable problem found while parsing. Token is the
// token that triggered it. For ExpectedSelfClose, Opening is the milestone
// marker that was left open.
type ParseError struct {
	Token   Token     `json:"token"`
	Kind    ErrorKind `json:"kind"`
	Opening *Token    `json:"opening,omitempty"`
}

func (e *ParseError) Error() string {
	if e.Opening != nil {
		return fmt.Sprintf("usfm: %s at offset %d (opened at %d)", e.Kind, e.Token.Start, e.Opening.Start)
	}
	return fmt.Sprintf("usfm: %s at offset %d", e.Kind, e.Token.Start)
}
