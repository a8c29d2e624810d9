package usfm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidTag is returned by Classify for text that is not a marker.
var ErrInvalidTag = errors.New("usfm: invalid tag")

// markerRegex splits "\qt4-s" into core "qt", level "4" and suffix "-s".
var markerRegex = regexp.MustCompile(`^\\([^0-9]*)([0-9]+)?(-e|-s|\*)?$`)

// Tag is a classified marker. Milestone and close suffixes stay on Name;
// the numeric level does not: "\qt4-s" is {Name: "qt-s", Level: 4}.
type Tag struct {
	Name     string
	Level    int
	HasLevel bool
}

// Classify parses marker text such as "\toc3" or "\zaln-s" into a Tag.
func Classify(text string) (Tag, error) {
	m := markerRegex.FindStringSubmatch(text)
	if m == nil {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTag, text)
	}

	tag := Tag{Name: m[1] + m[3]}
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return Tag{}, fmt.Errorf("%w: %q: level: %v", ErrInvalidTag, text, err)
		}
		tag.Level = n
		tag.HasLevel = true
	}
	return tag, nil
}

// LevelOr returns the tag's level, or def when it has none.
func (t Tag) LevelOr(def int) int {
	if t.HasLevel {
		return t.Level
	}
	return def
}

func (t Tag) String() string {
	if t.HasLevel {
		return fmt.Sprintf("%s(%d)", t.Name, t.Level)
	}
	return t.Name
}

// IsParagraph reports whether t starts a block-level element.
func (t Tag) IsParagraph() bool { return paragraphMarkers.has(t.Name) }

// IsInline reports whether t carries sub-content up to a closing marker,
// such as a footnote or a word with attributes.
func (t Tag) IsInline() bool { return inlineMarkers.has(t.Name) }

// IsMilestoneStart reports whether t opens a milestone pair.
func (t Tag) IsMilestoneStart() bool { return strings.HasSuffix(t.Name, "-s") }

// IsMilestoneEnd reports whether t closes a milestone pair.
func (t Tag) IsMilestoneEnd() bool { return strings.HasSuffix(t.Name, "-e") }

// IsMilestone reports whether t is either half of a milestone pair.
func (t Tag) IsMilestone() bool { return t.IsMilestoneStart() || t.IsMilestoneEnd() }

// IsCharacter reports whether t is a character-level marker, which is any
// marker that is neither a milestone nor a paragraph marker.
func (t Tag) IsCharacter() bool { return !t.IsMilestone() && !t.IsParagraph() }

// IsHeading reports whether t's text is a title, heading or label.
func (t Tag) IsHeading() bool { return headingMarkers.has(t.Name) }

// IsClose reports whether t is a closing marker.
func (t Tag) IsClose() bool { return strings.HasSuffix(t.Name, "*") }

