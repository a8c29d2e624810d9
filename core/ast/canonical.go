package ast

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Canonicalize returns a normalized copy of nodes:
//
//   - nodes before the first Book are dropped
//   - adjacent body Text nodes are merged and their whitespace runs collapsed
//     to one space; heading and aligned Text is trimmed instead
//   - Text left empty after that is dropped
//   - a Break directly after a heading is dropped, and of two adjacent
//     Breaks only the later one survives
//   - trailing Breaks are dropped
//
// The input slice is not modified. Canonicalize is idempotent.
func Canonicalize(nodes []Node) []Node {
	c := canonicalizer{out: make([]Node, 0, len(nodes))}

	started := false
	for _, n := range nodes {
		if !started {
			if _, ok := n.(Book); !ok {
				continue
			}
			started = true
		}
		c.add(n)
	}
	c.flush()

	end := len(c.out)
	for end > 0 {
		if _, ok := c.out[end-1].(Break); !ok {
			break
		}
		end--
	}
	return c.out[:end]
}

type canonicalizer struct {
	out []Node

	// pending holds merged body text not yet appended to out.
	pending    strings.Builder
	hasPending bool
}

func (c *canonicalizer) add(n Node) {
	switch n := n.(type) {
	case Text:
		if n.IsSimple() {
			c.pending.WriteString(n.Content)
			c.hasPending = true
			return
		}
		n.Content = strings.TrimSpace(n.Content)
		if n.Content == "" {
			return
		}
		c.flush()
		c.out = append(c.out, n)
	case Break:
		c.flush()
		if len(c.out) > 0 {
			switch last := c.out[len(c.out)-1].(type) {
			case Text:
				if last.Heading != 0 {
					return
				}
			case Break:
				c.out = c.out[:len(c.out)-1]
			}
		}
		c.out = append(c.out, n)
	default:
		c.flush()
		c.out = append(c.out, n)
	}
}

func (c *canonicalizer) flush() {
	if !c.hasPending {
		return
	}
	content := CollapseSpace(c.pending.String())
	c.pending.Reset()
	c.hasPending = false
	if content != "" {
		c.out = append(c.out, Text{Content: content})
	}
}

// CollapseSpace replaces every run of Unicode whitespace in s with a single
// ASCII space. Leading and trailing runs are collapsed, not removed.
func CollapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
		} else {
			b.WriteString(s[i : i+size])
			inSpace = false
		}
		i += size
	}
	return b.String()
}
