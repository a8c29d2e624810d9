package ast

import (
	"fmt"

	"github.com/FocuswithJustin/usfmkit/core/errors"
)

// Visitor receives each node of a document in order. i is the node's index
// in the slice being walked. Returning an error stops the walk.
type Visitor interface {
	Book(b Book, i int) error
	Section(s Section, i int) error
	Chapter(c Chapter, i int) error
	Verse(v Verse, i int) error
	Text(t Text, i int) error
	Break(b Break, i int) error
}

// Walk calls the Visitor method matching each node. A node of a type Walk
// does not know is an error rather than being skipped.
func Walk(v Visitor, nodes []Node) error {
	for i, n := range nodes {
		if err := Visit(v, n, i); err != nil {
			return err
		}
	}
	return nil
}

// Visit dispatches a single node.
func Visit(v Visitor, n Node, i int) error {
	switch n := n.(type) {
	case Book:
		return v.Book(n, i)
	case Section:
		return v.Section(n, i)
	case Chapter:
		return v.Chapter(n, i)
	case Verse:
		return v.Verse(n, i)
	case Text:
		return v.Text(n, i)
	case Break:
		return v.Break(n, i)
	default:
		return errors.NewUnsupported("node", fmt.Sprintf("%T at index %d", n, i))
	}
}
