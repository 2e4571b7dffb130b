// Package h provides the HTML building blocks used by live views. It is a thin
// layer over gomponents so that views depend on one small vocabulary.
package h

import (
	"bytes"
	"fmt"
	"io"

	g "maragu.dev/gomponents"
	gc "maragu.dev/gomponents/components"
)

// H represents a DOM node or attribute.
type H interface {
	Render(w io.Writer) error
}

// Text creates an escaped text node.
func Text(s string) H {
	return g.Text(s)
}

// Textf creates an escaped text node from a format string.
func Textf(format string, a ...any) H {
	return g.Textf(format, a...)
}

// If returns n when cond is true, otherwise nothing.
func If(cond bool, n H) H {
	if !cond {
		return nil
	}
	return n
}

// HTML5Props defines the document produced by HTML5.
type HTML5Props struct {
	Title    string
	Language string
	Head     []H
	Body     []H
}

// HTML5 renders a complete HTML5 document.
func HTML5(p HTML5Props) H {
	return gc.HTML5(gc.HTML5Props{
		Title:    p.Title,
		Language: p.Language,
		Head:     retype(p.Head),
		Body:     retype(p.Body),
	})
}

// String renders n to a string.
func String(n H) (string, error) {
	if n == nil {
		return "", nil
	}
	var b bytes.Buffer
	if err := n.Render(&b); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return b.String(), nil
}

func retype(nodes []H) []g.Node {
	if len(nodes) == 0 {
		return nil
	}
	list := make([]g.Node, len(nodes))
	for i, node := range nodes {
		if node == nil {
			continue
		}
		list[i] = node.(g.Node)
	}
	return list
}
