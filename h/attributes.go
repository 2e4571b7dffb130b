package h

import (
	g "maragu.dev/gomponents"
	gh "maragu.dev/gomponents/html"
)

// Attr creates an arbitrary attribute. With no value it is a boolean attribute.
func Attr(name string, value ...string) H {
	return g.Attr(name, value...)
}

func Href(v string) H {
	return gh.Href(v)
}

func Type(v string) H {
	return gh.Type(v)
}

func Src(v string) H {
	return gh.Src(v)
}

func ID(v string) H {
	return gh.ID(v)
}

func Value(v string) H {
	return gh.Value(v)
}

func Name(v string) H {
	return gh.Name(v)
}

func Rel(v string) H {
	return gh.Rel(v)
}

func Class(v string) H {
	return gh.Class(v)
}

func For(v string) H {
	return gh.For(v)
}

func Disabled() H {
	return gh.Disabled()
}

func ReadOnly() H {
	return gh.ReadOnly()
}

func AutoComplete(v string) H {
	return gh.AutoComplete(v)
}

// InputMode hints the virtual keyboard to show, e.g. "decimal".
func InputMode(v string) H {
	return g.Attr("inputmode", v)
}

// Data attributes automatically have their name prefixed with "data-".
func Data(name, v string) H {
	return gh.Data(name, v)
}

// TestID marks an element so tests and host code can address it.
func TestID(v string) H {
	return gh.Data("testid", v)
}

func AriaLabel(v string) H {
	return gh.Aria("label", v)
}
