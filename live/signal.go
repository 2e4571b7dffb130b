package live

import "github.com/go-via/numinput/h"

// Signal is a string value shared between the server and the browser.
type Signal struct {
	id      string
	value   string
	changed bool
}

// ID returns the signal name used in Datastar expressions.
func (s *Signal) ID() string {
	return s.id
}

// String returns the current value.
func (s *Signal) String() string {
	return s.value
}

// SetValue updates the value. The browser receives it when the running
// action returns.
func (s *Signal) SetValue(v string) {
	if s.value == v {
		return
	}
	s.value = v
	s.changed = true
}

// Bind returns the attribute that two-way binds an input to the signal.
func (s *Signal) Bind() h.H {
	return h.DataBind(s.id)
}
