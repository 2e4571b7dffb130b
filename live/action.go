package live

import (
	"fmt"

	"github.com/go-via/numinput/h"
)

// ActionTrigger represents a trigger to an event handler fn
type ActionTrigger struct {
	id string
}

// ID returns the action's unique identifier.
func (a *ActionTrigger) ID() string {
	return a.id
}

func (a *ActionTrigger) expr() string {
	return fmt.Sprintf("@get('/_action/%s')", a.id)
}

func (a *ActionTrigger) on(event string, condition string) h.H {
	return h.DataOn(event, condition+a.expr())
}

// OnClick returns an h attribute that triggers on click.
func (a *ActionTrigger) OnClick() h.H {
	return a.on("click", "")
}

// OnInput returns an h attribute that triggers while the user types,
// debounced by 200ms.
func (a *ActionTrigger) OnInput() h.H {
	return a.on("input__debounce.200ms", "")
}

// OnBlur returns an h attribute that triggers when the element loses focus.
func (a *ActionTrigger) OnBlur() h.H {
	return a.on("blur", "")
}

// OnKeyDown returns an h attribute that triggers when a key is pressed.
// key: optional, see https://developer.mozilla.org/en-US/docs/Web/API/KeyboardEvent/key
// Example: OnKeyDown("Enter")
func (a *ActionTrigger) OnKeyDown(key string) h.H {
	var condition string
	if key != "" {
		condition = fmt.Sprintf("evt.key==='%s' && ", key)
	}
	return a.on("keydown", condition)
}
