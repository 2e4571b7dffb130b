package numinput

import "strconv"

// Notifier receives the committed value after every settled change.
type Notifier interface {
	Notify(value float64)
}

// NotifierFunc adapts a plain function to a Notifier.
type NotifierFunc func(value float64)

func (f NotifierFunc) Notify(value float64) {
	f(value)
}

// ChangeEvent is a synthetic field change event for form libraries that
// read the new value from event.target.value.
type ChangeEvent struct {
	Type   string      `json:"type"`
	Target EventTarget `json:"target"`
}

// EventTarget identifies the field that changed. Value is always the committed
// value formatted as a string.
type EventTarget struct {
	Name  string `json:"name,omitempty"`
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
}

// FormatEventValue formats a committed value the way ChangeEvent carries it.
func FormatEventValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type eventNotifier struct {
	name, id string
	fn       func(ChangeEvent)
}

func (n eventNotifier) Notify(value float64) {
	n.fn(ChangeEvent{
		Type: "change",
		Target: EventTarget{
			Name:  n.name,
			ID:    n.id,
			Value: FormatEventValue(value),
		},
	})
}

// EventNotifier wraps every committed value in a ChangeEvent carrying the
// field identity, then passes it to fn.
func EventNotifier(name, id string, fn func(ChangeEvent)) Notifier {
	if fn == nil {
		return nil
	}
	return eventNotifier{name: name, id: id, fn: fn}
}

type multiNotifier []Notifier

func (m multiNotifier) Notify(value float64) {
	for _, n := range m {
		n.Notify(value)
	}
}

// MultiNotifier fans a notification out to every non-nil notifier, in order.
func MultiNotifier(notifiers ...Notifier) Notifier {
	var m multiNotifier
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	switch len(m) {
	case 0:
		return nil
	case 1:
		return m[0]
	}
	return m
}
