package web

import "github.com/go-via/numinput"

type attr struct {
	name, value string
}

type options struct {
	name          string
	id            string
	class         string
	attrs         []attr
	decreaseLabel string
	increaseLabel string
	format        numinput.FormatFunc
	notifiers     []numinput.Notifier
	onEvent       func(numinput.ChangeEvent)
	nativeEvents  bool
}

// Option configures a Field.
type Option func(*options)

// WithName sets the name attribute of the input. Change events carry it.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithID sets the DOM id of the input. Defaults to an ID derived from the
// component context.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithClass merges class into the root element's classes.
func WithClass(class string) Option {
	return func(o *options) { o.class = class }
}

// WithAttr passes an arbitrary attribute through to the input, e.g. form
// library metadata.
func WithAttr(name, value string) Option {
	return func(o *options) { o.attrs = append(o.attrs, attr{name, value}) }
}

// WithLabels sets the button texts. Defaults are "-" and "+".
func WithLabels(decrease, increase string) Option {
	return func(o *options) {
		o.decreaseLabel = decrease
		o.increaseLabel = increase
	}
}

// WithFormat sets the display post-processor of the widget.
func WithFormat(f numinput.FormatFunc) Option {
	return func(o *options) { o.format = f }
}

// WithNotifier adds a change notifier to the widget.
func WithNotifier(n numinput.Notifier) Option {
	return func(o *options) { o.notifiers = append(o.notifiers, n) }
}

// WithOnChange adds a plain change callback to the widget.
func WithOnChange(fn func(float64)) Option {
	return func(o *options) {
		if fn != nil {
			o.notifiers = append(o.notifiers, numinput.NotifierFunc(fn))
		}
	}
}

// WithChangeEvent delivers every commit as a numinput.ChangeEvent whose target
// carries the field name and id.
func WithChangeEvent(fn func(numinput.ChangeEvent)) Option {
	return func(o *options) { o.onEvent = fn }
}

// WithNativeChangeEvent makes the browser dispatch input and change DOM
// events on the field after every commit, for scripts that listen to the
// native events.
func WithNativeChangeEvent() Option {
	return func(o *options) { o.nativeEvents = true }
}
