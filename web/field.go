// Package web mounts a numinput.Widget on a live page.
//
// The widget renders four regions addressable by data-testid:
//
//	numinput           root container
//	numinput-decrease  decrement button
//	numinput-field     editable text field
//	numinput-increase  increment button
//
// The field is bound to input, blur and keydown(Enter) actions; the buttons
// are bound to click actions while the widget is neither disabled nor
// read-only.
package web

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-via/numinput"
	"github.com/go-via/numinput/h"
	"github.com/go-via/numinput/live"
)

// Test IDs of the widget regions.
const (
	TestIDRoot     = "numinput"
	TestIDDecrease = "numinput-decrease"
	TestIDField    = "numinput-field"
	TestIDIncrease = "numinput-increase"
)

// Field is a widget mounted on a page context.
type Field struct {
	c    *live.Context
	w    *numinput.Widget
	opts options
	id   string
	text *live.Signal
	view func() h.H

	decrease *live.ActionTrigger
	increase *live.ActionTrigger
	input    *live.ActionTrigger
	commit   *live.ActionTrigger
}

// New creates a widget from cfg and mounts it as a component of c.
// It fails with a *numinput.ConfigurationError when cfg is invalid.
func New(c *live.Context, cfg numinput.Config, opts ...Option) (*Field, error) {
	f := &Field{c: c, opts: options{decreaseLabel: "-", increaseLabel: "+"}}
	for _, opt := range opts {
		if opt != nil {
			opt(&f.opts)
		}
	}

	var mountErr error
	f.view = c.Component(func(cc *live.Context) {
		f.id = f.opts.id
		if f.id == "" {
			f.id = cc.ID() + "-field"
		}
		f.w, mountErr = numinput.New(cfg, f.widgetOptions()...)
		if mountErr != nil {
			cc.Logf(live.LogLevelError, "numinput mount failed: %v", mountErr)
			return
		}
		f.text = cc.Signal(f.w.Display())
		f.decrease = cc.Action(func() { f.update(f.w.Decrease) })
		f.increase = cc.Action(func() { f.update(f.w.Increase) })
		f.commit = cc.Action(func() { f.update(f.w.Blur) })
		f.input = cc.Action(func() {
			text := f.text.String()
			switch {
			case text == f.shown():
				// already absorbed by a commit or a button
			case f.w.InputChange(text):
				cc.Logf(live.LogLevelDebug, "numinput %s draft=%q", f.id, text)
			default:
				// rejected text is replaced by what the field held before
				f.text.SetValue(f.shown())
			}
			cc.Sync()
		})
		cc.View(f.render)
	})
	if mountErr != nil {
		return nil, mountErr
	}
	return f, nil
}

func (f *Field) widgetOptions() []numinput.Option {
	opts := []numinput.Option{numinput.WithFormat(f.opts.format)}
	for _, n := range f.opts.notifiers {
		opts = append(opts, numinput.WithNotifier(n))
	}
	if f.opts.onEvent != nil {
		opts = append(opts, numinput.WithNotifier(numinput.EventNotifier(f.opts.name, f.id, f.opts.onEvent)))
	}
	if f.opts.nativeEvents {
		opts = append(opts, numinput.WithNotifier(numinput.NotifierFunc(f.dispatchNativeEvents)))
	}
	return opts
}

// absorb feeds field text the input action has not seen yet into the
// widget. Typing followed by Enter, blur or a click inside the input debounce
// window arrives only through the bound signal.
func (f *Field) absorb() {
	if text := f.text.String(); text != f.shown() {
		f.w.InputChange(text)
	}
}

// update runs a committing widget operation on the current field text and
// resets the field text to the committed display value.
func (f *Field) update(op func() bool) {
	f.absorb()
	if op() {
		f.c.Logf(live.LogLevelDebug, "numinput %s value=%v", f.id, f.w.Value())
	}
	f.text.SetValue(f.w.Display())
	f.c.Sync()
}

func (f *Field) dispatchNativeEvents(float64) {
	f.c.ExecScript(fmt.Sprintf(
		"(()=>{const el=document.getElementById(%s);if(!el)return;"+
			"el.dispatchEvent(new Event('input',{bubbles:true}));"+
			"el.dispatchEvent(new Event('change',{bubbles:true}));})()",
		strconv.Quote(f.id),
	))
}

// View renders the widget. Place it in the page view.
func (f *Field) View() h.H {
	return f.view()
}

// Widget returns the underlying widget.
func (f *Field) Widget() *numinput.Widget {
	return f.w
}

// Value returns the current value.
func (f *Field) Value() float64 {
	return f.w.Value()
}

// InputID returns the DOM id of the text field.
func (f *Field) InputID() string {
	return f.id
}

// SetValue drives the widget from host state, e.g. a form being reset.
// Call it from an action; the page is re-rendered when the action returns.
func (f *Field) SetValue(v float64) {
	f.w.SetValue(v)
	f.text.SetValue(f.w.Display())
	f.c.Sync()
}

// shown is the field text: the pending draft, or the display value.
func (f *Field) shown() string {
	if draft, ok := f.w.Draft(); ok {
		return draft
	}
	return f.w.Display()
}

func (f *Field) classes() string {
	cfg := f.w.Config()
	classes := []string{"numinput"}
	if cfg.Mobile {
		classes = append(classes, "numinput--mobile")
	}
	if cfg.Disabled {
		classes = append(classes, "numinput--disabled")
	}
	if cfg.ReadOnly {
		classes = append(classes, "numinput--readonly")
	}
	if f.opts.class != "" {
		classes = append(classes, f.opts.class)
	}
	return strings.Join(classes, " ")
}

func (f *Field) render() h.H {
	st := f.w.State()
	cfg := f.w.Config()
	mutable := f.w.Mutable()

	field := []h.H{
		h.Type("text"),
		h.ID(f.id),
		h.Class("numinput__field"),
		h.TestID(TestIDField),
		h.InputMode("decimal"),
		h.AutoComplete("off"),
		h.Value(f.shown()),
		f.text.Bind(),
		h.If(f.opts.name != "", h.Name(f.opts.name)),
		h.If(cfg.Disabled, h.Disabled()),
		h.If(cfg.ReadOnly, h.ReadOnly()),
	}
	if mutable {
		field = append(field,
			f.input.OnInput(),
			f.commit.OnBlur(),
			f.commit.OnKeyDown("Enter"),
		)
	}
	for _, a := range f.opts.attrs {
		field = append(field, h.Attr(a.name, a.value))
	}

	return h.Div(
		h.Class(f.classes()),
		h.TestID(TestIDRoot),
		h.Button(
			h.Type("button"),
			h.Class("numinput__decrease"),
			h.TestID(TestIDDecrease),
			h.AriaLabel("Decrease"),
			h.If(!mutable || st.DecreaseDisabled, h.Disabled()),
			h.If(mutable, f.decrease.OnClick()),
			h.Text(f.opts.decreaseLabel),
		),
		h.Input(field...),
		h.Button(
			h.Type("button"),
			h.Class("numinput__increase"),
			h.TestID(TestIDIncrease),
			h.AriaLabel("Increase"),
			h.If(!mutable || st.IncreaseDisabled, h.Disabled()),
			h.If(mutable, f.increase.OnClick()),
			h.Text(f.opts.increaseLabel),
		),
	)
}
