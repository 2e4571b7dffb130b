// Package numinput provides a bounded numeric input widget: a value with
// increment and decrement buttons, min/max clamping, step sizing, precision
// formatting, prefix/suffix decoration and an optional custom formatter.
//
// A Widget holds the state machine only. Rendering lives in sibling packages:
// web binds a widget to a live page, tui renders it in a terminal.
//
// Example:
//
//	w, err := numinput.New(numinput.Config{
//		Min:       numinput.Bound(0),
//		Max:       numinput.Bound(10),
//		Precision: 2,
//		Prefix:    "$ ",
//	}, numinput.WithOnChange(func(v float64) {
//		log.Printf("value=%v", v)
//	}))
//	if err != nil {
//		return err
//	}
//	w.Increase()
//	fmt.Println(w.Display()) // $ 1.00
package numinput

import (
	"math"
	"strconv"
	"strings"
)

// State is the observable state of a widget.
type State struct {
	Value            float64
	DecreaseDisabled bool
	IncreaseDisabled bool
}

// Option configures the behavior of a widget that cannot be expressed in Config.
type Option func(*Widget)

// WithFormat sets the display post-processor.
func WithFormat(f FormatFunc) Option {
	return func(w *Widget) {
		w.format = f
	}
}

// WithNotifier adds a change notifier. It may be given more than once; the
// notifiers run in the order they were added.
func WithNotifier(n Notifier) Option {
	return func(w *Widget) {
		w.notifier = MultiNotifier(w.notifier, n)
	}
}

// WithOnChange adds a plain change callback.
func WithOnChange(fn func(value float64)) Option {
	if fn == nil {
		return nil
	}
	return WithNotifier(NotifierFunc(fn))
}

// Widget is a numeric input widget. It is not safe for concurrent use;
// rendering layers serialize the events they feed into it.
type Widget struct {
	cfg      Config
	format   FormatFunc
	notifier Notifier

	state     State
	committed float64

	// text typed since the last commit
	draft    string
	hasDraft bool
}

// New validates cfg and creates a widget. The initial value is clamped into
// the bounds unless it is NaN. No change notification is sent.
func New(cfg Config, opts ...Option) (*Widget, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Widget{cfg: cfg.withDefaults()}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	w.state.Value = Clamp(w.cfg.Value, w.lo(), w.hi())
	w.committed = w.state.Value
	w.refreshFlags()
	return w, nil
}

// Clamp constrains v to [lo, hi]. NaN is returned unchanged.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

// DisabledFlags reports which buttons are disabled for value v.
func DisabledFlags(v, lo, hi float64) (decrease, increase bool) {
	return v <= lo, v >= hi
}

func (w *Widget) lo() float64 { return *w.cfg.Min }
func (w *Widget) hi() float64 { return *w.cfg.Max }

func (w *Widget) mutable() bool {
	return !w.cfg.Disabled && !w.cfg.ReadOnly
}

func (w *Widget) refreshFlags() {
	w.state.DecreaseDisabled, w.state.IncreaseDisabled = DisabledFlags(w.state.Value, w.lo(), w.hi())
}

// settle commits the current value and notifies if it differs from the
// previous commit.
func (w *Widget) settle() {
	w.draft, w.hasDraft = "", false
	w.refreshFlags()
	if sameValue(w.state.Value, w.committed) {
		return
	}
	w.committed = w.state.Value
	if w.notifier != nil {
		w.notifier.Notify(w.committed)
	}
}

func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// Decrease subtracts one step, stopping at Min. It does nothing when the
// widget is disabled or read-only, or when the value is already at the floor.
// It reports whether the state changed.
func (w *Widget) Decrease() bool {
	if !w.mutable() || !(w.state.Value > w.lo()) {
		return false
	}
	return w.step(w.state.Value - w.cfg.Step)
}

// Increase adds one step, stopping at Max. It does nothing when the widget is
// disabled or read-only, or when the value is already at the ceiling.
// It reports whether the state changed.
func (w *Widget) Increase() bool {
	if !w.mutable() || !(w.state.Value < w.hi()) {
		return false
	}
	return w.step(w.state.Value + w.cfg.Step)
}

// step moves to next within the bounds. A step too small to change the value
// at its magnitude is no change.
func (w *Widget) step(next float64) bool {
	old, pending := w.state.Value, w.hasDraft
	w.state.Value = Clamp(next, w.lo(), w.hi())
	w.settle()
	return pending || !sameValue(old, w.state.Value)
}

// InputChange handles a content change of the text field. Text that does not
// parse as a number is ignored. A parsed value is stored without clamping and
// is not committed until Blur.
func (w *Widget) InputChange(raw string) bool {
	if !w.mutable() {
		return false
	}
	v, ok := w.Parse(raw)
	if !ok {
		return false
	}
	w.state.Value = v
	w.draft, w.hasDraft = raw, true
	w.refreshFlags()
	return true
}

// Parse converts field text to a number. Surrounding whitespace and the
// configured prefix and suffix are ignored. NaN and infinities are rejected.
func (w *Widget) Parse(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if p := strings.TrimSpace(w.cfg.Prefix); p != "" {
		s = strings.TrimPrefix(s, p)
	}
	if p := strings.TrimSpace(w.cfg.Suffix); p != "" {
		s = strings.TrimSuffix(s, p)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Blur commits the current value, forcing it into [Min, Max]. A NaN value
// keeps the previously committed value.
func (w *Widget) Blur() bool {
	if !w.mutable() {
		return false
	}
	v := Clamp(w.state.Value, w.lo(), w.hi())
	if math.IsNaN(v) {
		v = w.committed
	}
	changed := w.hasDraft || !sameValue(v, w.state.Value)
	w.state.Value = v
	w.settle()
	return changed
}

// KeyDown handles a key press in the text field. Enter commits like Blur.
func (w *Widget) KeyDown(key string) bool {
	if key == "Enter" {
		return w.Blur()
	}
	return false
}

// SetValue replaces the value from the host, for example a form library that
// owns the field state. The value is clamped unless NaN and becomes the
// committed value without a change notification.
func (w *Widget) SetValue(v float64) {
	w.state.Value = Clamp(v, w.lo(), w.hi())
	w.committed = w.state.Value
	w.draft, w.hasDraft = "", false
	w.refreshFlags()
}

// State returns a snapshot of the widget state.
func (w *Widget) State() State {
	return w.state
}

// Value returns the current value.
func (w *Widget) Value() float64 {
	return w.state.Value
}

// Committed returns the last committed value.
func (w *Widget) Committed() float64 {
	return w.committed
}

// Draft returns the text typed since the last commit, if any.
func (w *Widget) Draft() (string, bool) {
	return w.draft, w.hasDraft
}

// Config returns the effective configuration, defaults applied.
func (w *Widget) Config() Config {
	c := w.cfg
	c.Min = Bound(w.lo())
	c.Max = Bound(w.hi())
	return c
}

// Mutable reports whether user interaction may change the value.
func (w *Widget) Mutable() bool {
	return w.mutable()
}

// Display returns the formatted value shown in the field.
func (w *Widget) Display() string {
	return FormatDisplay(w.state.Value, w.cfg.Precision, w.cfg.Prefix, w.cfg.Suffix, w.format)
}
