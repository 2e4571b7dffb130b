package live

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/go-via/numinput/h"
	"github.com/starfederation/datastar-go/datastar"
)

// Context is the living bridge between Go and one browser tab.
//
// It holds runtime state, defines actions, manages signals, and defines UI
// through View. Components get their own Context that shares the page's
// actions, signals and patch queue.
type Context struct {
	id             string
	app            *V
	view           func() h.H
	parentPageCtx  *Context
	actionRegistry map[string]func()
	signals        map[string]*Signal
	signalOrder    []string
	scripts        []string
	dirty          bool
	lastSeen       time.Time

	// serializes actions of a page; unused on component contexts
	mutex sync.Mutex
}

func newContext(id string, app *V) *Context {
	return &Context{
		id:             id,
		app:            app,
		actionRegistry: make(map[string]func()),
		signals:        make(map[string]*Signal),
		lastSeen:       app.now(),
	}
}

// ID returns the context ID. It is also the DOM id of the context's view root.
func (c *Context) ID() string {
	return c.id
}

func (c *Context) page() *Context {
	if c.parentPageCtx != nil {
		return c.parentPageCtx
	}
	return c
}

// View defines the UI rendered by this context.
// The function should return an h.H element (from numinput/h).
//
// Changes are pushed to the browser at the end of an action that called Sync.
func (c *Context) View(f func() h.H) {
	if f == nil {
		c.app.logErr(c, "failed to bind view to context: nil func")
		return
	}
	c.view = func() h.H { return h.Div(h.ID(c.id), f()) }
}

// Component registers a subcontext with self contained actions and signals.
// It returns the component's view as a DOM node fn that can be placed in the
// view of the parent. Components can be added to components.
//
// Example:
//
//	counter := c.Component(func(cc *live.Context) {
//		n := 0
//		inc := cc.Action(func() { n++; cc.Sync() })
//		cc.View(func() h.H {
//			return h.Button(h.Textf("%d", n), inc.OnClick())
//		})
//	})
//
//	c.View(func() h.H {
//		return h.Div(counter())
//	})
func (c *Context) Component(f func(c *Context)) func() h.H {
	compCtx := newContext(genRandID("k"), c.app)
	compCtx.parentPageCtx = c.page()
	f(compCtx)
	if compCtx.view == nil {
		c.app.logErr(compCtx, "component has no view")
		return func() h.H { return nil }
	}
	return compCtx.view
}

// Action registers an event handler and returns a trigger to that event that
// can be added to the view fn as any other h element.
//
// Example:
//
//	n := 0
//	increment := c.Action(func() {
//		n++
//		c.Sync()
//	})
//
//	c.View(func() h.H {
//		return h.Button(h.Textf("n = %d", n), increment.OnClick())
//	})
func (c *Context) Action(f func()) *ActionTrigger {
	id := genRandID("a")
	if f == nil {
		c.app.logErr(c, "failed to bind action '%s' to context: nil func", id)
		return nil
	}
	c.page().actionRegistry[id] = f
	return &ActionTrigger{id: id}
}

func (c *Context) getActionFn(id string) (func(), error) {
	if f, ok := c.actionRegistry[id]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("action '%s' not found", id)
}

func (c *Context) runAction(id string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			c.app.logErr(c, "action '%s' failed: %v", id, r)
		}
	}()
	f()
}

// Signal creates a string signal initialized with v. Bind it to an input to
// receive what the user typed; the value is injected before every action.
// Values set on the server are sent to the browser at the end of the action.
func (c *Context) Signal(v string) *Signal {
	sig := &Signal{id: genRandID("s"), value: v}
	p := c.page()
	p.signals[sig.id] = sig
	p.signalOrder = append(p.signalOrder, sig.id)
	return sig
}

func (c *Context) initialSignals() map[string]any {
	sigs := map[string]any{ContextSignal: c.id}
	for _, id := range c.signalOrder {
		sig := c.signals[id]
		sigs[id] = sig.value
		sig.changed = false
	}
	return sigs
}

func (c *Context) injectSignals(sigs map[string]any) {
	for sigID, val := range sigs {
		sig, ok := c.signals[sigID]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			sig.value = v
		case nil:
			sig.value = ""
		default:
			sig.value = fmt.Sprint(v)
		}
		sig.changed = false
	}
}

// Sync marks the page view for re-rendering. The patch is sent when the
// running action returns.
func (c *Context) Sync() {
	c.page().dirty = true
}

// ExecScript queues a script to run in the browser when the running action
// returns.
func (c *Context) ExecScript(s string) {
	if s == "" {
		return
	}
	p := c.page()
	p.scripts = append(p.scripts, s)
}

// Logf logs a message at the given level through the app logger.
func (c *Context) Logf(lvl LogLevel, format string, a ...any) {
	switch lvl {
	case LogLevelError:
		c.app.logErr(c, format, a...)
	case LogLevelWarn:
		c.app.logWarn(c, format, a...)
	case LogLevelInfo:
		c.app.logInfo(c, format, a...)
	default:
		c.app.logDebug(c, format, a...)
	}
}

func (c *Context) changedSignals() map[string]any {
	updated := make(map[string]any)
	for id, sig := range c.signals {
		if sig.changed {
			updated[id] = sig.value
			sig.changed = false
		}
	}
	return updated
}

// flush writes the pending view, signal and script patches to sse.
func (c *Context) flush(sse *datastar.ServerSentEventGenerator) error {
	if c.dirty {
		c.dirty = false
		var b bytes.Buffer
		if err := c.view().Render(&b); err != nil {
			return fmt.Errorf("render view: %w", err)
		}
		if err := sse.PatchElements(b.String()); err != nil {
			return fmt.Errorf("patch elements: %w", err)
		}
	}
	if sigs := c.changedSignals(); len(sigs) != 0 {
		if err := sse.MarshalAndPatchSignals(sigs); err != nil {
			return fmt.Errorf("patch signals: %w", err)
		}
	}
	scripts := c.scripts
	c.scripts = nil
	for _, s := range scripts {
		if err := sse.ExecuteScript(s); err != nil {
			return fmt.Errorf("execute script: %w", err)
		}
	}
	return nil
}

// Signals returns a copy of the current signal values, keyed by signal ID.
func (c *Context) Signals() map[string]string {
	out := make(map[string]string, len(c.page().signals))
	for id, sig := range c.page().signals {
		out[id] = sig.value
	}
	return out
}
