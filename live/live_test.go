package live

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-via/numinput/h"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *V {
	v := New()
	v.Config(Options{LogLvl: LogLevelError})
	return v
}

func get(t *testing.T, v *V, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	v.HTTPServeMux().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func fire(t *testing.T, v *V, actionID, signals string) *httptest.ResponseRecorder {
	t.Helper()
	return get(t, v, "/_action/"+actionID+"?datastar="+url.QueryEscape(signals))
}

func onlyCtx(t *testing.T, v *V) *Context {
	t.Helper()
	v.contextRegistryMutex.RLock()
	defer v.contextRegistryMutex.RUnlock()
	require.Len(t, v.contextRegistry, 1)
	for _, c := range v.contextRegistry {
		return c
	}
	return nil
}

func TestPage_RendersDocument(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	v.Config(Options{DocumentTitle: "Numbers"})
	v.AppendToHead(h.Link(h.Rel("stylesheet"), h.Href("/x.css")), nil)
	v.AppendToFoot(h.Script(h.Src("/y.js")))

	var sig *Signal
	v.Page("/", func(c *Context) {
		sig = c.Signal("hello")
		c.View(func() h.H { return h.P(h.Text("body")) })
	})

	w := get(t, v, "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	c := onlyCtx(t, v)

	assert.Contains(t, body, "<title>Numbers</title>")
	assert.Contains(t, body, defaultDatastarURL)
	assert.Contains(t, body, `href="/x.css"`)
	assert.Contains(t, body, `src="/y.js"`)
	assert.Contains(t, body, `<div id="`+c.ID()+`"><p>body</p></div>`)
	assert.Contains(t, body, "&#34;"+ContextSignal+"&#34;:&#34;"+c.ID()+"&#34;")
	assert.Contains(t, body, "&#34;"+sig.ID()+"&#34;:&#34;hello&#34;")
}

func TestPage_WithoutView(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	v.Page("/", func(c *Context) {})

	w := get(t, v, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, v.contextRegistry)
}

func TestAction_PatchesViewSignalsAndScripts(t *testing.T) {
	t.Parallel()
	v := newTestApp()

	n := 0
	var inc *ActionTrigger
	var sig *Signal
	v.Page("/", func(c *Context) {
		sig = c.Signal("0")
		inc = c.Action(func() {
			n++
			sig.SetValue("changed")
			c.ExecScript("console.log('hi')")
			c.Sync()
		})
		c.View(func() h.H {
			return h.Button(h.Textf("n=%d", n), inc.OnClick())
		})
	})
	get(t, v, "/")
	c := onlyCtx(t, v)

	w := fire(t, v, inc.ID(), `{"`+ContextSignal+`":"`+c.ID()+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Equal(t, 1, n)
	assert.Contains(t, body, "event: datastar-patch-elements")
	assert.Contains(t, body, "n=1")
	assert.Contains(t, body, "event: datastar-patch-signals")
	assert.Contains(t, body, `"`+sig.ID()+`":"changed"`)
	assert.Contains(t, body, "console.log")
	assert.Less(t, strings.Index(body, "n=1"), strings.Index(body, "console.log"))
}

func TestAction_InjectsSignals(t *testing.T) {
	t.Parallel()
	v := newTestApp()

	var got string
	var read *ActionTrigger
	var sig *Signal
	v.Page("/", func(c *Context) {
		sig = c.Signal("")
		read = c.Action(func() { got = sig.String() })
		c.View(func() h.H { return h.Input(sig.Bind(), read.OnInput()) })
	})
	get(t, v, "/")
	c := onlyCtx(t, v)

	w := fire(t, v, read.ID(), `{"`+ContextSignal+`":"`+c.ID()+`","`+sig.ID()+`":"typed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "typed", got)
	assert.Equal(t, "typed", c.Signals()[sig.ID()])

	// numbers arrive from the browser as JSON numbers
	fire(t, v, read.ID(), `{"`+ContextSignal+`":"`+c.ID()+`","`+sig.ID()+`":12.5}`)
	assert.Equal(t, "12.5", got)

	// injected values are not echoed back
	assert.NotContains(t, w.Body.String(), "datastar-patch-signals")
}

func TestAction_NoSyncNoPatch(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	var noop *ActionTrigger
	v.Page("/", func(c *Context) {
		noop = c.Action(func() {})
		c.View(func() h.H { return h.Button(noop.OnClick()) })
	})
	get(t, v, "/")
	c := onlyCtx(t, v)

	w := fire(t, v, noop.ID(), `{"`+ContextSignal+`":"`+c.ID()+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "datastar-patch-elements")
}

func TestAction_Errors(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	var act *ActionTrigger
	v.Page("/", func(c *Context) {
		act = c.Action(func() {})
		c.View(func() h.H { return h.Button(act.OnClick()) })
	})
	get(t, v, "/")
	c := onlyCtx(t, v)

	t.Run("unknown context", func(t *testing.T) {
		w := fire(t, v, act.ID(), `{"`+ContextSignal+`":"nope"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("unknown action", func(t *testing.T) {
		w := fire(t, v, "anope", `{"`+ContextSignal+`":"`+c.ID()+`"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	t.Run("malformed signals", func(t *testing.T) {
		w := fire(t, v, act.ID(), `{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAction_PanicIsRecovered(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	var boom *ActionTrigger
	v.Page("/", func(c *Context) {
		boom = c.Action(func() { panic("boom") })
		c.View(func() h.H { return h.Button(boom.OnClick()) })
	})
	get(t, v, "/")
	c := onlyCtx(t, v)

	w := fire(t, v, boom.ID(), `{"`+ContextSignal+`":"`+c.ID()+`"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestActionTrigger_Attributes(t *testing.T) {
	a := &ActionTrigger{id: "a1"}
	tests := []struct {
		node h.H
		want string
	}{
		{a.OnClick(), `data-on:click="@get(&#39;/_action/a1&#39;)"`},
		{a.OnInput(), `data-on:input__debounce.200ms="@get(&#39;/_action/a1&#39;)"`},
		{a.OnBlur(), `data-on:blur="@get(&#39;/_action/a1&#39;)"`},
		{a.OnKeyDown(""), `data-on:keydown="@get(&#39;/_action/a1&#39;)"`},
		{a.OnKeyDown("Enter"), `data-on:keydown="evt.key===&#39;Enter&#39; &amp;&amp; @get(&#39;/_action/a1&#39;)"`},
	}
	for _, tt := range tests {
		out, err := h.String(h.Div(tt.node))
		require.NoError(t, err)
		assert.Contains(t, out, tt.want)
	}
}

func TestComponent_SharesPageRegistries(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	n := 0
	var inc *ActionTrigger
	var sig *Signal
	v.Page("/", func(c *Context) {
		counter := c.Component(func(cc *Context) {
			sig = cc.Signal("x")
			inc = cc.Action(func() { n++; cc.Sync() })
			cc.View(func() h.H { return h.Span(h.Textf("%d", n)) })
		})
		c.View(func() h.H { return h.Div(counter()) })
	})
	body := get(t, v, "/").Body.String()
	c := onlyCtx(t, v)

	assert.Contains(t, c.actionRegistry, inc.ID())
	assert.Contains(t, c.signals, sig.ID())
	assert.Contains(t, body, `<span>0</span>`)

	w := fire(t, v, inc.ID(), `{"`+ContextSignal+`":"`+c.ID()+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	// the whole page view is patched
	assert.Contains(t, w.Body.String(), `id="`+c.ID()+`"`)
	assert.Contains(t, w.Body.String(), `<span>1</span>`)
}

func TestComponent_WithoutView(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	v.Page("/", func(c *Context) {
		empty := c.Component(func(cc *Context) {})
		c.View(func() h.H { return h.Div(empty()) })
	})
	w := get(t, v, "/")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSweep_DropsIdleContexts(t *testing.T) {
	t.Parallel()
	v := newTestApp()
	v.Config(Options{ContextTTL: time.Minute})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }

	var act *ActionTrigger
	v.Page("/", func(c *Context) {
		act = c.Action(func() {})
		c.View(func() h.H { return h.Button(act.OnClick()) })
	})
	get(t, v, "/")
	first := onlyCtx(t, v)

	// an action keeps the context alive
	now = now.Add(50 * time.Second)
	fire(t, v, act.ID(), `{"`+ContextSignal+`":"`+first.ID()+`"}`)
	now = now.Add(50 * time.Second)
	get(t, v, "/")
	_, err := v.getCtx(first.ID())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	get(t, v, "/")
	_, err = v.getCtx(first.ID())
	assert.Error(t, err)
	assert.Len(t, v.contextRegistry, 1)
}

func TestConfig_Overrides(t *testing.T) {
	t.Parallel()
	v := New()
	assert.Equal(t, ":3000", v.cfg.ServerAddress)
	assert.Equal(t, LogLevelInfo, v.cfg.LogLvl)
	assert.Equal(t, 30*time.Minute, v.cfg.ContextTTL)

	registered := false
	v.Config(Options{
		ServerAddress: ":8080",
		LogLvl:        LogLevelDebug,
		DatastarURL:   "/ds.js",
		Plugins:       []Plugin{pluginFunc(func(*V) { registered = true }), nil},
	})
	assert.Equal(t, ":8080", v.cfg.ServerAddress)
	assert.Equal(t, LogLevelDebug, v.cfg.LogLvl)
	assert.Equal(t, "/ds.js", v.cfg.DatastarURL)
	assert.Equal(t, "Live", v.cfg.DocumentTitle)
	assert.True(t, registered)
}

type pluginFunc func(*V)

func (f pluginFunc) Register(v *V) { f(v) }

func TestGenRandID(t *testing.T) {
	t.Parallel()
	a, b := genRandID("s"), genRandID("s")
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 13)
	assert.Regexp(t, `^s[0-9a-f]{12}$`, a)
}
