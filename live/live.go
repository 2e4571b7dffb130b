// Package live is a small server-driven UI runtime built on Datastar.
//
// A page is composed in Go: its view is rendered with h nodes,
// its actions run on the server, and every action answers with a Datastar
// SSE stream that patches the page view, the changed signals and any queued
// scripts. Each browser tab owns one *Context; actions on a context run one
// at a time.
package live

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-via/numinput/h"
	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"
)

// ContextSignal is the signal carrying the page context ID on every action.
const ContextSignal = "livectx"

const defaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// V is the root application.
// It manages page routing and the page contexts of open browser tabs.
type V struct {
	cfg                  Options
	mux                  *http.ServeMux
	contextRegistry      map[string]*Context
	contextRegistryMutex sync.RWMutex
	documentHeadIncludes []h.H
	documentFootIncludes []h.H
	now                  func() time.Time
}

// New creates a new live application with default configuration.
func New() *V {
	v := &V{
		mux:             http.NewServeMux(),
		contextRegistry: make(map[string]*Context),
		now:             time.Now,
		cfg: Options{
			ServerAddress: ":3000",
			LogLvl:        LogLevelInfo,
			DocumentTitle: "Live",
			ContextTTL:    30 * time.Minute,
			DatastarURL:   defaultDatastarURL,
		},
	}
	v.mux.HandleFunc("GET /_action/{id}", v.handleAction)
	return v
}

// Config overrides the default configuration with the given configuration options.
func (v *V) Config(cfg Options) {
	if cfg.LogLvl != undefined {
		v.cfg.LogLvl = cfg.LogLvl
	}
	if cfg.DocumentTitle != "" {
		v.cfg.DocumentTitle = cfg.DocumentTitle
	}
	if cfg.ServerAddress != "" {
		v.cfg.ServerAddress = cfg.ServerAddress
	}
	if cfg.ContextTTL > 0 {
		v.cfg.ContextTTL = cfg.ContextTTL
	}
	if cfg.DatastarURL != "" {
		v.cfg.DatastarURL = cfg.DatastarURL
	}
	for _, plugin := range cfg.Plugins {
		if plugin != nil {
			plugin.Register(v)
		}
	}
}

// AppendToHead appends the given h.H nodes to the head of the base HTML document.
// Useful for including css stylesheets and JS scripts.
func (v *V) AppendToHead(elements ...h.H) {
	for _, el := range elements {
		if el != nil {
			v.documentHeadIncludes = append(v.documentHeadIncludes, el)
		}
	}
}

// AppendToFoot appends the given h.H nodes to the end of the base HTML document body.
func (v *V) AppendToFoot(elements ...h.H) {
	for _, el := range elements {
		if el != nil {
			v.documentFootIncludes = append(v.documentFootIncludes, el)
		}
	}
}

// HandleFunc registers the HTTP handler function for a given pattern. The handler function panics if
// in conflict with another registered handler with the same pattern.
func (v *V) HandleFunc(pattern string, f http.HandlerFunc) {
	v.mux.HandleFunc(pattern, f)
}

// HTTPServeMux returns the app's request multiplexer, for tests and for
// mounting the app inside another server.
func (v *V) HTTPServeMux() *http.ServeMux {
	return v.mux
}

// Page registers a route and its associated page handler.
// The handler receives a fresh *Context for every visit.
//
// Example:
//
//	v.Page("/", func(c *live.Context) {
//		c.View(func() h.H {
//			return h.H1(h.Text("Hello"))
//		})
//	})
func (v *V) Page(route string, initContextFn func(c *Context)) {
	v.mux.HandleFunc("GET "+route, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "favicon") {
			return
		}
		v.sweep()

		c := newContext(genRandID("c"), v)
		v.logDebug(c, "GET %s", route)
		initContextFn(c)
		if c.view == nil {
			v.logErr(c, "page '%s' has no view", route)
			http.Error(w, "page has no view", http.StatusInternalServerError)
			return
		}
		v.registerCtx(c)

		signals, err := json.Marshal(c.initialSignals())
		if err != nil {
			v.logErr(c, "encode signals failed: %v", err)
			http.Error(w, "encode signals failed", http.StatusInternalServerError)
			return
		}
		head := []h.H{
			h.Script(h.Type("module"), h.Src(v.cfg.DatastarURL)),
		}
		head = append(head, v.documentHeadIncludes...)
		head = append(head, h.Meta(h.DataSignals(string(signals))))
		body := []h.H{c.view()}
		body = append(body, v.documentFootIncludes...)

		view := h.HTML5(h.HTML5Props{
			Title: v.cfg.DocumentTitle,
			Head:  head,
			Body:  body,
		})
		if err := view.Render(w); err != nil {
			v.logErr(c, "render page failed: %v", err)
		}
	})
}

func (v *V) handleAction(w http.ResponseWriter, r *http.Request) {
	actionID := r.PathValue("id")
	var sigs map[string]any
	if err := datastar.ReadSignals(r, &sigs); err != nil {
		v.logErr(nil, "action '%s' failed: read signals: %v", actionID, err)
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}
	cID, _ := sigs[ContextSignal].(string)
	c, err := v.getCtx(cID)
	if err != nil {
		v.logErr(nil, "action '%s' failed: %v", actionID, err)
		http.NotFound(w, r)
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	actionFn, err := c.getActionFn(actionID)
	if err != nil {
		v.logDebug(c, "action '%s' failed: %v", actionID, err)
		http.NotFound(w, r)
		return
	}
	c.lastSeen = v.now()
	v.logDebug(c, "signals=%v", sigs)
	c.injectSignals(sigs)
	c.runAction(actionID, actionFn)

	sse := datastar.NewSSE(w, r)
	if err := c.flush(sse); err != nil {
		v.logErr(c, "action '%s' patch failed: %v", actionID, err)
	}
}

func (v *V) registerCtx(c *Context) {
	v.contextRegistryMutex.Lock()
	defer v.contextRegistryMutex.Unlock()
	v.contextRegistry[c.id] = c
	v.logDebug(c, "new context added to registry")
}

func (v *V) getCtx(id string) (*Context, error) {
	v.contextRegistryMutex.RLock()
	defer v.contextRegistryMutex.RUnlock()
	if c, ok := v.contextRegistry[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("ctx '%s' not found", id)
}

// sweep drops contexts that saw no action within ContextTTL.
func (v *V) sweep() {
	cutoff := v.now().Add(-v.cfg.ContextTTL)
	v.contextRegistryMutex.Lock()
	defer v.contextRegistryMutex.Unlock()
	for id, c := range v.contextRegistry {
		c.mutex.Lock()
		expired := c.lastSeen.Before(cutoff)
		c.mutex.Unlock()
		if expired {
			delete(v.contextRegistry, id)
			v.logDebug(c, "context expired")
		}
	}
}

// Start starts the HTTP server on the configured address.
func (v *V) Start() {
	v.logInfo(nil, "live started on address: %s", v.cfg.ServerAddress)
	log.Fatalf("[fatal] %v", http.ListenAndServe(v.cfg.ServerAddress, v.mux))
}

// genRandID returns a short random ID that is also a valid JS identifier,
// so it can name a Datastar signal.
func genRandID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
