// Package vtest drives live apps over HTTP the way a browser with Datastar
// would: it loads a page, tracks its signals, fires the actions bound to
// elements and applies the SSE patches each action returns.
//
// Elements are selected by data-testid, id, name or button text.
package vtest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
)

// ContextSignal must match live.ContextSignal.
const ContextSignal = "livectx"

var (
	reTag       = regexp.MustCompile(`<(button|input|div|span|p|output|form)\b([^>]*)>`)
	reAttr      = regexp.MustCompile(`([a-zA-Z0-9_:.\-]+)(?:="([^"]*)")?`)
	reButton    = regexp.MustCompile(`(?s)<button\b([^>]*)>(.*?)</button>`)
	reSignals   = regexp.MustCompile(`data-signals="([^"]*)"`)
	reActionURL = regexp.MustCompile(`@get\('([^']+)'\)`)
	reKeyCond   = regexp.MustCompile(`evt\.key==='([^']+)'`)
	reStripTags = regexp.MustCompile(`<[^>]+>`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// Page represents a stateful page that maintains its context, signals and
// current HTML.
type Page struct {
	t       testing.TB
	handler http.Handler
	ctxID   string
	html    string
	signals map[string]any
	scripts []string
}

// Visit loads path from handler and returns the page.
func Visit(t testing.TB, handler http.Handler, path string) *Page {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("vtest: GET %s: status %d", path, w.Code)
	}

	body := w.Body.String()
	signals := extractSignals(body)
	ctxID, _ := signals[ContextSignal].(string)
	if ctxID == "" {
		t.Fatalf("vtest: GET %s: page has no context signal", path)
	}
	return &Page{
		t:       t,
		handler: handler,
		ctxID:   ctxID,
		html:    body,
		signals: signals,
	}
}

// HTML returns the current page HTML with all patches applied.
func (p *Page) HTML() string {
	return p.html
}

// ContextID returns the page context ID.
func (p *Page) ContextID() string {
	return p.ctxID
}

// Scripts returns the scripts the server asked the browser to run, oldest first.
func (p *Page) Scripts() []string {
	return p.scripts
}

// Signal returns the current value of a signal as a string.
func (p *Page) Signal(id string) string {
	v, ok := p.signals[id]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Element is a tag found on the page.
type Element struct {
	Tag   string
	Attrs map[string]string
	Text  string
}

// Has reports whether the element carries the attribute.
func (e Element) Has(name string) bool {
	_, ok := e.Attrs[name]
	return ok
}

// Find returns the first element matching selector.
func (p *Page) Find(selector string) (Element, bool) {
	for _, el := range p.elements() {
		if el.matches(selector) {
			return el, true
		}
	}
	return Element{}, false
}

// MustFind is like Find but fails the test when nothing matches.
func (p *Page) MustFind(selector string) Element {
	p.t.Helper()
	el, ok := p.Find(selector)
	if !ok {
		p.t.Fatalf("vtest: no element matches %q, html:\n%s", selector, p.html)
	}
	return el
}

// Value returns the value the user sees in an input: the bound signal when the
// input has data-bind, otherwise its value attribute.
func (p *Page) Value(selector string) string {
	p.t.Helper()
	el := p.MustFind(selector)
	if sig, ok := el.Attrs["data-bind"]; ok {
		return p.Signal(sig)
	}
	return el.Attrs["value"]
}

// Click fires the click action of the matching element. Disabled elements
// and elements without a click binding are not clickable, as in a browser.
func (p *Page) Click(selector string) {
	p.t.Helper()
	el := p.MustFind(selector)
	if el.Has("disabled") {
		return
	}
	p.fire(el, "data-on:click")
}

// Fill sets the value of a bound input and fires its input action.
func (p *Page) Fill(selector, value string) {
	p.t.Helper()
	if el, ok := p.Type(selector, value); ok {
		p.fire(el, "data-on:input")
	}
}

// Type sets the value of a bound input without firing any action, as a
// debounced input handler does before its delay has passed. It reports
// whether the input accepted the text.
func (p *Page) Type(selector, value string) (Element, bool) {
	p.t.Helper()
	el := p.MustFind(selector)
	if el.Has("disabled") || el.Has("readonly") {
		return el, false
	}
	if sig, ok := el.Attrs["data-bind"]; ok {
		p.signals[sig] = value
	}
	return el, true
}

// Blur fires the blur action of the matching element.
func (p *Page) Blur(selector string) {
	p.t.Helper()
	p.fire(p.MustFind(selector), "data-on:blur")
}

// Press fires the keydown action of the matching element when its key
// condition accepts key.
func (p *Page) Press(selector, key string) {
	p.t.Helper()
	el := p.MustFind(selector)
	for name, expr := range el.Attrs {
		if !strings.HasPrefix(name, "data-on:keydown") {
			continue
		}
		if m := reKeyCond.FindStringSubmatch(expr); m != nil && m[1] != key {
			return
		}
		p.trigger(expr)
		return
	}
}

// AssertText asserts the visible page text contains text.
func (p *Page) AssertText(t testing.TB, text string) {
	t.Helper()
	visible := reStripTags.ReplaceAllString(p.html, " ")
	visible = strings.TrimSpace(reSpaces.ReplaceAllString(html.UnescapeString(visible), " "))
	if !strings.Contains(visible, text) {
		t.Fatalf("expected page to contain %q, text:\n%s", text, visible)
	}
}

func (p *Page) fire(el Element, event string) {
	p.t.Helper()
	for name, expr := range el.Attrs {
		if name == event || strings.HasPrefix(name, event+"__") || strings.HasPrefix(name, event+".") {
			p.trigger(expr)
			return
		}
	}
}

func (p *Page) trigger(expr string) {
	p.t.Helper()
	m := reActionURL.FindStringSubmatch(expr)
	if m == nil {
		p.t.Fatalf("vtest: no action in expression %q", expr)
	}

	sigs := make(map[string]any, len(p.signals))
	for k, v := range p.signals {
		// underscore signals are local to the browser
		if !strings.HasPrefix(k, "_") {
			sigs[k] = v
		}
	}
	sigs[ContextSignal] = p.ctxID
	payload, err := json.Marshal(sigs)
	if err != nil {
		p.t.Fatalf("vtest: encode signals: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, m[1]+"?datastar="+url.QueryEscape(string(payload)), nil)
	req.Header.Set("Accept", "text/event-stream")
	w := httptest.NewRecorder()
	p.handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		p.t.Fatalf("vtest: action %s: status %d: %s", m[1], w.Code, w.Body.String())
	}
	p.apply(parseEvents(w.Body.String()))
}

// Event is one Datastar server-sent event.
type Event struct {
	Type string
	Data map[string][]string
}

func parseEvents(body string) []Event {
	var events []Event
	cur := Event{Data: map[string][]string{}}
	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if cur.Type != "" {
				events = append(events, cur)
			}
			cur = Event{Data: map[string][]string{}}
		case strings.HasPrefix(line, "event: "):
			cur.Type = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			key, value, _ := strings.Cut(strings.TrimPrefix(line, "data: "), " ")
			cur.Data[key] = append(cur.Data[key], value)
		}
	}
	if cur.Type != "" {
		events = append(events, cur)
	}
	return events
}

func (p *Page) apply(events []Event) {
	for _, ev := range events {
		switch ev.Type {
		case "datastar-patch-elements":
			elements := strings.Join(ev.Data["elements"], "\n")
			if first(ev.Data["mode"]) == "append" {
				p.scripts = append(p.scripts, reStripTags.ReplaceAllString(elements, ""))
				continue
			}
			p.morph(elements)
		case "datastar-patch-signals":
			var sigs map[string]any
			if err := json.Unmarshal([]byte(strings.Join(ev.Data["signals"], "\n")), &sigs); err != nil {
				p.t.Fatalf("vtest: decode signal patch: %v", err)
			}
			for k, v := range sigs {
				p.signals[k] = v
			}
		}
	}
}

// morph replaces the element whose id matches the patch's root element.
func (p *Page) morph(fragment string) {
	p.t.Helper()
	m := regexp.MustCompile(`^\s*<([a-zA-Z0-9]+)[^>]*\bid="([^"]+)"`).FindStringSubmatch(fragment)
	if m == nil {
		p.t.Fatalf("vtest: patch root has no id: %s", fragment)
	}
	start, end, ok := outerElement(p.html, m[1], m[2])
	if !ok {
		p.t.Fatalf("vtest: patch target #%s not on page", m[2])
	}
	p.html = p.html[:start] + fragment + p.html[end:]
}

// outerElement locates the element <tag id="id"> including its closing tag.
func outerElement(doc, tag, id string) (start, end int, ok bool) {
	idx := strings.Index(doc, `id="`+id+`"`)
	if idx < 0 {
		return 0, 0, false
	}
	start = strings.LastIndex(doc[:idx], "<"+tag)
	if start < 0 {
		return 0, 0, false
	}
	open, closing := "<"+tag, "</"+tag+">"
	depth := 0
	for i := start; i < len(doc); {
		switch {
		case strings.HasPrefix(doc[i:], closing):
			depth--
			i += len(closing)
			if depth == 0 {
				return start, i, true
			}
		case strings.HasPrefix(doc[i:], open) && len(doc) > i+len(open) && strings.ContainsRune(" >", rune(doc[i+len(open)])):
			depth++
			i += len(open)
		default:
			i++
		}
	}
	return 0, 0, false
}

func (p *Page) elements() []Element {
	texts := make(map[string]string)
	for _, m := range reButton.FindAllStringSubmatch(p.html, -1) {
		texts[m[1]] = strings.TrimSpace(html.UnescapeString(reStripTags.ReplaceAllString(m[2], "")))
	}

	var out []Element
	for _, m := range reTag.FindAllStringSubmatch(p.html, -1) {
		el := Element{Tag: m[1], Attrs: parseAttrs(m[2])}
		if el.Tag == "button" {
			el.Text = texts[m[2]]
		}
		out = append(out, el)
	}
	return out
}

func (e Element) matches(selector string) bool {
	for _, attr := range []string{"data-testid", "id", "name"} {
		if v, ok := e.Attrs[attr]; ok && v == selector {
			return true
		}
	}
	return e.Tag == "button" && e.Text == selector
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reAttr.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = html.UnescapeString(m[2])
	}
	return attrs
}

func extractSignals(doc string) map[string]any {
	m := reSignals.FindStringSubmatch(doc)
	if m == nil {
		return make(map[string]any)
	}
	var signals map[string]any
	if err := json.Unmarshal([]byte(html.UnescapeString(m[1])), &signals); err != nil {
		return make(map[string]any)
	}
	return signals
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
