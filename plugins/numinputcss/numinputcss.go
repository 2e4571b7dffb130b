// Package numinputcss provides the stylesheet of web numeric inputs as a
// live plugin.
//
// # Quick Start
//
//	v := live.New()
//	v.Config(live.Options{Plugins: []live.Plugin{
//	    numinputcss.New(numinputcss.WithAccent("#16a34a")),
//	}})
//
// The plugin serves the stylesheet from /_plugins/numinputcss/style.css and
// links it from every page.
package numinputcss

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"hash/crc32"
	"net/http"
	"strings"

	"github.com/go-via/numinput/h"
	"github.com/go-via/numinput/live"
)

// StylePath is the URL the stylesheet is served from.
const StylePath = "/_plugins/numinputcss/style.css"

//go:embed numinput.css
var baseCSS []byte

// Option configures the plugin.
type Option interface {
	apply(*plugin)
}

type pluginOptions struct {
	accent string
	radius string
	extra  []byte
}

type plugin struct {
	opts    pluginOptions
	css     []byte
	cssGzip []byte
	etag    string
}

// New creates the plugin. Without options it serves the base stylesheet.
func New(opts ...Option) live.Plugin {
	p := &plugin{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(p)
		}
	}
	p.css = p.build()
	p.etag = crc32Hex(p.css)
	p.cssGzip = gzipBytes(p.css)
	return p
}

type withAccentOpt struct{ color string }

func (o *withAccentOpt) apply(p *plugin) { p.opts.accent = o.color }

// WithAccent sets the focus and hover color, any CSS color value.
func WithAccent(color string) Option { return &withAccentOpt{color: color} }

type withRadiusOpt struct{ radius string }

func (o *withRadiusOpt) apply(p *plugin) { p.opts.radius = o.radius }

// WithRadius sets the corner radius, e.g. "0" or "1rem".
func WithRadius(radius string) Option { return &withRadiusOpt{radius: radius} }

type withExtraCSSOpt struct{ css string }

func (o *withExtraCSSOpt) apply(p *plugin) {
	p.opts.extra = append(p.opts.extra, o.css...)
	p.opts.extra = append(p.opts.extra, '\n')
}

// WithExtraCSS appends rules to the served stylesheet.
func WithExtraCSS(css string) Option { return &withExtraCSSOpt{css: css} }

func (p *plugin) build() []byte {
	var b bytes.Buffer
	b.Write(baseCSS)
	var vars []string
	if p.opts.accent != "" {
		vars = append(vars, "--numinput-accent: "+p.opts.accent+";")
	}
	if p.opts.radius != "" {
		vars = append(vars, "--numinput-radius: "+p.opts.radius+";")
	}
	if len(vars) > 0 {
		fmt.Fprintf(&b, "\n.numinput {\n  %s\n}\n", strings.Join(vars, "\n  "))
	}
	b.Write(p.opts.extra)
	return b.Bytes()
}

func crc32Hex(b []byte) string {
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(b))
}

func gzipBytes(b []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(b)
	w.Close()
	return buf.Bytes()
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

func (p *plugin) serveStyle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("If-None-Match") == p.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/css")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("ETag", p.etag)
	if acceptsGzip(r) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(p.cssGzip)
		return
	}
	w.Write(p.css)
}

func (p *plugin) Register(v *live.V) {
	v.AppendToHead(h.Link(
		h.Rel("stylesheet"),
		h.Href(StylePath+"?v="+p.etag),
	))
	v.HandleFunc("GET "+StylePath, p.serveStyle)
}
