// Command numinput serves a configurable numeric input demo page, or runs
// the same widget in the terminal with "numinput tui".
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-via/numinput"
	"github.com/go-via/numinput/h"
	"github.com/go-via/numinput/internal/config"
	"github.com/go-via/numinput/live"
	"github.com/go-via/numinput/plugins/numinputcss"
	"github.com/go-via/numinput/tui"
	"github.com/go-via/numinput/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "tui" {
		runTUI(cfg)
		return
	}
	newServer(cfg).Start()
}

func runTUI(cfg config.Config) {
	w, err := numinput.New(cfg.Widget)
	if err != nil {
		log.Fatalf("widget: %v", err)
	}
	p := tea.NewProgram(tui.New(w, cfg.Server.Title))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(w.Display())
}

func newServer(cfg config.Config) *live.V {
	opts := cfg.LiveOptions()
	var css []numinputcss.Option
	if cfg.Server.Accent != "" {
		css = append(css, numinputcss.WithAccent(cfg.Server.Accent))
	}
	opts.Plugins = []live.Plugin{numinputcss.New(css...)}

	v := live.New()
	v.Config(opts)

	v.Page("/", func(c *live.Context) {
		field, err := web.New(c, cfg.Widget,
			web.WithName("value"),
			web.WithNativeChangeEvent(),
			web.WithChangeEvent(func(e numinput.ChangeEvent) {
				c.Logf(live.LogLevelInfo, "%s %s=%s", e.Type, e.Target.Name, e.Target.Value)
			}),
		)
		if err != nil {
			c.View(func() h.H { return h.P(h.Textf("invalid widget configuration: %v", err)) })
			return
		}
		c.View(func() h.H {
			return h.Main(
				h.H1(h.Text(cfg.Server.Title)),
				field.View(),
			)
		})
	})
	return v
}
