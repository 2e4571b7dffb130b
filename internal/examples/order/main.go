package main

import (
	"fmt"

	"github.com/go-via/numinput"
	"github.com/go-via/numinput/h"
	"github.com/go-via/numinput/live"
	"github.com/go-via/numinput/plugins/numinputcss"
	"github.com/go-via/numinput/web"
)

func NewOrderPage() *live.V {
	v := live.New()
	v.Config(live.Options{
		ServerAddress: ":3000",
		DocumentTitle: "Order",
		Plugins:       []live.Plugin{numinputcss.New()},
	})

	v.Page("/", func(c *live.Context) {
		lastChange := "none"
		logChange := func(e numinput.ChangeEvent) {
			lastChange = fmt.Sprintf("%s=%s", e.Target.Name, e.Target.Value)
		}

		quantity, err := web.New(c, numinput.Config{
			Min:   numinput.Bound(1),
			Max:   numinput.Bound(99),
			Value: 1,
		}, web.WithName("quantity"), web.WithID("quantity"), web.WithChangeEvent(logChange))
		if err != nil {
			c.Logf(live.LogLevelError, "quantity: %v", err)
			return
		}

		price, err := web.New(c, numinput.Config{
			Min:       numinput.Bound(0),
			Step:      0.25,
			Precision: 2,
			Prefix:    "$ ",
			Value:     4.5,
		}, web.WithName("price"), web.WithID("price"), web.WithLabels("-0.25", "+0.25"), web.WithChangeEvent(logChange))
		if err != nil {
			c.Logf(live.LogLevelError, "price: %v", err)
			return
		}

		reset := c.Action(func() {
			quantity.SetValue(1)
			price.SetValue(4.5)
			lastChange = "reset"
		})

		c.View(func() h.H {
			total := quantity.Widget().Committed() * price.Widget().Committed()
			return h.Main(
				h.H1(h.Text("Order")),
				h.Label(h.For("quantity"), h.Text("Quantity")),
				quantity.View(),
				h.Label(h.For("price"), h.Text("Unit price")),
				price.View(),
				h.P(h.Text("Total: $ "+numinput.ToFixed(total, 2))),
				h.P(h.Text("Last change: "+lastChange)),
				h.Button(h.Type("button"), h.Text("Reset"), reset.OnClick()),
			)
		})
	})

	return v
}

func main() {
	v := NewOrderPage()
	v.Start()
}
