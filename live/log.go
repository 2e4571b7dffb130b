package live

import (
	"fmt"
	"log"
)

func (v *V) logErr(c *Context, format string, a ...any) {
	log.Printf("[error] %smsg=%q", ctxRef(c), fmt.Sprintf(format, a...))
}

func (v *V) logWarn(c *Context, format string, a ...any) {
	if v.cfg.LogLvl >= LogLevelWarn {
		log.Printf("[warn] %smsg=%q", ctxRef(c), fmt.Sprintf(format, a...))
	}
}

func (v *V) logInfo(c *Context, format string, a ...any) {
	if v.cfg.LogLvl >= LogLevelInfo {
		log.Printf("[info] %smsg=%q", ctxRef(c), fmt.Sprintf(format, a...))
	}
}

func (v *V) logDebug(c *Context, format string, a ...any) {
	if v.cfg.LogLvl == LogLevelDebug {
		log.Printf("[debug] %smsg=%q", ctxRef(c), fmt.Sprintf(format, a...))
	}
}

func ctxRef(c *Context) string {
	if c == nil || c.id == "" {
		return ""
	}
	return fmt.Sprintf("live-ctx=%q ", c.id)
}
