package live

import "time"

type LogLevel int

const (
	undefined LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Plugin integrates with the live app runtime. Implement Register to inject
// head elements, HTTP handlers, or other app-level concerns.
type Plugin interface {
	Register(*V)
}

// Options defines configuration options for the live application
type Options struct {
	// The http server address. e.g. ':3000'
	ServerAddress string

	// Level of the logs to write to stdout.
	// Options: Error, Warn, Info, Debug.
	LogLvl LogLevel

	// The title of the HTML document.
	DocumentTitle string

	// ContextTTL is how long a page context survives without actions.
	// Expired contexts are dropped when new pages are served.
	// Default is 30 minutes.
	ContextTTL time.Duration

	// DatastarURL is the script loaded by every page. Defaults to the
	// jsDelivr build matching the server SDK.
	DatastarURL string

	// Plugins to extend the capabilities of the `live` application.
	Plugins []Plugin
}
