package h

// DataOn binds a Datastar expression to a DOM event. Modifiers follow the
// event name, e.g. DataOn("input__debounce.200ms", expr).
func DataOn(event, expr string) H {
	return Data("on:"+event, expr)
}

// DataBind two-way binds the element value to a signal.
func DataBind(signal string) H {
	return Data("bind", signal)
}

// DataSignals declares signals from a JS object literal.
func DataSignals(literal string) H {
	return Data("signals", literal)
}
