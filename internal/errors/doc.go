// Package errors provides coded, actionable errors for dragkit.
//
// Each error has a code ("D001") registered with a category, a short
// message, a longer detail and a documentation URL. Call sites add a
// suggestion or wrap the underlying cause:
//
//	err := errors.New("D121").
//	    WithDetailf("port %d is outside 1-65535", cfg.Server.Port).
//	    WithSuggestion("Set server.port in dragkit.json or DRAGKIT_SERVER_PORT")
//
//	fmt.Print(err.Format())
//	// ERROR D121: Invalid server port
//	//
//	//   port 70000 is outside 1-65535
//	//
//	//   Hint: Set server.port in dragkit.json or DRAGKIT_SERVER_PORT
//	//
//	//   Learn more: https://dragkit.dev/docs/errors/D121
//
// # Categories
//
//   - runtime: drag context and reactive scheduling failures
//   - protocol: websocket frames the server cannot handle
//   - config: invalid configuration values
//   - cli: command-line usage errors
package errors
