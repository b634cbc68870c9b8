// Package server runs the drag demo: a board of cards in the browser whose
// drag state lives on the server.
//
// Each WebSocket connection gets a Session. The session's event loop owns
// a Board (a document of card elements, a drag context store and its
// pointer and keyboard sensors, and one draggable binding per card). Client
// events are decoded, dispatched into the board's document, and the style
// writes they cause are sent back as patches.
//
//	srv := server.New(server.DefaultServerConfig(),
//	    server.WithLogger(logger),
//	    server.WithMetrics(metrics.New()),
//	)
//	err := srv.Run(ctx)
//
// All reactive work for a session happens on its event loop goroutine.
package server
