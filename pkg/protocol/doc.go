// Package protocol defines the JSON frames exchanged between the drag demo
// client and server over a WebSocket.
//
// # Client to server
//
// Every text frame from the client is one Event:
//
//	{"seq":7,"type":"pointermove","target":"card-1","x":130,"y":125}
//
// Target names the element the browser delivered the event to; "document"
// is used for events captured at the document level.
//
// # Server to client
//
// The server sends Messages tagged by kind:
//
//	{"kind":"hello","session":"…","cards":[{"id":"card-1",…}]}
//	{"kind":"patches","seq":7,"patches":[{"target":"card-1","property":"transform","value":"translate3d(20px, 15px, 0)"}]}
//	{"kind":"error","seq":8,"error":{"code":"D063","message":"Unknown target"}}
//
// Seq on patches and errors echoes the event that caused them.
package protocol
