// Package dom is a small in-memory element tree that stands in for a
// browser DOM on the server.
//
// Elements keep ordered event listeners, an inline style map and a journal
// of style writes. The server turns style writes into patch frames for the
// browser; tests read the journal directly.
package dom
