package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/dragkit/pkg/metrics"
	"github.com/vango-dev/dragkit/pkg/protocol"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(DefaultServerConfig(),
		WithLogger(discardLogger()),
		WithMetrics(metrics.New(metrics.WithRegistry(prometheus.NewRegistry()))),
	)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Shutdown(context.Background())
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) *protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	m, err := protocol.DecodeMessage(data)
	require.NoError(t, err)
	return m
}

func sendEvent(t *testing.T, conn *websocket.Conn, ev protocol.Event) {
	t.Helper()
	data, err := protocol.EncodeEvent(&ev)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestWebSocketDragSession(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)

	hello := readMessage(t, conn)
	require.Equal(t, protocol.KindHello, hello.Kind)
	assert.NotEmpty(t, hello.Session)
	assert.Equal(t, DefaultCards(), hello.Cards)
	assert.Equal(t, 1, srv.SessionCount())

	sendEvent(t, conn, protocol.Event{Seq: 1, Type: protocol.EventPointerDown, Target: "card-1", X: 50, Y: 50})
	sendEvent(t, conn, protocol.Event{Seq: 2, Type: protocol.EventPointerMove, Target: "document", X: 70, Y: 50})

	m := readMessage(t, conn)
	require.Equal(t, protocol.KindPatches, m.Kind)
	assert.Equal(t, uint64(2), m.Seq)
	assert.Equal(t, []protocol.Patch{{Target: "card-1", Property: "transform", Value: "translate3d(20px, 0px, 0)"}}, m.Patches)

	sendEvent(t, conn, protocol.Event{Seq: 3, Type: protocol.EventPointerUp, Target: "document", X: 70, Y: 50})
	m = readMessage(t, conn)
	assert.Equal(t, uint64(3), m.Seq)
	require.Len(t, m.Patches, 3)
	assert.Equal(t, "60px", m.Patches[1].Value)
}

func TestWebSocketRejectsBadEvents(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)
	readMessage(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":`)))
	m := readMessage(t, conn)
	require.Equal(t, protocol.KindError, m.Kind)
	assert.Equal(t, "D061", m.Error.Code)

	sendEvent(t, conn, protocol.Event{Seq: 5, Type: protocol.EventPointerDown, Target: "card-9"})
	m = readMessage(t, conn)
	require.Equal(t, protocol.KindError, m.Kind)
	assert.Equal(t, uint64(5), m.Seq)
	assert.Equal(t, "D063", m.Error.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	_, ts := newTestServer(t)
	a := dial(t, ts)
	b := dial(t, ts)
	helloA := readMessage(t, a)
	helloB := readMessage(t, b)
	assert.NotEqual(t, helloA.Session, helloB.Session)

	sendEvent(t, a, protocol.Event{Seq: 1, Type: protocol.EventKeyDown, Target: "card-1", Key: "Enter"})
	sendEvent(t, a, protocol.Event{Seq: 2, Type: protocol.EventKeyDown, Target: "document", Key: "ArrowRight"})
	readMessage(t, a)

	// The same key on b's card-1 starts an independent drag.
	sendEvent(t, b, protocol.Event{Seq: 1, Type: protocol.EventKeyDown, Target: "card-1", Key: "Enter"})
	sendEvent(t, b, protocol.Event{Seq: 2, Type: protocol.EventKeyDown, Target: "document", Key: "ArrowLeft"})
	m := readMessage(t, b)
	assert.Equal(t, "translate3d(-10px, 0px, 0)", m.Patches[0].Value)
}

func TestSessionClosedOnDisconnect(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readMessage(t, conn)
	require.Equal(t, 1, srv.SessionCount())

	conn.Close()
	assert.Eventually(t, func() bool { return srv.SessionCount() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHTTPRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	get := func(path string) (int, string) {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	code, body := get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "new WebSocket")

	code, body = get("/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	dial(t, ts)
	code, body = get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "dragkit_active_sessions")
}

func TestCrossOriginRejected(t *testing.T) {
	_, ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSameOriginCheck(t *testing.T) {
	r := httptest.NewRequest("GET", "http://localhost:8080/ws", nil)
	assert.True(t, SameOriginCheck(r))

	r.Header.Set("Origin", "http://localhost:8080")
	assert.True(t, SameOriginCheck(r))

	r.Header.Set("Origin", "http://other:8080")
	assert.False(t, SameOriginCheck(r))
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := New(DefaultServerConfig(), WithLogger(discardLogger()))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
}
