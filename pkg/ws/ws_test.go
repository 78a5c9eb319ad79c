package ws_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/stockroom/pkg/ws"
)

func startHub(t *testing.T) (*ws.Hub, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := ws.NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Upgrade(w, r, hub)
	}))
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	hub, url := startHub(t)
	a := dial(t, url)
	b := dial(t, url)

	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)
	require.True(t, hub.Broadcast([]byte(`{"event":"product.created"}`)))

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"event":"product.created"}`, string(msg))
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}
