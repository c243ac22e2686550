package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mantelijo/whale-alert/internal/store"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func TestServeWS(t *testing.T) {
	h := New(store.NewRecentEvents(10))
	h.Publish(event(1))

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial wireMessage
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "initial_data", initial.Type)

	var history []map[string]any
	require.NoError(t, json.Unmarshal(initial.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "E1", history[0]["id"])

	require.Eventually(t, func() bool { return h.Count() == 1 }, time.Second, 10*time.Millisecond)
	h.Publish(event(2))

	var live wireMessage
	require.NoError(t, conn.ReadJSON(&live))
	assert.Equal(t, "whale_transaction", live.Type)

	var ev map[string]any
	require.NoError(t, json.Unmarshal(live.Data, &ev))
	assert.Equal(t, "E2", ev["id"])

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	assert.Eventually(t, func() bool { return h.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestServeWSClosedOnHubClose(t *testing.T) {
	h := New(store.NewRecentEvents(10))

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var initial wireMessage
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "initial_data", initial.Type)

	h.Close()

	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}
