package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialWatcher upgrades a real connection pair and returns the
// server-side conn wrapped as a watcher plus the client end.
func dialWatcher(t *testing.T, foodID uint) (*FoodWatcher, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		require.NoError(t, err)
		conns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewFoodWatcher(foodID, <-conns), client
}

func TestRealtimeHub_ConcurrentBroadcastAndPing(t *testing.T) {
	hub := NewRealtimeHub()
	w, client := dialWatcher(t, 7)
	hub.Register(w)
	defer hub.Unregister(w)

	// broadcasts arrive from request goroutines while the connection's
	// keepalive ticker pings; both write the same conn and must not race
	const n = 50
	var wg sync.WaitGroup
	wg.Add(2 * n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			hub.Broadcast(7, map[string]any{"kind": "food.engagement", "foodId": 7})
		}()
		go func() {
			defer wg.Done()
			_ = w.Ping()
		}()
	}
	wg.Wait()

	// control frames are consumed internally; count the data messages
	received := 0
	for received < n {
		require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
		mt, msg, err := client.ReadMessage()
		require.NoError(t, err)
		if mt == websocket.TextMessage {
			assert.Contains(t, string(msg), "food.engagement")
			received++
		}
	}
}

func TestRealtimeHub_BroadcastScopedToFood(t *testing.T) {
	hub := NewRealtimeHub()
	watching, client := dialWatcher(t, 1)
	other, otherClient := dialWatcher(t, 2)
	hub.Register(watching)
	hub.Register(other)
	defer hub.Unregister(watching)
	defer hub.Unregister(other)

	hub.Broadcast(1, map[string]any{"kind": "comment.created", "foodId": 1})

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := client.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), "comment.created")

	require.NoError(t, otherClient.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = otherClient.ReadMessage()
	assert.Error(t, err, "watcher of another food must not receive the event")
}
