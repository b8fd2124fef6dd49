package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// FoodWatcher is one websocket connection subscribed to a food's
// engagement updates. All writes go through send: gorilla/websocket
// allows only one concurrent writer per connection, and the hub
// broadcasts from request goroutines while the keepalive ticker pings.
type FoodWatcher struct {
	FoodID uint

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewFoodWatcher(foodID uint, conn *websocket.Conn) *FoodWatcher {
	return &FoodWatcher{FoodID: foodID, conn: conn}
}

func (w *FoodWatcher) send(messageType int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteMessage(messageType, data)
}

// Ping is the keepalive used by the connection's ticker goroutine.
func (w *FoodWatcher) Ping() error {
	return w.send(websocket.PingMessage, nil)
}

// RealtimeHub fans engagement and comment events out to clients watching
// a food item. Writes are best-effort; a dead connection is dropped on
// its next read error, not here.
type RealtimeHub struct {
	mu       sync.RWMutex
	watchers map[uint]map[*FoodWatcher]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{watchers: make(map[uint]map[*FoodWatcher]struct{})}
}

func (h *RealtimeHub) Register(w *FoodWatcher) {
	h.mu.Lock()
	if h.watchers[w.FoodID] == nil {
		h.watchers[w.FoodID] = make(map[*FoodWatcher]struct{})
	}
	h.watchers[w.FoodID][w] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(w *FoodWatcher) {
	h.mu.Lock()
	if set := h.watchers[w.FoodID]; set != nil {
		delete(set, w)
		if len(set) == 0 {
			delete(h.watchers, w.FoodID)
		}
	}
	h.mu.Unlock()
	_ = w.conn.Close()
}

func (h *RealtimeHub) Broadcast(foodID uint, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for w := range h.watchers[foodID] {
		_ = w.send(websocket.TextMessage, msg)
	}
}
