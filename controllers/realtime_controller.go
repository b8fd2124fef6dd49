package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nrj111/foodgram-backend/services"
)

type RealtimeController struct {
	hub *services.RealtimeHub
}

func NewRealtimeController(hub *services.RealtimeHub) *RealtimeController {
	return &RealtimeController{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FoodUpdatesWS subscribes the client to engagement and comment events
// for one food item.
func (rc *RealtimeController) FoodUpdatesWS(c *gin.Context) {
	foodID, ok := parseUintParam(c, "foodId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "foodId required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	w := services.NewFoodWatcher(foodID, conn)
	rc.hub.Register(w)

	// keepalive pings so intermediaries don't drop idle connections
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := w.Ping(); err != nil {
				rc.hub.Unregister(w)
				return
			}
		}
	}()

	// read loop ends on client close or error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.hub.Unregister(w)
			return
		}
	}
}
