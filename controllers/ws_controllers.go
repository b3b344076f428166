package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/okapine/tablebook/models"
	"github.com/okapine/tablebook/realtime"
	"github.com/okapine/tablebook/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	Hub *realtime.Hub
}

func NewWSController(hub *realtime.Hub) *WSController {
	return &WSController{Hub: hub}
}

// Handle -> websocket endpoint for real-time viewers. Staff roles only; the
// client joins rooms by sending {"event":"join_kitchen"} style messages.
func (wc *WSController) Handle(c *gin.Context) {
	roleValue, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleValue.(string)

	if !models.IsStaff(role) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wc.Hub.Register(ws, role)
	utils.InfoLogger.Printf("Realtime client connected (role=%s)", role)

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var msg struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Event {
		case "join_kitchen":
			wc.Hub.Join(ws, realtime.RoomKitchen)
		case "join_admin":
			wc.Hub.Join(ws, realtime.RoomAdmin)
		}
	}

	wc.Hub.Unregister(ws)
	utils.InfoLogger.Printf("Realtime client disconnected (role=%s)", role)
}
