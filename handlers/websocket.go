package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/youssefibrahim146/Volt/entities"
	"github.com/youssefibrahim146/Volt/middleware"
	"github.com/youssefibrahim146/Volt/usecases"
	"github.com/youssefibrahim146/Volt/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler owns the live budget stream: one connection per user, fed a
// fresh budget summary after every device mutation.
type WSHandler struct {
	manager *ws.Manager
}

func NewWSHandler(manager *ws.Manager) *WSHandler {
	return &WSHandler{manager: manager}
}

// HandleBudgetStream handles GET /ws. RequireUser has already run, so the
// connection is tied to the authenticated account.
func (h *WSHandler) HandleBudgetStream(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "authentication required",
			"data":    nil,
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for user %s: %v", user.ID, err)
		return
	}

	h.manager.Register(user.ID, conn)
	log.Printf("User %s connected to the budget stream", user.ID)

	defer func() {
		h.manager.Unregister(user.ID, conn)
		log.Printf("User %s disconnected from the budget stream", user.ID)
	}()

	// greet with the current state
	h.PushSummary(user)

	// drain the connection; clients only listen on this stream
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// PushSummary sends the user's current budget aggregates if they have a
// live connection. Delivery is best effort and failures only log.
func (h *WSHandler) PushSummary(user *entities.User) {
	if user == nil || !h.manager.IsConnected(user.ID) {
		return
	}

	payload, err := json.Marshal(gin.H{
		"type": "budget_summary",
		"data": usecases.SummaryOf(user),
	})
	if err != nil {
		return
	}
	if err := h.manager.SendToUser(user.ID, payload); err != nil {
		log.Printf("Failed to push budget summary to user %s: %v", user.ID, err)
	}
}
