package controllers

import (
	"net/http"

	"github.com/shirshak001/JEWEL/pkg/auth"
	"github.com/shirshak001/JEWEL/pkg/event"
	"github.com/shirshak001/JEWEL/pkg/logger"
	"github.com/shirshak001/JEWEL/pkg/response"
	"github.com/shirshak001/JEWEL/pkg/session"
	"github.com/shirshak001/JEWEL/pkg/ws"
)

// AlertController pushes stock alerts to connected admin dashboards.
type AlertController struct {
	hub      *ws.Hub
	sessions *session.Store
}

// NewAlertController starts the hub and subscribes it to stock events.
func NewAlertController(sessions *session.Store) *AlertController {
	c := &AlertController{hub: ws.NewHub(), sessions: sessions}
	go c.hub.Run()

	event.Listen(event.StockLow, func(payload interface{}) {
		c.hub.BroadcastJSON(map[string]interface{}{"type": "stock.low", "alert": payload})
	})
	event.Listen(event.StockOut, func(payload interface{}) {
		c.hub.BroadcastJSON(map[string]interface{}{"type": "stock.out", "alert": payload})
	})
	return c
}

// Stream handles GET /ws/admin/alerts. Browsers cannot set headers on a
// WebSocket handshake, so the token rides the query string.
func (c *AlertController) Stream(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	claims, err := auth.ValidateToken(token)
	if err != nil {
		response.Unauthorized(w)
		return
	}
	if claims.SessionID != "" {
		if _, err := c.sessions.Check(r.Context(), claims.SessionID); err != nil {
			response.Unauthorized(w)
			return
		}
	}

	logger.Debug("alert stream connected", "user", claims.UserID)
	ws.Upgrade(w, r, c.hub)
}
