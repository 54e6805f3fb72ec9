package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the feed carries no private data
	},
}

// WSHandler upgrades to a WebSocket subscriber of the catalog feed.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		if msg, err := hub.welcome("websocket"); err == nil {
			_ = ws.WriteMessage(websocket.TextMessage, msg)
		}
		hub.AddWS(ws)
		log.Infof("[ws-feed] client connected: %s", c.ClientIP())

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		log.Infof("[ws-feed] client disconnected: %s", c.ClientIP())
	}
}

// StatsHandler reports subscriber counts.
func StatsHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, hub.Stats())
	}
}
