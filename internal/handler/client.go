package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"helmetwatch/internal/logger"
	"helmetwatch/internal/service"
)

// Upgrader upgrades HTTP connections to WebSocket; CheckOrigin allows all origins.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ViewWebsocketHandler handles viewer connections over WebSocket. The
// viewer first receives the current state, then is registered in the
// HubService to receive live updates.
func ViewWebsocketHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connection, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: %v", err)
			return
		}

		for _, event := range manager.Snapshot() {
			connection.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := connection.WriteJSON(event); err != nil {
				logger.Warning("Failed to send initial state: %v", err)
				connection.Close()
				return
			}
		}

		manager.GetWebsocketService().Register(connection)
		defer manager.GetWebsocketService().Unregister(connection)

		for {
			_, _, err := connection.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("Viewer disconnected normally")
				} else {
					logger.Warning("Viewer disconnected with error: %v", err)
				}
				break
			}
		}
	}
}
