// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"log"

	"inkwell/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// FeedWebsocketHandler handles WebSocket connections for the live feed.
// The feed is public: anonymous viewers may subscribe, authenticated ones
// are identified via the `token` query parameter picked up by IdentityContext.
func (s *Server) FeedWebsocketHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		var userID uint
		if identity := middleware.IdentityFromCtx(c); identity != nil {
			userID = identity.UserID
		}
		c.Locals("feedUserID", userID)

		return websocket.New(func(conn *websocket.Conn) {
			middleware.ActiveWebSockets.Inc()
			defer middleware.ActiveWebSockets.Dec()

			uid, _ := conn.Locals("feedUserID").(uint)

			if s.hub == nil {
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"live feed unavailable"}`))
				_ = conn.Close()
				return
			}

			client, err := s.hub.Register(uid, conn)
			if err != nil {
				log.Printf("feed websocket: failed to register user %d: %v", uid, err)
				_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
				_ = conn.Close()
				return
			}

			go client.WritePump()
			client.ReadPump()
		})(c)
	}
}
