// handlers/admin/ws.go - Websocket upgrade for the approval dashboard feed
package admin

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"biasboard/handlers"
)

// RequireWebSocketUpgrade rejects plain HTTP requests to the feed endpoint.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Feed is the websocket handler for GET /ws/admin. It registers the dashboard
// with the hub and holds the connection open; the read loop exists only to
// notice the client going away.
func Feed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		hub := handlers.AdminHub()
		id := hub.Register(conn)
		defer func() {
			hub.Unregister(id)
			conn.Close()
		}()

		log.Printf("admin dashboard connected (%d online)", hub.ClientCount())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
