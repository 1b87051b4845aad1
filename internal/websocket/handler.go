package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs blocks until the peer disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, userKey string) {
	client := &Client{Hub: hub, Conn: c, UserKey: userKey, Send: make(chan []byte, 256)}
	if !hub.Register(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
