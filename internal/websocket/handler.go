package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection with the hub and runs its pumps. It
// blocks until the connection closes.
func ServeWs(hub *Hub, c *websocket.Conn, email string, inbound InboundHandler) {
	client := &Client{Hub: hub, Conn: c, Email: email, Send: make(chan []byte, 256), inbound: inbound}
	client.Hub.Register(client)

	if inbound != nil {
		inbound.HandleOpen(client)
	}

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
