package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"livechess/internal/ports"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 15 * time.Second
	sendBuffer = 64
)

// client is one connected viewer. Spectators have registered == false and
// may watch but not move.
type client struct {
	conn       *websocket.Conn
	send       chan []byte
	owner      ports.Owner
	registered bool
}

func newClient(conn *websocket.Conn, owner ports.Owner, registered bool) *client {
	return &client{
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		owner:      owner,
		registered: registered,
	}
}

// writePump drains the send channel onto the connection and keeps the
// connection alive with periodic pings. It exits when the channel closes or
// a write fails.
func (c *client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue hands a frame to the writer without blocking the hub; slow
// consumers drop frames and recover through the next resync.
func (c *client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}
