package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
)

// Client is one websocket connection. RoomID is empty until the relay
// processes a join and is touched only by the relay's run loop.
type Client struct {
	conn     *connWrapper
	Message  chan *WSMessage
	ID       string
	RoomID   string
	slowOnce sync.Once
}

func NewClient(conn *websocket.Conn, id string, bufferSize int) *Client {
	if bufferSize <= 0 {
		bufferSize = 64 // buffered to avoid dead-locks on slow clients
	}

	return &Client{
		conn:    newConnWrapper(conn),
		Message: make(chan *WSMessage, bufferSize),
		ID:      id,
	}
}

// Send queues msg without blocking the caller. When the client's buffer is
// full, intermediate position updates are dropped (losing them never corrupts
// a stroke), but anything structural means the receiver has stalled for good:
// a missing draw-end would leave a half-open stroke at this peer, so the
// connection is closed instead and the read pump unregisters it.
func (c *Client) Send(msg *WSMessage) {
	select {
	case c.Message <- msg:
	default:
		if msg.Type == DrawMove || msg.Type == CursorMove {
			log.Printf("client %s buffer full, dropping %s", c.ID, msg.Type)
			return
		}
		c.closeSlow(msg.Type)
	}
}

func (c *Client) closeSlow(event string) {
	c.slowOnce.Do(func() {
		log.Printf("client %s buffer saturated on %s, disconnecting", c.ID, event)
		if c.conn != nil && c.conn.conn != nil {
			_ = c.conn.Close()
		}
	})
}

func (c *Client) ReadMessage(relay *Relay) {
	defer func() {
		relay.Unregister() <- c
		_ = c.conn.Close()
	}()

	c.conn.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.conn.SetPongHandler(func(string) error {
		return c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws read error (client %s): %v", c.ID, err)
			}
			break
		}

		var msg InboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.Send(NewError("", "malformed message"))
			continue
		}

		relay.Inbound() <- inboundEvent{client: c, msg: msg}
	}
}

func (c *Client) WriteMessage() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Message:
			if !ok {
				_ = c.conn.WriteClose(time.Now().Add(writeWait))
				return
			}

			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error (client %s): %v", c.ID, err)
				return
			}

		case <-ticker.C:
			if err := c.conn.Ping(time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
