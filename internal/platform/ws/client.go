package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/events"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// pingPeriod is the interval between pings; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum inbound message size in bytes.
	maxMessageSize = 512

	// sendBufferSize bounds the per-session outbound queue. When it fills,
	// further events are dropped for that session rather than blocking the
	// publisher.
	sendBufferSize = 64
)

// Client is a single websocket session. It holds the session's outbound
// queue and a bounded feed of the notifications delivered during this
// session; the feed dies with the connection, so a reconnecting client
// starts with no history.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	feed *events.NotificationFeed
}

// newClient creates a Client for an upgraded connection.
func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		feed: events.NewNotificationFeed(events.DefaultFeedCapacity),
	}
}

// Feed returns the session's bounded notification feed.
func (c *Client) Feed() *events.NotificationFeed {
	return c.feed
}

// trySend queues a message without blocking. A session that cannot keep up
// loses the event; delivery is at-most-once.
func (c *Client) trySend(msg []byte) {
	select {
	case c.send <- msg:
	default:
		c.hub.logger.Debug("dropping event for slow client")
	}
}

// deliver queues a private-channel message, recording notifications in the
// session feed first.
func (c *Client) deliver(event string, payload any, msg []byte) {
	if event == events.EventNotification {
		if n, ok := payload.(*domain.Notification); ok {
			c.feed.Add(n)
		}
	}
	c.trySend(msg)
}

// readPump reads inbound messages until the connection drops. The only
// inbound message the server understands is join_user_room, which binds
// the session to the announced user's private channel.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read error", "error", err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.hub.logger.Debug("discarding malformed client message", "error", err)
			continue
		}

		if msg.Event != events.JoinUserRoom {
			continue
		}

		var rawID string
		if err := json.Unmarshal(msg.Data, &rawID); err != nil {
			c.hub.logger.Debug("discarding join with malformed payload", "error", err)
			continue
		}
		userID, err := uuid.Parse(rawID)
		if err != nil {
			c.hub.logger.Debug("discarding join with invalid user id", "value", rawID)
			continue
		}

		c.hub.join(c, userID)
	}
}

// writePump writes queued messages and keeps the connection alive with
// pings. It exits when the send channel is closed by the hub or a write
// fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
