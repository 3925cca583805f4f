package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// sendBuffer bounds the per-connection outbound queue. When it is
	// full the connection is considered not writable and the frame is
	// dropped, keeping Notify non-blocking.
	sendBuffer = 16

	writeWait = 5 * time.Second
)

// Client wraps one live WebSocket connection. The user binding happens at
// most once, via the auth control frame, and never changes afterwards.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu            sync.RWMutex
	userID        string
	authenticated bool

	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *Client {
	c := &Client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

// writeLoop is the single writer for the connection; gorilla/websocket
// permits at most one concurrent writer per conn.
func (c *Client) writeLoop() {
	for {
		select {
		case data := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// deliver queues a frame without blocking. A closed or backed-up
// connection drops the frame; the persistence layer remains the system
// of record, so the client catches up on its next fetch.
func (c *Client) deliver(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// bind associates the connection with a user. Only the first bind wins.
func (c *Client) bind(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.authenticated {
		return false
	}
	c.userID = userID
	c.authenticated = true
	return true
}

func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
