package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/jxeer/Harmonia/models"
)

// Bridge fans persisted-message events out to the live connections of the
// two users involved. It is a wake-up signal, not a system of record:
// delivery is at most once, never retried, and never blocks the caller.
type Bridge struct {
	mu sync.RWMutex
	// byUser indexes authenticated connections for O(1) routing. A user
	// may hold several connections (multiple tabs/devices).
	byUser map[string]map[*Client]struct{}
	// pending holds connections that have not yet sent an auth frame.
	// They are never delivery targets.
	pending map[*Client]struct{}
}

func NewBridge() *Bridge {
	return &Bridge{
		byUser:  make(map[string]map[*Client]struct{}),
		pending: make(map[*Client]struct{}),
	}
}

// Attach registers an already-upgraded connection in the unauthenticated
// state and starts its writer. It has no failure path; upgrade errors are
// handled by the HTTP layer before the bridge ever sees the conn.
func (b *Bridge) Attach(conn *websocket.Conn) *Client {
	client := newClient(conn)
	b.mu.Lock()
	b.pending[client] = struct{}{}
	b.mu.Unlock()
	return client
}

// HandleControlFrame processes one inbound frame. The only recognized
// shape is {type:"auth", userId}; everything else is logged and dropped
// while the connection stays open.
func (b *Bridge) HandleControlFrame(client *Client, raw []byte) {
	frame, err := decodeControlFrame(raw)
	if err != nil {
		log.Printf("realtime: discarding control frame: %v", err)
		return
	}

	if !client.bind(frame.UserID) {
		// Already bound; the binding is immutable for the connection's
		// lifetime, so a second auth frame is a no-op.
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.pending[client]; !ok {
		// Detached while the frame was in flight.
		return
	}
	delete(b.pending, client)
	if b.byUser[frame.UserID] == nil {
		b.byUser[frame.UserID] = make(map[*Client]struct{})
	}
	b.byUser[frame.UserID][client] = struct{}{}
}

// Notify delivers a new-message event to every authenticated connection
// bound to the sender or receiver. Called by the REST handler after the
// message is durably persisted. Per-connection failures are swallowed;
// a slow or wedged client never affects the others or the caller.
func (b *Bridge) Notify(message *models.Message) {
	if message == nil {
		return
	}

	data, err := encodeNotification(message)
	if err != nil {
		log.Printf("realtime: could not encode notification: %v", err)
		return
	}

	b.mu.RLock()
	targets := make([]*Client, 0, 2)
	for client := range b.byUser[message.SenderID] {
		targets = append(targets, client)
	}
	if message.ReceiverID != message.SenderID {
		for client := range b.byUser[message.ReceiverID] {
			targets = append(targets, client)
		}
	}
	b.mu.RUnlock()

	for _, client := range targets {
		if !client.deliver(data) {
			log.Printf("realtime: dropped notification for user %s (connection not writable)", client.UserID())
		}
	}
}

// Detach removes a connection from the registry and closes it. Safe to
// call more than once and safe for connections the bridge never saw.
func (b *Bridge) Detach(client *Client) {
	if client == nil {
		return
	}

	b.mu.Lock()
	delete(b.pending, client)
	if client.IsAuthenticated() {
		userID := client.UserID()
		if conns, ok := b.byUser[userID]; ok {
			delete(conns, client)
			if len(conns) == 0 {
				delete(b.byUser, userID)
			}
		}
	}
	b.mu.Unlock()

	client.close()
}

// ServeConn runs the read loop for one connection: attach, consume
// control frames until the peer goes away, detach. Intended to be called
// from the WebSocket upgrade handler's goroutine.
func (b *Bridge) ServeConn(conn *websocket.Conn) {
	client := b.Attach(conn)
	defer b.Detach(client)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		b.HandleControlFrame(client, raw)
	}
}

// ConnectionCount reports registered connections, authenticated or not.
func (b *Bridge) ConnectionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := len(b.pending)
	for _, conns := range b.byUser {
		n += len(conns)
	}
	return n
}

// Shutdown closes every connection and empties the registry.
func (b *Bridge) Shutdown() {
	b.mu.Lock()
	clients := make([]*Client, 0, len(b.pending))
	for client := range b.pending {
		clients = append(clients, client)
	}
	for _, conns := range b.byUser {
		for client := range conns {
			clients = append(clients, client)
		}
	}
	b.pending = make(map[*Client]struct{})
	b.byUser = make(map[string]map[*Client]struct{})
	b.mu.Unlock()

	for _, client := range clients {
		client.close()
	}
}
