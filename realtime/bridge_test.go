package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jxeer/Harmonia/models"
)

func newTestServer(t *testing.T, b *Bridge) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		b.ServeConn(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendAuth(t *testing.T, conn *websocket.Conn, userID string) {
	t.Helper()
	frame := map[string]string{"type": "auth", "userId": userID}
	if err := conn.WriteJSON(frame); err != nil {
		t.Fatalf("writing auth frame: %v", err)
	}
}

// waitForUser polls until the bridge has at least n authenticated
// connections for userID.
func waitForUser(t *testing.T, b *Bridge, userID string, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		b.mu.RLock()
		got := len(b.byUser[userID])
		b.mu.RUnlock()
		if got >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("user %s never reached %d authenticated connections", userID, n)
}

func readNotification(t *testing.T, conn *websocket.Conn) *NotificationEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("reading notification: %v", err)
	}
	var event NotificationEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("unmarshal notification: %v", err)
	}
	return &event
}

// expectSilence asserts no frame arrives within the window.
func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, raw, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("expected no frame, got %s", raw)
	}
	netErr, ok := err.(interface{ Timeout() bool })
	if !ok || !netErr.Timeout() {
		t.Fatalf("expected read timeout, got %v", err)
	}
}

func testMessage(id, senderID, receiverID string) *models.Message {
	return &models.Message{
		ID:         id,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    "hello",
		Status:     models.MessageStatusSent,
	}
}

func TestNotifyReachesBothParties(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	sender := dial(t, srv)
	receiver := dial(t, srv)
	sendAuth(t, sender, "u1")
	sendAuth(t, receiver, "u2")
	waitForUser(t, b, "u1", 1)
	waitForUser(t, b, "u2", 1)

	b.Notify(testMessage("m1", "u1", "u2"))

	for _, conn := range []*websocket.Conn{sender, receiver} {
		event := readNotification(t, conn)
		if event.Type != "new_message" {
			t.Errorf("event type = %q, want new_message", event.Type)
		}
		if event.Data == nil || event.Data.ID != "m1" {
			t.Errorf("event data = %+v, want message m1", event.Data)
		}
	}
}

func TestNotifySkipsThirdParties(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	sender := dial(t, srv)
	receiver := dial(t, srv)
	bystander := dial(t, srv)
	sendAuth(t, sender, "u1")
	sendAuth(t, receiver, "u2")
	sendAuth(t, bystander, "u3")
	waitForUser(t, b, "u1", 1)
	waitForUser(t, b, "u2", 1)
	waitForUser(t, b, "u3", 1)

	b.Notify(testMessage("m1", "u1", "u2"))

	readNotification(t, sender)
	readNotification(t, receiver)
	expectSilence(t, bystander)
}

func TestUnauthenticatedConnectionGetsNothing(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	conn := dial(t, srv)
	authed := dial(t, srv)
	sendAuth(t, authed, "u2")
	waitForUser(t, b, "u2", 1)

	b.Notify(testMessage("m1", "u1", "u2"))

	readNotification(t, authed)
	expectSilence(t, conn)
}

func TestMalformedFramesLeaveConnectionUsable(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	conn := dial(t, srv)
	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("writing garbage frame: %v", err)
	}
	if err := conn.WriteJSON(map[string]string{"type": "subscribe", "userId": "u1"}); err != nil {
		t.Fatalf("writing unknown frame: %v", err)
	}
	if err := conn.WriteJSON(map[string]string{"type": "auth"}); err != nil {
		t.Fatalf("writing empty auth frame: %v", err)
	}

	// The connection survives all of the above and a valid auth still works.
	sendAuth(t, conn, "u1")
	waitForUser(t, b, "u1", 1)

	b.Notify(testMessage("m1", "u1", "u2"))
	event := readNotification(t, conn)
	if event.Data.ID != "m1" {
		t.Errorf("event data = %+v, want message m1", event.Data)
	}
}

func TestFirstAuthBindingWins(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	conn := dial(t, srv)
	sendAuth(t, conn, "u1")
	waitForUser(t, b, "u1", 1)

	b.mu.RLock()
	var client *Client
	for c := range b.byUser["u1"] {
		client = c
	}
	b.mu.RUnlock()

	// A rebind attempt is a no-op: the connection stays bound to u1 and
	// is never registered under u2.
	b.HandleControlFrame(client, []byte(`{"type":"auth","userId":"u2"}`))

	if got := client.UserID(); got != "u1" {
		t.Fatalf("UserID() = %q after rebind attempt, want u1", got)
	}
	b.mu.RLock()
	u1Conns := len(b.byUser["u1"])
	u2Conns := len(b.byUser["u2"])
	b.mu.RUnlock()
	if u1Conns != 1 || u2Conns != 0 {
		t.Fatalf("registry has %d u1 / %d u2 connections after rebind attempt, want 1 / 0", u1Conns, u2Conns)
	}

	// The original binding still receives deliveries.
	b.Notify(testMessage("m2", "u1", "u3"))
	event := readNotification(t, conn)
	if event.Data.ID != "m2" {
		t.Errorf("event data = %+v, want message m2", event.Data)
	}
}

func TestSelfMessageDeliveredOnce(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	conn := dial(t, srv)
	sendAuth(t, conn, "u1")
	waitForUser(t, b, "u1", 1)

	b.Notify(testMessage("m1", "u1", "u1"))

	readNotification(t, conn)
	expectSilence(t, conn)
}

func TestMultipleConnectionsPerUser(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	first := dial(t, srv)
	second := dial(t, srv)
	sendAuth(t, first, "u1")
	sendAuth(t, second, "u1")
	waitForUser(t, b, "u1", 2)

	b.Notify(testMessage("m1", "u2", "u1"))

	readNotification(t, first)
	readNotification(t, second)
}

func TestDisconnectPrunesRegistry(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	conn := dial(t, srv)
	sendAuth(t, conn, "u1")
	waitForUser(t, b, "u1", 1)

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && b.ConnectionCount() > 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if got := b.ConnectionCount(); got != 0 {
		t.Fatalf("ConnectionCount() = %d after disconnect, want 0", got)
	}

	// Notifying a gone user is a no-op, not a panic.
	b.Notify(testMessage("m1", "u1", "u2"))
}

func TestDetachIsIdempotent(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	conn := dial(t, srv)
	sendAuth(t, conn, "u1")
	waitForUser(t, b, "u1", 1)

	b.mu.RLock()
	var client *Client
	for c := range b.byUser["u1"] {
		client = c
	}
	b.mu.RUnlock()

	b.Detach(client)
	b.Detach(client)
	b.Detach(nil)

	if got := b.ConnectionCount(); got != 0 {
		t.Fatalf("ConnectionCount() = %d after detach, want 0", got)
	}
}

func TestNotifyNilMessage(t *testing.T) {
	b := NewBridge()
	b.Notify(nil)
}

func TestShutdownClosesEverything(t *testing.T) {
	b := NewBridge()
	srv := newTestServer(t, b)

	authed := dial(t, srv)
	pending := dial(t, srv)
	sendAuth(t, authed, "u1")
	waitForUser(t, b, "u1", 1)

	b.Shutdown()

	if got := b.ConnectionCount(); got != 0 {
		t.Fatalf("ConnectionCount() = %d after shutdown, want 0", got)
	}

	for _, conn := range []*websocket.Conn{authed, pending} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		if _, _, err := conn.ReadMessage(); err == nil {
			t.Error("expected closed connection after shutdown")
		}
	}
}
