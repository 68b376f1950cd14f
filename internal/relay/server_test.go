package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iayeshaabid-21/productivity-app/internal/config"
	"github.com/iayeshaabid-21/productivity-app/internal/observability"
)

func newTestRelay(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(config.RelayConfig{}, NewHub(), zap.NewNop(), observability.NewMetrics())
	ts := httptest.NewServer(http.HandlerFunc(srv.handleSocket))
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	payload, err := json.Marshal(frame{Event: event, Data: raw})
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestRelayForwardsToReceiverRoomOnly(t *testing.T) {
	ts := newTestRelay(t)

	sender := dial(t, ts)
	receiver := dial(t, ts)
	bystander := dial(t, ts)

	send(t, sender, eventJoinRoom, "user-a")
	send(t, receiver, eventJoinRoom, "user-b")
	send(t, bystander, eventJoinRoom, "user-c")

	// joins are processed in connection order per socket; give the server a
	// beat before emitting
	time.Sleep(100 * time.Millisecond)

	payload := map[string]string{
		"receiverId": "user-b",
		"senderId":   "user-a",
		"content":    "hello",
	}
	send(t, sender, eventSendMessage, payload)

	receiver.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := receiver.ReadMessage()
	if err != nil {
		t.Fatalf("receiver got no event: %v", err)
	}

	var got frame
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if got.Event != eventReceiveMessage {
		t.Fatalf("expected %s, got %s", eventReceiveMessage, got.Event)
	}
	var body map[string]string
	if err := json.Unmarshal(got.Data, &body); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if body["content"] != "hello" || body["senderId"] != "user-a" || body["receiverId"] != "user-b" {
		t.Fatalf("payload not echoed verbatim: %v", body)
	}

	bystander.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := bystander.ReadMessage(); err == nil {
		t.Fatal("bystander must not receive the event")
	}
}

func TestRelayDropsEventsForUnjoinedReceiver(t *testing.T) {
	ts := newTestRelay(t)

	sender := dial(t, ts)
	listener := dial(t, ts)
	send(t, listener, eventJoinRoom, "user-b")
	time.Sleep(100 * time.Millisecond)

	// receiver never joined; nothing is delivered anywhere
	send(t, sender, eventSendMessage, map[string]string{"receiverId": "user-z", "content": "lost"})

	listener.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, _, err := listener.ReadMessage(); err == nil {
		t.Fatal("no one should have received the event")
	}
}

func TestRelayIgnoresMalformedFrames(t *testing.T) {
	ts := newTestRelay(t)

	sender := dial(t, ts)
	receiver := dial(t, ts)
	send(t, receiver, eventJoinRoom, "user-b")
	time.Sleep(100 * time.Millisecond)

	if err := sender.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	send(t, sender, "unknown_event", map[string]string{"receiverId": "user-b"})
	send(t, sender, eventSendMessage, map[string]string{"content": "no receiver"})

	// connection survives malformed traffic and a valid send still works
	send(t, sender, eventSendMessage, map[string]string{"receiverId": "user-b", "content": "ok"})

	receiver.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := receiver.ReadMessage()
	if err != nil {
		t.Fatalf("receiver got no event: %v", err)
	}
	var got frame
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if got.Event != eventReceiveMessage {
		t.Fatalf("expected %s, got %s", eventReceiveMessage, got.Event)
	}
}
