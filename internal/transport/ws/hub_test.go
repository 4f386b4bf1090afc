package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	r := mux.NewRouter()
	r.HandleFunc("/v1/ws/sessions/{sessionId}", NewHandler(hub).SessionWS)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		hub.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/sessions/" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForSession(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SessionCount(sessionID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d connections for %s, got %d", want, sessionID, hub.SessionCount(sessionID))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesOnlyTheSession(t *testing.T) {
	hub, srv := newTestServer(t)
	mine := dial(t, srv, "tab-a")
	other := dial(t, srv, "tab-b")
	waitForSession(t, hub, "tab-a", 1)
	waitForSession(t, hub, "tab-b", 1)

	hub.BroadcastToSession("tab-a", "analysis_started", map[string]string{"scale": "dignity"})

	mine.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := mine.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if msg.Type != "analysis_started" {
		t.Fatalf("expected analysis_started, got %s", msg.Type)
	}
	if string(msg.Payload) != `{"scale":"dignity"}` {
		t.Fatalf("unexpected payload %s", msg.Payload)
	}

	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := other.ReadMessage(); err == nil {
		t.Fatalf("expected no message for another session")
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "tab-c")
	waitForSession(t, hub, "tab-c", 1)

	conn.Close()
	waitForSession(t, hub, "tab-c", 0)
}

func TestBroadcastWithoutSubscribersIsDropped(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	for i := 0; i < 1000; i++ {
		hub.BroadcastToSession("nobody", "analysis_completed", i)
	}
}
