package hub

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func dialTestHub(t *testing.T, h *Hub) (*websocket.Conn, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(h.HandleWS))
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial hub: %v", err)
	}
	return conn, server
}

func TestNotifyReachesConnectedClient(t *testing.T) {
	h := New(zap.NewNop())
	conn, server := dialTestHub(t, h)
	defer server.Close()
	defer conn.Close()

	waitForClients(t, h, 1)
	h.Notify("interview_started", map[string]string{"candidateId": "c-1"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if event.Type != "interview_started" {
		t.Fatalf("expected interview_started event, got %q", event.Type)
	}
}

func TestClosedClientIsDropped(t *testing.T) {
	h := New(zap.NewNop())
	conn, server := dialTestHub(t, h)
	defer server.Close()

	waitForClients(t, h, 1)
	conn.Close()

	// The read loop notices the close; notifying afterwards must not
	// leave the dead connection registered.
	waitForClients(t, h, 0)
	h.Notify("question_advanced", nil)
	if got := h.ClientCount(); got != 0 {
		t.Fatalf("expected no clients, got %d", got)
	}
}

func TestStalledClientIsDroppedByWriteDeadline(t *testing.T) {
	h := New(zap.NewNop())
	h.writeTimeout = 50 * time.Millisecond
	conn, server := dialTestHub(t, h)
	defer server.Close()
	defer conn.Close()
	waitForClients(t, h, 1)

	// The client never reads. Once the connection buffers fill, each
	// write must fail by deadline instead of blocking Notify, and the
	// stalled client must be deregistered.
	payload := strings.Repeat("x", 64*1024)
	deadline := time.Now().Add(5 * time.Second)
	for h.ClientCount() > 0 && time.Now().Before(deadline) {
		h.Notify("question_advanced", payload)
	}
	if got := h.ClientCount(); got != 0 {
		t.Fatalf("stalled client still registered, have %d clients", got)
	}
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, have %d", want, h.ClientCount())
}
