package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sasazame/todo-app-backend/internal/domain"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// newHubServer serves websocket connections that join the hub under the
// user id given in the ?user= query parameter.
func newHubServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.URL.Query().Get("user"), 10, 64)
		if err != nil {
			http.Error(w, "bad user", http.StatusBadRequest)
			return
		}
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(userID, conn, hub).Run()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialHub(t *testing.T, srv *httptest.Server, userID int64) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?user=" + strconv.FormatInt(userID, 10)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, hub *Hub, userID int64, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ConnectionCount(userID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("user %d has %d connections, want %d", userID, hub.ConnectionCount(userID), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		t.Fatalf("unmarshal %q: %v", payload, err)
	}
	return ev
}

func TestPublishReachesOnlyTheOwner(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	alice := dialHub(t, srv, 1)
	bob := dialHub(t, srv, 2)
	waitForConnections(t, hub, 1, 1)
	waitForConnections(t, hub, 2, 1)

	hub.Publish(1, "todo.created", &domain.Todo{ID: 42, UserID: 1, Title: "T1"})

	ev := readEvent(t, alice)
	if ev.Type != "todo.created" || ev.Todo == nil || ev.Todo.ID != 42 {
		t.Errorf("unexpected event: %+v", ev)
	}

	// bob must see nothing; a short read deadline doubles as the wait
	bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, payload, err := bob.ReadMessage(); err == nil {
		t.Errorf("event leaked across users: %s", payload)
	}
}

func TestPublishFansOutToAllConnections(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	tab1 := dialHub(t, srv, 1)
	tab2 := dialHub(t, srv, 1)
	waitForConnections(t, hub, 1, 2)

	hub.Publish(1, "todo.updated", &domain.Todo{ID: 7, UserID: 1, Title: "T1"})

	for _, conn := range []*websocket.Conn{tab1, tab2} {
		ev := readEvent(t, conn)
		if ev.Type != "todo.updated" || ev.Todo.ID != 7 {
			t.Errorf("unexpected event: %+v", ev)
		}
	}
}

func TestDisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	srv := newHubServer(t, hub)

	conn := dialHub(t, srv, 1)
	waitForConnections(t, hub, 1, 1)

	conn.Close()
	waitForConnections(t, hub, 1, 0)

	// publishing with no connections must not panic or block
	hub.Publish(1, "todo.deleted", &domain.Todo{ID: 1, UserID: 1})
}

func TestPublishToUnknownUserIsNoop(t *testing.T) {
	hub := NewHub()
	hub.Publish(99, "todo.created", &domain.Todo{ID: 1, UserID: 99})

	if n := hub.ConnectionCount(99); n != 0 {
		t.Errorf("connection count = %d, want 0", n)
	}
}
