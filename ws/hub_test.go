package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"noteshare/model"
)

func dialFeed(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeFeed))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial feed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestFeedBroadcastsPublishedNotes(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialFeed(t, hub)

	// Registration runs through the hub loop; give it a beat before
	// publishing so the client is in the fan-out set.
	time.Sleep(50 * time.Millisecond)

	hub.NotePublished(
		&model.Note{ID: "n1", Title: "Hello Feed"},
		&model.PublicIdentity{Username: "quietwyatt"},
	)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read feed message: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Feed frame is not valid JSON: %v", err)
	}
	if msg.Type != MsgNotePublished {
		t.Errorf("Expected type %q, got %q", MsgNotePublished, msg.Type)
	}
	if msg.NoteID != "n1" || msg.Title != "Hello Feed" {
		t.Errorf("Unexpected message payload: %+v", msg)
	}
	if msg.Author != "quietwyatt" {
		t.Errorf("Expected author attribution, got %q", msg.Author)
	}
}

func TestFeedHandlesAnonymousAuthor(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialFeed(t, hub)
	time.Sleep(50 * time.Millisecond)

	hub.NotePublished(&model.Note{ID: "n2", Title: "No Author"}, nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read feed message: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Feed frame is not valid JSON: %v", err)
	}
	if msg.Author != "" {
		t.Errorf("Expected empty author, got %q", msg.Author)
	}
}

func TestBroadcastReachesEveryWatcher(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := dialFeed(t, hub)
	second := dialFeed(t, hub)
	time.Sleep(50 * time.Millisecond)

	hub.NotePublished(&model.Note{ID: "n3", Title: "Fan Out"}, nil)

	for i, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("Watcher %d never received the broadcast: %v", i, err)
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Watcher %d got a bad frame: %v", i, err)
		}
		if msg.NoteID != "n3" {
			t.Errorf("Watcher %d got the wrong note: %+v", i, msg)
		}
	}
}
