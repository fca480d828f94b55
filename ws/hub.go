package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"noteshare/model"
)

// Message is one frame on the public-notes feed.
type Message struct {
	Type      string    `json:"type"`
	NoteID    string    `json:"note_id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Author    string    `json:"author,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const MsgNotePublished = "note.published"

// Hub maintains connected feed watchers and fans published-note events
// out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister/broadcast events until the process
// exits. Start it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("[WS] marshal failed: %v", err)
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotePublished implements usecase.Publisher: every feed watcher hears
// about a note the moment it turns public.
func (h *Hub) NotePublished(note *model.Note, author *model.PublicIdentity) {
	msg := &Message{
		Type:      MsgNotePublished,
		NoteID:    note.ID,
		Title:     note.Title,
		Timestamp: time.Now(),
	}
	if author != nil {
		msg.Author = author.Username
	}

	select {
	case h.broadcast <- msg:
	default:
		log.Printf("[WS] broadcast buffer full, dropping %s", msg.NoteID)
	}
}
