package notebook

import (
	"context"
	"strings"

	"noteshare/client"
)

// Source is the slice of the API client a notebook reads from.
type Source interface {
	ListNotes(ctx context.Context) ([]client.Note, error)
	ListPublicNotes(ctx context.Context) ([]client.Note, error)
}

// Scope selects which collection a notebook holds.
type Scope int

const (
	// ScopePrivate holds the session user's own notes.
	ScopePrivate Scope = iota
	// ScopePublic holds the sharing feed.
	ScopePublic
)

// Notebook is an in-memory collection of notes with a live substring
// filter over it. Refresh replaces the collection; SetQuery narrows the
// visible subset without touching the collection itself.
type Notebook struct {
	source Source
	scope  Scope

	notes []client.Note
	query string
}

func New(source Source, scope Scope) *Notebook {
	return &Notebook{source: source, scope: scope}
}

// Refresh reloads the collection from the API. On failure the
// collection is cleared rather than left stale.
func (n *Notebook) Refresh(ctx context.Context) error {
	var (
		notes []client.Note
		err   error
	)
	switch n.scope {
	case ScopePublic:
		notes, err = n.source.ListPublicNotes(ctx)
	default:
		notes, err = n.source.ListNotes(ctx)
	}
	if err != nil {
		n.notes = nil
		return err
	}
	n.notes = notes
	return nil
}

// SetQuery sets the filter term. An empty query makes every note
// visible again.
func (n *Notebook) SetQuery(query string) {
	n.query = query
}

func (n *Notebook) Query() string {
	return n.query
}

// Len is the size of the full collection, ignoring the filter.
func (n *Notebook) Len() int {
	return len(n.notes)
}

// All returns the full collection in feed order.
func (n *Notebook) All() []client.Note {
	return n.notes
}

// Visible returns the notes matching the current query. Matching is a
// case-insensitive substring test over title, content and, when an
// author is attached, the author's username.
func (n *Notebook) Visible() []client.Note {
	if n.query == "" {
		return n.notes
	}

	term := strings.ToLower(n.query)
	matched := make([]client.Note, 0, len(n.notes))
	for _, note := range n.notes {
		if matches(&note, term) {
			matched = append(matched, note)
		}
	}
	return matched
}

func matches(note *client.Note, term string) bool {
	if strings.Contains(strings.ToLower(note.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(note.Content), term) {
		return true
	}
	if note.User != nil && strings.Contains(strings.ToLower(note.User.Username), term) {
		return true
	}
	return false
}
