package main

import (
	"testing"

	"noteshare/client"
)

func TestMergeDraft(t *testing.T) {
	current := &client.Note{
		Title:    "Trip Notes",
		Content:  "packing list",
		ImageURL: "https://cdn.example.com/notes/n1",
		IsPublic: true,
	}

	tests := []struct {
		name    string
		edit    client.NoteDraft
		changed map[string]bool
		want    client.NoteDraft
	}{
		{
			name:    "NothingSetKeepsEverything",
			edit:    client.NoteDraft{},
			changed: map[string]bool{},
			want: client.NoteDraft{
				Title:    "Trip Notes",
				Content:  "packing list",
				ImageURL: "https://cdn.example.com/notes/n1",
				IsPublic: true,
			},
		},
		{
			name:    "TitleOnlyKeepsVisibility",
			edit:    client.NoteDraft{Title: "Renamed"},
			changed: map[string]bool{"title": true},
			want: client.NoteDraft{
				Title:    "Renamed",
				Content:  "packing list",
				ImageURL: "https://cdn.example.com/notes/n1",
				IsPublic: true,
			},
		},
		{
			name:    "ExplicitPrivateFlips",
			edit:    client.NoteDraft{IsPublic: false},
			changed: map[string]bool{"public": true},
			want: client.NoteDraft{
				Title:    "Trip Notes",
				Content:  "packing list",
				ImageURL: "https://cdn.example.com/notes/n1",
				IsPublic: false,
			},
		},
		{
			name:    "ImageCanBeCleared",
			edit:    client.NoteDraft{ImageURL: ""},
			changed: map[string]bool{"image": true},
			want: client.NoteDraft{
				Title:    "Trip Notes",
				Content:  "packing list",
				IsPublic: true,
			},
		},
		{
			name:    "NewContentReplaces",
			edit:    client.NoteDraft{Content: "itinerary"},
			changed: map[string]bool{},
			want: client.NoteDraft{
				Title:    "Trip Notes",
				Content:  "itinerary",
				ImageURL: "https://cdn.example.com/notes/n1",
				IsPublic: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeDraft(current, tt.edit, func(flag string) bool {
				return tt.changed[flag]
			})
			if got != tt.want {
				t.Errorf("mergeDraft mismatch:\n got  %+v\n want %+v", got, tt.want)
			}
		})
	}
}
