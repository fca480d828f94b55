package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"noteshare/client"
	"noteshare/notebook"
)

func (a *app) notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Work with notes",
	}
	cmd.AddCommand(
		a.notesListCmd(),
		a.notesShowCmd(),
		a.notesCreateCmd(),
		a.notesUpdateCmd(),
		a.notesDeleteCmd(),
		a.notesPublicCmd(),
	)
	return cmd
}

func (a *app) notesListCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			book := notebook.New(a.api, notebook.ScopePrivate)
			if err := book.Refresh(cmd.Context()); err != nil {
				return presentFailure(err)
			}
			book.SetQuery(query)
			printNotes(book.Visible())
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by title or content substring")
	return cmd
}

func (a *app) notesPublicCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "public [id]",
		Short: "Browse the public sharing feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				note, err := a.api.GetPublicNote(cmd.Context(), args[0])
				if err != nil {
					return presentFailure(err)
				}
				printNote(note)
				return nil
			}

			book := notebook.New(a.api, notebook.ScopePublic)
			if err := book.Refresh(cmd.Context()); err != nil {
				return presentFailure(err)
			}
			book.SetQuery(query)
			printNotes(book.Visible())
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by title, content or author substring")
	return cmd
}

func (a *app) notesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one of your notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			note, err := a.api.GetNote(cmd.Context(), args[0])
			if err != nil {
				return presentFailure(err)
			}
			printNote(note)
			return nil
		},
	}
}

func (a *app) notesCreateCmd() *cobra.Command {
	var (
		title    string
		public   bool
		imageURL string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note, reading the content from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			content, err := readContent()
			if err != nil {
				return err
			}

			note, err := a.api.CreateNote(cmd.Context(), client.NoteDraft{
				Title:    title,
				Content:  content,
				ImageURL: imageURL,
				IsPublic: public,
			})
			if err != nil {
				return presentFailure(err)
			}
			fmt.Printf("Created note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().BoolVarP(&public, "public", "p", false, "share the note publicly")
	cmd.Flags().StringVar(&imageURL, "image", "", "image URL or data URI to attach")
	cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) notesUpdateCmd() *cobra.Command {
	var (
		title    string
		public   bool
		imageURL string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a note; unset flags and empty stdin keep current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			current, err := a.api.GetNote(cmd.Context(), args[0])
			if err != nil {
				return presentFailure(err)
			}

			content, err := readContent()
			if err != nil {
				return err
			}

			draft := mergeDraft(current, client.NoteDraft{
				Title:    title,
				Content:  content,
				ImageURL: imageURL,
				IsPublic: public,
			}, cmd.Flags().Changed)

			note, err := a.api.UpdateNote(cmd.Context(), args[0], draft)
			if err != nil {
				return presentFailure(err)
			}
			fmt.Printf("Updated note %s\n", note.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "note title")
	cmd.Flags().BoolVarP(&public, "public", "p", false, "share the note publicly")
	cmd.Flags().StringVar(&imageURL, "image", "", "image URL or data URI to attach")
	return cmd
}

// mergeDraft overlays the fields the caller explicitly set on the
// note's current state. The server replaces the whole document on
// update, so anything not mentioned must be carried over — otherwise
// editing a public note's title would silently flip it private.
func mergeDraft(current *client.Note, edit client.NoteDraft, changed func(string) bool) client.NoteDraft {
	draft := client.NoteDraft{
		Title:    current.Title,
		Content:  current.Content,
		ImageURL: current.ImageURL,
		IsPublic: current.IsPublic,
	}
	if changed("title") {
		draft.Title = edit.Title
	}
	if edit.Content != "" {
		draft.Content = edit.Content
	}
	if changed("image") {
		draft.ImageURL = edit.ImageURL
	}
	if changed("public") {
		draft.IsPublic = edit.IsPublic
	}
	return draft
}

func (a *app) notesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}

			pending := newConfirmation(
				fmt.Sprintf("Delete note %s?", args[0]),
				func() error {
					if err := a.api.DeleteNote(cmd.Context(), args[0]); err != nil {
						return presentFailure(err)
					}
					fmt.Println("Deleted")
					return nil
				})
			return pending.resolve(os.Stdin, os.Stdout, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func readContent() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read content from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func printNotes(notes []client.Note) {
	if len(notes) == 0 {
		fmt.Println("No notes")
		return
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, note := range notes {
		visibility := "private"
		if note.IsPublic {
			visibility = "public"
		}
		author := ""
		if note.User != nil {
			author = " by " + note.User.Username
		}
		fmt.Fprintf(w, "%s  [%s]  %s%s\n", note.ID, visibility, note.Title, author)
	}
}

func printNote(note *client.Note) {
	fmt.Printf("ID:      %s\n", note.ID)
	fmt.Printf("Title:   %s\n", note.Title)
	if note.User != nil {
		fmt.Printf("Author:  %s\n", note.User.Username)
	}
	fmt.Printf("Public:  %t\n", note.IsPublic)
	if note.ImageURL != "" {
		fmt.Printf("Image:   %s\n", truncate(note.ImageURL, 80))
	}
	fmt.Printf("Updated: %s\n", note.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Println(note.Content)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
