package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"noteshare/client"
	"noteshare/session"
)

// app carries the wired client and session across commands. Both are
// built once in the root PersistentPreRunE.
type app struct {
	config  *client.Config
	api     *client.Client
	session *session.Store
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "notectl",
		Short:         "Command-line client for the noteshare API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := client.LoadConfig()
			if err != nil {
				return err
			}
			a.config = config
			a.session = session.New(config.StateDir)
			a.api = client.New(config, a.session)
			a.session.AttachAPI(a.api)
			a.session.Load()
			return nil
		},
	}

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.notesCmd(),
		a.cropCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// requireSession guards commands that need an authenticated user.
func (a *app) requireSession() error {
	if a.session.State() != session.StateAuthenticated {
		return fmt.Errorf("not logged in; run 'notectl login' first")
	}
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())

	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(password), nil
	}

	// Piped input, e.g. in scripts.
	var password string
	if _, err := fmt.Fscanln(os.Stdin, &password); err != nil {
		return "", err
	}
	return password, nil
}
