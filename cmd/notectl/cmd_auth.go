package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"noteshare/session"
)

func (a *app) registerCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			_, err = a.session.Register(cmd.Context(), args[0], email, password)
			if err != nil {
				return presentFailure(err)
			}

			user := a.session.User()
			fmt.Printf("Registered and logged in as %s <%s>\n", user.Username, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email address")
	cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username-or-email>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			_, err = a.session.Login(cmd.Context(), args[0], password)
			if err != nil {
				return presentFailure(err)
			}

			fmt.Printf("Logged in as %s\n", a.session.User().Username)
			return nil
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pending := newConfirmation("Log out?", func() error {
				a.session.Logout()
				fmt.Println("Logged out")
				return nil
			})
			return pending.resolve(os.Stdin, os.Stdout, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			user := a.session.User()
			fmt.Printf("%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}

// presentFailure surfaces the session store's message when the error
// carries one; other errors pass through unchanged.
func presentFailure(err error) error {
	var failure *session.Failure
	if errors.As(err, &failure) {
		return fmt.Errorf("%s", failure.Message)
	}
	return err
}
