package session

import (
	"errors"
	"fmt"

	"noteshare/client"
)

// Category is the user-facing classification of an auth failure.
type Category string

const (
	CategoryInvalidInput       Category = "invalid-input"
	CategoryInvalidCredentials Category = "invalid-credentials"
	CategoryUsernameTaken      Category = "username-taken"
	CategoryEmailTaken         Category = "email-taken"
	CategoryConflict           Category = "conflict"
	CategoryServerError        Category = "server-error"
	CategoryConnectivity       Category = "connectivity-error"
)

// Failure is an auth operation error mapped into a presentation
// category. The underlying API error stays reachable via Unwrap.
type Failure struct {
	Category Category
	Message  string
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Category, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// classify maps the client's typed errors onto presentation categories
// per the login/register contract.
func classify(err error) *Failure {
	var validation *client.ValidationError
	if errors.As(err, &validation) {
		return &Failure{
			Category: CategoryInvalidInput,
			Message:  "Invalid input. Please check your fields.",
			Err:      err,
		}
	}

	var auth *client.AuthError
	if errors.As(err, &auth) {
		return &Failure{
			Category: CategoryInvalidCredentials,
			Message:  "Incorrect username/email or password.",
			Err:      err,
		}
	}

	var conflict *client.ConflictError
	if errors.As(err, &conflict) {
		switch conflict.Field {
		case client.ConflictUsername:
			return &Failure{
				Category: CategoryUsernameTaken,
				Message:  "That username is already taken.",
				Err:      err,
			}
		case client.ConflictEmail:
			return &Failure{
				Category: CategoryEmailTaken,
				Message:  "That email is already registered.",
				Err:      err,
			}
		default:
			return &Failure{
				Category: CategoryConflict,
				Message:  conflict.Message,
				Err:      err,
			}
		}
	}

	var server *client.ServerError
	if errors.As(err, &server) {
		return &Failure{
			Category: CategoryServerError,
			Message:  "Server error. Please try again later.",
			Err:      err,
		}
	}

	var network *client.NetworkError
	if errors.As(err, &network) {
		return &Failure{
			Category: CategoryConnectivity,
			Message:  "Network error. Please check your connection.",
			Err:      err,
		}
	}

	return &Failure{
		Category: CategoryServerError,
		Message:  "An unexpected error occurred.",
		Err:      err,
	}
}
