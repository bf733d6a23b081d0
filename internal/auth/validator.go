// Package auth implements the operator sign-in gate.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tnguyen21/securedesk/internal/employee"
)

var (
	// ErrEmptyUsername is a local validation failure; nothing is checked remotely.
	ErrEmptyUsername = errors.New("username is required")
	// ErrRejected means the validator did not accept the credentials.
	ErrRejected = errors.New("invalid username or password")
)

// ConnectivityError reports that the datastore could not be reached while
// checking credentials. The attempt is aborted; the operator may retry.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("datastore unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// Validator decides whether a username/password pair is accepted. An error
// means the decision could not be made.
type Validator interface {
	Validate(ctx context.Context, username, password string) (bool, error)
}

// ValidatorFunc adapts a plain predicate to Validator.
type ValidatorFunc func(username, password string) bool

func (f ValidatorFunc) Validate(_ context.Context, username, password string) (bool, error) {
	return f(username, password), nil
}

// Static accepts exactly one username/password pair.
func Static(username, password string) ValidatorFunc {
	return func(u, p string) bool {
		userOK := subtle.ConstantTimeCompare([]byte(u), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1
		return userOK && passOK
	}
}

// AccountSource looks up stored password hashes.
type AccountSource interface {
	PasswordHash(ctx context.Context, username string) ([]byte, error)
}

// StoreValidator checks credentials against bcrypt hashes in the store.
type StoreValidator struct {
	Accounts AccountSource
}

func (v StoreValidator) Validate(ctx context.Context, username, password string) (bool, error) {
	hash, err := v.Accounts.PasswordHash(ctx, username)
	if errors.Is(err, employee.ErrUnknownAccount) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("comparing password hash: %w", err)
	}
	return true, nil
}

var (
	_ Validator = ValidatorFunc(nil)
	_ Validator = StoreValidator{}
)
