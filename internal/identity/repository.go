package identity

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	// CreateUser checks email uniqueness and inserts in one transaction,
	// returning ErrEmailTaken when the address is already registered.
	CreateUser(ctx context.Context, u User) error

	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// ListUsersByID returns every row matching the id. The id is expected to
	// be unique but the profile endpoint's contract is a collection, so the
	// repository does not collapse the result.
	ListUsersByID(ctx context.Context, id int64) ([]User, error)

	UpdateProfile(ctx context.Context, p ProfileUpdate) error
}
