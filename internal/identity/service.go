package identity

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	redisclient "github.com/clinicdesk/clinic-backend/internal/redis"
)

const minPasswordLength = 8

var (
	ErrMissingFields      = errors.New("name, email, password and role are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("email does not exist or password does not match")
	ErrInvalidName        = errors.New("name must not be empty")
	ErrInvalidAge         = errors.New("age must be between 0 and 150")
	ErrInvalidPhone       = errors.New("phone number must be exactly 10 characters")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type Service struct {
	repo   Repository
	locker redisclient.Locker
}

func NewService(repo Repository, locker redisclient.Locker) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
	}
}

// Register creates a user account. The password is stored as a bcrypt hash,
// never in clear text. A per-email lock plus the repository transaction keep
// two concurrent registrations for the same address from both passing the
// uniqueness check.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return ErrMissingFields
	}
	if len(in.Password) < minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         CoerceRole(in.Role),
	}

	return s.locker.WithLock(ctx, "user:email:"+in.Email, func(lockCtx context.Context) error {
		return s.repo.CreateUser(lockCtx, u)
	})
}

// Login verifies the claimed identity. A missing account and a wrong password
// both surface as ErrInvalidCredentials so the response cannot be used to
// enumerate users.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// GetProfile returns the rows matching the user id. The endpoint's contract
// is a collection even though ids are unique.
func (s *Service) GetProfile(ctx context.Context, userID int64) ([]User, error) {
	users, err := s.repo.ListUsersByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return users, nil
}

func (s *Service) UpdateProfile(ctx context.Context, p ProfileUpdate) error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Age < 0 || p.Age > 150 {
		return ErrInvalidAge
	}
	if len(p.PhoneNo) != 10 {
		return ErrInvalidPhone
	}

	return s.repo.UpdateProfile(ctx, p)
}
