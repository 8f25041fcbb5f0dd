package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/sahan-deakin/something-awesome/internal/auth"
	dom "github.com/sahan-deakin/something-awesome/internal/domain"
	"github.com/sahan-deakin/something-awesome/internal/repo"
	"github.com/sahan-deakin/something-awesome/internal/utils"
)

// MinPasswordLength is the registration floor for password length.
const MinPasswordLength = 6

var (
	// ErrInvalidCredentials covers both unknown user and wrong password,
	// so a login failure never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateUser means the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrPasswordTooShort rejects passwords under MinPasswordLength runes.
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
)

// UserService handles registration and credential checks.
type UserService struct {
	repo   repo.UserRepo
	hasher *auth.Hasher
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, h *auth.Hasher) *UserService {
	return &UserService{repo: r, hasher: h}
}

// ValidateCredentials checks username and password; returns the user when
// both are right. Every failure mode except a storage error collapses
// into ErrInvalidCredentials.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register validates the password, probes for an existing username/email,
// then inserts the new user. The probe is best-effort; a racing insert is
// still caught by the unique indexes and reported as ErrDuplicateUser.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	if len(password) < MinPasswordLength {
		return dom.User{}, ErrPasswordTooShort
	}

	_, err := s.repo.GetByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return dom.User{}, ErrDuplicateUser
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, username, email, hash)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrDuplicateUser
		}
		return dom.User{}, err
	}
	return u, nil
}
