// Package auth implements the email/password gate in front of the game.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/flappyep/internal/storage"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

var (
	ErrInvalidEmail  = errors.New("auth: invalid email address")
	ErrWeakPassword  = errors.New("auth: password should be at least 6 characters")
	ErrEmailInUse    = errors.New("auth: email already in use")
	ErrUnknownEmail  = errors.New("auth: no user with that email")
	ErrWrongPassword = errors.New("auth: wrong password")
	ErrNotVerified   = errors.New("auth: email not verified")
)

// UserStore is the account persistence the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, email string, hash []byte) (int64, error)
	User(ctx context.Context, email string) (storage.User, error)
	SetVerified(ctx context.Context, email string, verified bool) error
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// WithoutVerification lets unverified accounts log in.
func WithoutVerification() Option {
	return func(s *Service) {
		s.requireVerified = false
	}
}

// Service registers and authenticates players.
type Service struct {
	users           UserStore
	cost            int
	requireVerified bool
}

// NewService creates an auth service over users.
func NewService(users UserStore, opts ...Option) *Service {
	s := &Service{
		users:           users,
		cost:            bcrypt.DefaultCost,
		requireVerified: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail rejects anything that is not a bare address.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates an unverified account.
func (s *Service) Register(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) < MinPasswordLen {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("auth: cannot hash password: %w", err)
	}
	if _, err := s.users.CreateUser(ctx, email, hash); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return ErrEmailInUse
		}
		return fmt.Errorf("auth: register: %w", err)
	}
	return nil
}

// Verify marks an account as verified.
func (s *Service) Verify(ctx context.Context, email string) error {
	err := s.users.SetVerified(ctx, NormalizeEmail(email), true)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUnknownEmail
	}
	if err != nil {
		return fmt.Errorf("auth: verify: %w", err)
	}
	return nil
}

// Login checks the credentials and returns the normalized email, which is
// the player identity for scores.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = NormalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return "", err
	}

	u, err := s.users.User(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrUnknownEmail
	}
	if err != nil {
		return "", fmt.Errorf("auth: login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return "", ErrWrongPassword
	}
	if s.requireVerified && !u.Verified {
		return "", ErrNotVerified
	}
	return email, nil
}

// Message maps an auth error to the text shown on the login form.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownEmail):
		return "No user found with this email."
	case errors.Is(err, ErrWrongPassword):
		return "Incorrect password."
	case errors.Is(err, ErrInvalidEmail):
		return "Invalid email address."
	case errors.Is(err, ErrNotVerified):
		return "Please verify your email before logging in."
	case errors.Is(err, ErrEmailInUse):
		return "Email already in use."
	case errors.Is(err, ErrWeakPassword):
		return "Password should be at least 6 characters."
	default:
		return "Something went wrong. Please try again."
	}
}
