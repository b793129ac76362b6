package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finledger/internal/domain"
)

// Authentication failures. Distinct internally so logs can tell enumeration
// attempts from typos; the HTTP layer surfaces one generic message for both.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrBadCredential = errors.New("bad credential")
)

// UserStore is the read surface the auth flow needs from the credential
// store, plus the single write used to upgrade legacy digests.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateDigest(ctx context.Context, id int64, digest string) error
}

// Service orchestrates lookup, password check, and token issuance into one
// decision. It performs one store read per attempt and never retries.
type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens *TokenCodec
	logger *slog.Logger
}

// NewService creates an authentication service.
func NewService(users UserStore, hasher PasswordHasher, tokens *TokenCodec, logger *slog.Logger) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Authenticate verifies the email/password pair and mints a bearer token.
// Returns ErrUserNotFound, ErrBadCredential, or a wrapped store error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("credential store lookup: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordDigest)
	if err != nil {
		return nil, "", fmt.Errorf("verify digest for user %d: %w", user.ID, err)
	}
	if !ok {
		return nil, "", ErrBadCredential
	}

	// Opportunistic migration off the legacy unsalted scheme. Best-effort:
	// a failed rehash must not fail the login.
	if s.hasher.NeedsUpgrade(user.PasswordDigest) {
		if digest, hashErr := s.hasher.Hash(password); hashErr == nil {
			if updErr := s.users.UpdateDigest(ctx, user.ID, digest); updErr != nil {
				s.logger.Warn("legacy digest rehash failed", "user_id", user.ID, "error", updErr)
			} else {
				user.PasswordDigest = digest
				s.logger.Info("upgraded legacy password digest", "user_id", user.ID)
			}
		}
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}
