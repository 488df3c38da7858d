package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/todolist/todolist-go/internal/crypto"
	"github.com/todolist/todolist-go/internal/model"
	"github.com/todolist/todolist-go/internal/repository"
)

// CredentialStore owns user identity: lookup, creation with hashed passwords,
// and password verification.
type CredentialStore struct {
	users  repository.UserRepository
	hasher *crypto.PasswordHasher

	decoyOnce sync.Once
	decoy     string
}

// NewCredentialStore creates a CredentialStore.
func NewCredentialStore(users repository.UserRepository, hasher *crypto.PasswordHasher) *CredentialStore {
	return &CredentialStore{users: users, hasher: hasher}
}

// FindByUsernameOrEmail matches identifier exactly against username or email.
// It returns repository.ErrUserNotFound when nothing matches.
func (c *CredentialStore) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	return c.users.FindByUsernameOrEmail(ctx, identifier, identifier)
}

// Exists reports whether username or email is already taken.
func (c *CredentialStore) Exists(ctx context.Context, username, email string) (bool, error) {
	_, err := c.users.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrUserNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Create hashes the password and persists the user.
func (c *CredentialStore) Create(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	hash, err := c.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := c.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateCredential) {
			return nil, ErrDuplicateCredential
		}
		return nil, err
	}
	return user, nil
}

// VerifyPassword reports whether password matches the user's stored hash.
// A corrupt stored hash counts as a mismatch.
func (c *CredentialStore) VerifyPassword(user *model.User, password string) bool {
	ok, err := c.hasher.Verify(password, user.PasswordHash)
	return err == nil && ok
}

// VerifyDecoy spends the same hashing work as VerifyPassword without a user,
// so a login for an unknown identifier is not measurably faster.
func (c *CredentialStore) VerifyDecoy(password string) {
	c.decoyOnce.Do(func() {
		c.decoy, _ = c.hasher.Hash("decoy-password")
	})
	_, _ = c.hasher.Verify(password, c.decoy)
}

// GetByID retrieves a user by id.
func (c *CredentialStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return c.users.GetByID(ctx, id)
}
