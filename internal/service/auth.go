package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/todolist/todolist-go/internal/crypto"
	"github.com/todolist/todolist-go/internal/logger"
	"github.com/todolist/todolist-go/internal/model"
	"github.com/todolist/todolist-go/internal/repository"
)

// AuthService handles registration and login.
type AuthService struct {
	credentials *CredentialStore
	tokens      *crypto.TokenIssuer
	validate    *validator.Validate
	log         *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(credentials *CredentialStore, tokens *crypto.TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{
		credentials: credentials,
		tokens:      tokens,
		validate:    newValidator(),
		log:         log,
	}
}

// Register validates the request and creates the account. No session is issued.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.MessageResponse, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := validateStruct(s.validate, req); err != nil {
		return model.MessageResponse{}, err
	}

	taken, err := s.credentials.Exists(ctx, req.Username, req.Email)
	if err != nil {
		return model.MessageResponse{}, err
	}
	if taken {
		return model.MessageResponse{}, ErrDuplicateCredential
	}

	// A concurrent registration can pass the lookup above; the store's unique
	// constraint reports it as ErrDuplicateCredential.
	user, err := s.credentials.Create(ctx, req)
	if err != nil {
		return model.MessageResponse{}, err
	}

	logger.WithRequestID(ctx, s.log).Info("user registered", zap.String("user_id", user.ID))
	return model.MessageResponse{Message: "User registered successfully!"}, nil
}

// Login authenticates by username or email and issues a session token.
// Unknown identifiers and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier())
	if identifier == "" || req.Password == "" {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	user, err := s.credentials.FindByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.credentials.VerifyDecoy(req.Password)
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !s.credentials.VerifyPassword(user, req.Password) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Token:     token,
	}, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.credentials.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}
