package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
	"github.com/ValentinaMarinG/react-project-backend/internal/core/port"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/security"
	"github.com/ValentinaMarinG/react-project-backend/internal/repository"
)

var (
	// ErrCredentialsRequired indicates the email or password field is missing.
	ErrCredentialsRequired = errors.New("email and password are required")
	// ErrUserNotFound indicates no account exists for the supplied email.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrIncorrectPassword indicates the candidate password does not match the stored hash.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrInactiveAccount indicates the account exists but is not active.
	ErrInactiveAccount = errors.New("account is not active")
	// ErrRefreshTokenRequired indicates the refresh request carried no token.
	ErrRefreshTokenRequired = errors.New("token is required")
	// ErrNotRefreshToken indicates a token of the wrong kind was submitted to the refresh endpoint.
	ErrNotRefreshToken = errors.New("token is not a refresh token")
	// ErrInvalidAccessToken indicates the provided access token is malformed or signature validation failed.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates the provided access token has expired.
	ErrExpiredAccessToken = errors.New("access token expired")
)

// AuthService coordinates login, token verification, and the refresh flow.
type AuthService struct {
	users  port.UserRepository
	hasher port.PasswordHasher
	tokens *security.TokenIssuer
	events port.EventPublisher
	logger *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(
	users port.UserRepository,
	hasher port.PasswordHasher,
	tokens *security.TokenIssuer,
	events port.EventPublisher,
	log *zap.Logger,
) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		events: events,
		logger: log,
	}
}

// LoginInput carries login credentials plus request metadata for auditing.
type LoginInput struct {
	Email     string
	Password  string
	IP        string
	UserAgent string
}

// LoginResult bundles the issued token pair with the authenticated user.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         domain.User
}

// Login validates credentials and issues the access/refresh token pair.
// The checks run in source order: presence, lookup, password, active flag.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return LoginResult{}, ErrCredentialsRequired
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, ErrUserNotFound
		}
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return LoginResult{}, ErrIncorrectPassword
	}

	if !user.Active {
		return LoginResult{}, ErrInactiveAccount
	}

	accessToken, err := s.tokens.IssueAccessToken(*user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err := s.tokens.IssueRefreshToken(*user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue refresh token: %w", err)
	}

	s.publishLoggedIn(ctx, *user, input)

	return LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.AccessTokenTTL() / time.Second),
		User:         user.PublicView(),
	}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access
// token. Tokens of any other kind are rejected even when well-signed.
func (s *AuthService) RefreshAccessToken(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrRefreshTokenRequired
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", fmt.Errorf("decode refresh token: %w", err)
	}

	if claims.TokenKind != domain.TokenKindRefresh {
		return "", ErrNotRefreshToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	accessToken, err := s.tokens.IssueAccessToken(*user)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return accessToken, nil
}

// ParseAccessToken validates a bearer token and returns its claims. The
// active flag is not re-checked here; that check happens only at login.
func (s *AuthService) ParseAccessToken(token string) (*security.TokenClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return nil, ErrExpiredAccessToken
		}
		return nil, ErrInvalidAccessToken
	}

	return claims, nil
}

func (s *AuthService) publishLoggedIn(ctx context.Context, user domain.User, input LoginInput) {
	if s.events == nil {
		return
	}

	event := domain.UserLoggedInEvent{
		EventID:    uuid.NewString(),
		UserID:     user.ID,
		Email:      user.Email,
		LoggedInAt: time.Now().UTC(),
	}
	if input.IP != "" {
		ip := input.IP
		event.IP = &ip
	}
	if input.UserAgent != "" {
		ua := input.UserAgent
		event.UserAgent = &ua
	}

	if err := s.events.PublishUserLoggedIn(ctx, event); err != nil {
		s.logger.Warn("failed to publish user.logged_in event",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}
}
