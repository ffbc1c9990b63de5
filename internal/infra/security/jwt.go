package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
)

var (
	// ErrInvalidToken indicates the token is malformed or its signature does not verify.
	ErrInvalidToken = errors.New("jwt: invalid token")
	// ErrExpiredToken indicates the token verified but its expiration has passed.
	ErrExpiredToken = errors.New("jwt: token expired")
)

// TokenClaims is the claim set embedded in every issued token. TokenKind
// tags the credential so the refresh endpoint can reject access tokens.
type TokenClaims struct {
	UserID    string           `json:"user_id"`
	Role      string           `json:"role"`
	TokenKind domain.TokenKind `json:"token_kind"`
	jwt.RegisteredClaims
}

const (
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenIssuer signs and verifies HS256 tokens with a process-wide secret.
// The secret is immutable after construction.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer constructs a TokenIssuer. Unset TTLs fall back to the
// defaults; the refresh TTL is expected to exceed the access TTL.
func NewTokenIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("jwt: signing secret is required")
	}

	if accessTTL == 0 {
		accessTTL = defaultAccessTokenTTL
	}
	if refreshTTL == 0 {
		refreshTTL = defaultRefreshTokenTTL
	}

	return &TokenIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// AccessTokenTTL reports the configured access token lifetime.
func (t *TokenIssuer) AccessTokenTTL() time.Duration {
	return t.accessTTL
}

// IssueAccessToken signs a short-lived access token for the user.
func (t *TokenIssuer) IssueAccessToken(user domain.User) (string, error) {
	return t.issue(user, domain.TokenKindAccess, t.accessTTL)
}

// IssueRefreshToken signs a refresh token carrying the same claim shape
// with the longer TTL.
func (t *TokenIssuer) IssueRefreshToken(user domain.User) (string, error) {
	return t.issue(user, domain.TokenKindRefresh, t.refreshTTL)
}

func (t *TokenIssuer) issue(user domain.User, kind domain.TokenKind, ttl time.Duration) (string, error) {
	if user.ID == "" {
		return "", fmt.Errorf("jwt: user id is required")
	}

	now := time.Now().UTC()
	claims := TokenClaims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}

	return signed, nil
}

// Parse verifies the signature and expiration of the supplied token and
// returns its claims. Expiry is reported distinctly from all other failures.
func (t *TokenIssuer) Parse(token string) (*TokenClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if parsed == nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
