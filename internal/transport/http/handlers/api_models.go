package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Country      string `json:"country"`
	Department   string `json:"department"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
	DocumentType string `json:"documenttype"`
	Document     string `json:"document"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Avatar       string `json:"avatar"`
	Active       *bool  `json:"active"`
}

// UserResponse is the public view of a user record. The password hash is
// never serialized.
type UserResponse struct {
	ID           string `json:"id"`
	Firstname    string `json:"firstname"`
	Lastname     string `json:"lastname"`
	Country      string `json:"country"`
	Department   string `json:"department,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	State        string `json:"state,omitempty"`
	DocumentType string `json:"documenttype"`
	Document     string `json:"document"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar,omitempty"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}

func newUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Country:      user.Country,
		Department:   user.Department,
		Municipality: user.Municipality,
		State:        user.State,
		DocumentType: user.DocumentType,
		Document:     user.Document,
		Email:        user.Email,
		Avatar:       user.Avatar,
		Role:         user.Role,
		Active:       user.Active,
	}
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries freshly issued token pair plus the authenticated user.
type LoginResponse struct {
	Access    string       `json:"access"`
	Refresh   string       `json:"refresh"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// RefreshRequest defines the payload for the refresh endpoint.
type RefreshRequest struct {
	Token string `json:"token"`
}

// RefreshResponse carries a newly minted access token.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// UpdateUserRequest carries optional user field updates. Absent fields keep
// their stored values.
type UpdateUserRequest struct {
	Firstname    *string `json:"firstname"`
	Lastname     *string `json:"lastname"`
	Country      *string `json:"country"`
	Department   *string `json:"department"`
	Municipality *string `json:"municipality"`
	State        *string `json:"state"`
	DocumentType *string `json:"documenttype"`
	Document     *string `json:"document"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	Avatar       *string `json:"avatar"`
	Role         *string `json:"role"`
	Active       *bool   `json:"active"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
