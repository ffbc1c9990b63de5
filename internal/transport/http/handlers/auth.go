package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ValentinaMarinG/react-project-backend/internal/usecase"
)

// AuthHandler exposes registration, login, and token refresh endpoints.
type AuthHandler struct {
	auth         *usecase.AuthService
	registration *usecase.RegistrationService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, registration *usecase.RegistrationService) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		registration: registration,
	}
}

// RegisterRoutes binds authentication routes onto the given group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/refresh_access_token", h.refresh)
}

var registrationErrorCases = []ErrorCase{
	{Err: usecase.ErrInvalidDocumentType, Status: http.StatusBadRequest, Message: "invalid document type"},
	{Err: usecase.ErrColombiaLocationRequired, Status: http.StatusBadRequest, Message: "department and municipality are required for Colombia"},
	{Err: usecase.ErrStateNotAllowed, Status: http.StatusBadRequest, Message: "state must be empty for Colombia"},
	{Err: usecase.ErrLocationNotAllowed, Status: http.StatusBadRequest, Message: "department and municipality must be empty outside Colombia"},
	{Err: usecase.ErrStateRequired, Status: http.StatusBadRequest, Message: "state is required outside Colombia"},
	{Err: usecase.ErrEmailRequired, Status: http.StatusBadRequest, Message: "email is required"},
	{Err: usecase.ErrInvalidEmailDomain, Status: http.StatusBadRequest, Message: "email domain is not allowed"},
	{Err: usecase.ErrPasswordRequired, Status: http.StatusBadRequest, Message: "password is required"},
}

func (h *AuthHandler) register(c *gin.Context) {
	if h.registration == nil {
		c.JSON(http.StatusServiceUnavailable, NewErrorResponse(c, "registration service unavailable"))
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	user, err := h.registration.RegisterUser(c.Request.Context(), usecase.RegisterInput{
		Firstname:    strings.TrimSpace(req.Firstname),
		Lastname:     strings.TrimSpace(req.Lastname),
		Country:      strings.TrimSpace(req.Country),
		Department:   strings.TrimSpace(req.Department),
		Municipality: strings.TrimSpace(req.Municipality),
		State:        strings.TrimSpace(req.State),
		DocumentType: strings.TrimSpace(req.DocumentType),
		Document:     strings.TrimSpace(req.Document),
		Email:        req.Email,
		Password:     req.Password,
		Avatar:       req.Avatar,
		Active:       req.Active,
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, NewErrorResponse(c, "email or document already registered"))
			return
		}

		RespondWithMappedError(c, err, registrationErrorCases,
			http.StatusInternalServerError, "failed to register user")
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user.PublicView()))
}

var loginErrorCases = []ErrorCase{
	{Err: usecase.ErrCredentialsRequired, Status: http.StatusBadRequest, Message: "email and password are required"},
	{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
	{Err: usecase.ErrIncorrectPassword, Status: http.StatusBadRequest, Message: "incorrect password"},
	{Err: usecase.ErrInactiveAccount, Status: http.StatusUnauthorized, Message: "account is not active"},
}

func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "email and password are required"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		RespondWithMappedError(c, err, loginErrorCases,
			http.StatusInternalServerError, "failed to log in")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Access:    result.AccessToken,
		Refresh:   result.RefreshToken,
		ExpiresIn: result.ExpiresIn,
		User:      newUserResponse(result.User),
	})
}

var refreshErrorCases = []ErrorCase{
	{Err: usecase.ErrRefreshTokenRequired, Status: http.StatusBadRequest, Message: "refresh token is required"},
	{Err: usecase.ErrNotRefreshToken, Status: http.StatusUnauthorized, Message: "token is not a refresh token"},
}

func (h *AuthHandler) refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "refresh token is required"))
		return
	}

	accessToken, err := h.auth.RefreshAccessToken(c.Request.Context(), req.Token)
	if err != nil {
		RespondWithMappedError(c, err, refreshErrorCases,
			http.StatusInternalServerError, "failed to refresh access token")
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{AccessToken: accessToken})
}
