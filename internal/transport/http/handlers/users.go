package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ValentinaMarinG/react-project-backend/internal/transport/http/middleware"
	"github.com/ValentinaMarinG/react-project-backend/internal/usecase"
)

// UserHandler exposes the authenticated CRUD surface over user records.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes binds user routes onto the given group. The group is
// expected to carry the auth guard already; writeGuards run ahead of the
// mutating handlers only, so reads stay open to any authenticated caller.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	r.GET("/me", h.me)
	r.GET("", h.list)
	r.GET("/:id", h.get)
	r.POST("", guarded(writeGuards, h.create)...)
	r.PATCH("/:id", guarded(writeGuards, h.update)...)
	r.DELETE("/:id", guarded(writeGuards, h.delete)...)
}

func guarded(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := append([]gin.HandlerFunc{}, guards...)
	return append(chain, handler)
}

func (h *UserHandler) me(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load user"))
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to load user"))
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *UserHandler) list(c *gin.Context) {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "active must be a boolean"))
			return
		}
		active = &parsed
	}

	users, err := h.users.List(c.Request.Context(), active)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list users"))
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, newUserResponse(u))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) create(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user payload"))
		return
	}

	user, err := h.users.Create(c.Request.Context(), usecase.RegisterInput{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Country:      req.Country,
		Department:   req.Department,
		Municipality: req.Municipality,
		State:        req.State,
		DocumentType: req.DocumentType,
		Document:     req.Document,
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
			http.StatusInternalServerError, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

func (h *UserHandler) update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user payload"))
		return
	}

	err := h.users.Update(c.Request.Context(), c.Param("id"), usecase.UpdateInput{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Country:      req.Country,
		Department:   req.Department,
		Municipality: req.Municipality,
		State:        req.State,
		DocumentType: req.DocumentType,
		Document:     req.Document,
		Email:        req.Email,
		Password:     req.Password,
		Avatar:       req.Avatar,
		Role:         req.Role,
		Active:       req.Active,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "user not found"))
			return
		}
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, NewErrorResponse(c, "email or document already registered"))
			return
		}
		RespondWithMappedError(c, err, registrationErrorCases,
			http.StatusInternalServerError, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "user updated"})
}

func (h *UserHandler) delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, NewErrorResponse(c, "user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to delete user"))
		return
	}

	c.Status(http.StatusNoContent)
}
