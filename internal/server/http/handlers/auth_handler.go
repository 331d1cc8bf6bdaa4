package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/server/http/dto"
	"github.com/polkiloo/stockease/internal/server/http/middleware"
)

// AuthHandler processes registration, login and session endpoints.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.facade.Register(c.Request.Context(), model.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			abortWithMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, err)
		return
	}

	middleware.SetAuthCookie(c, session.Token)
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	middleware.SetAuthCookie(c, session.Token)
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.facade.Logout(c.Request.Context(), CurrentToken(c)); err != nil {
		abortWithError(c, err)
		return
	}
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/users/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.facade.Me(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe handles PUT /api/users/me.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), model.ProfileUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}
