package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/amvenit/amvenit/internal/domain/errors"
	"github.com/amvenit/amvenit/internal/domain/model"
	"github.com/amvenit/amvenit/internal/server/http/dto"
	"github.com/amvenit/amvenit/internal/server/http/middleware"
	"github.com/amvenit/amvenit/internal/usecase"
)

// AuthHandler processes registration, login and the profile endpoint.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domainErrors.ErrValidation)
		return
	}

	_, token, err := h.facade.Register(c.Request.Context(), usecase.RegisterInput{
		Login:        req.Login,
		Password:     req.Password,
		Role:         model.Role(req.Role),
		FullName:     req.FullName,
		Phone:        req.Phone,
		VehiclePlate: req.VehiclePlate,
	})
	if err != nil {
		fail(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{OK: true, Token: token})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, domainErrors.ErrValidation)
		return
	}

	_, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "login sau parolă greșită"})
			return
		}
		fail(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.TokenResponse{OK: true, Token: token})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := CurrentUserID(c)

	profile, err := h.facade.ProfileByID(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		ID:           userID,
		Role:         string(profile.Role),
		FullName:     profile.FullName,
		Phone:        profile.Phone,
		VehiclePlate: profile.VehiclePlate,
	})
}
