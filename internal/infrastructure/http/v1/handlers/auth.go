package handlers

import (
	"github.com/gin-gonic/gin"

	"edr/internal/domain/auth"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	svc *auth.Service
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(base *BaseHandler, svc *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, svc: svc}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds auth.Credentials
	if !h.BindJSON(c, &creds) {
		return
	}

	session, err := h.svc.Login(c.Request.Context(), creds)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, session)
}
