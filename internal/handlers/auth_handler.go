package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo-productos/internal/auth"
)

type AuthHandler struct {
	issuer *auth.TokenIssuer
}

func NewAuthHandler(issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// POST /auth/token
// Emite un token para la identidad fija, sin credenciales.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	token, err := h.issuer.IssueToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "No se pudo generar el token"})
		return
	}
	c.JSON(http.StatusCreated, token)
}
