package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware exige un bearer token válido en Authorization y rechaza
// con 401 cualquier token ausente, mal formado, expirado o con un
// subject no reconocido.
func (ti *TokenIssuer) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token requerido"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido"})
			return
		}

		sub, err := ti.ParseSubject(parts[1])
		if err != nil || !ti.ValidateSubject(sub) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido"})
			return
		}

		c.Set("subject", sub)
		c.Next()
	}
}
