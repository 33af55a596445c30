package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alexispparra/roots-sub000/internal/response"
)

// ContextEmailKey es la clave de contexto con el email del usuario autenticado.
const ContextEmailKey = "user_email"

// ContextNameKey es la clave de contexto con el nombre del usuario autenticado.
const ContextNameKey = "user_name"

// Middleware valida el header Authorization y deja la identidad en el contexto.
func Middleware(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.UnauthorizedError(c, "missing authorization header")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			response.UnauthorizedError(c, "authorization header must use Bearer scheme")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			response.UnauthorizedError(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextNameKey, claims.Name)
		c.Next()
	}
}

// EmailFromContext devuelve el email autenticado del contexto.
func EmailFromContext(c *gin.Context) string {
	return c.GetString(ContextEmailKey)
}

// NameFromContext devuelve el nombre autenticado del contexto.
func NameFromContext(c *gin.Context) string {
	return c.GetString(ContextNameKey)
}
