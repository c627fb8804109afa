package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/service"
)

const authClaimsKey = "auth_claims"

// AuthRequired valida el session token y guarda los claims en el
// contexto. El token puede venir en la cookie de sesion o como bearer.
func AuthRequired(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			respondError(c, http.StatusInternalServerError, "jwt not configured")
			return
		}

		token := extractToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := jwtSvc.Parse(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		if token := strings.TrimSpace(cookie); token != "" {
			return token
		}
	}
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

// GetAuthClaims obtiene los claims del contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// isOwnerOrAdmin es el predicado de autorizacion para recursos con dueno.
func isOwnerOrAdmin(claims service.Claims, ownerID string) bool {
	return claims.IsAdmin || claims.UserID == ownerID
}
