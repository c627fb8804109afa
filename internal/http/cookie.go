package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName   = "access_token"
	sessionCookieMaxAge = 7 * 24 * 60 * 60
	envProduction       = "production"
)

// cookieAttributes son los atributos de la cookie de sesion, derivados
// solo del ambiente de despliegue.
type cookieAttributes struct {
	MaxAge   int
	SameSite http.SameSite
	Secure   bool
	HTTPOnly bool
}

// sessionCookieAttributes decide los atributos segun el ambiente. En
// produccion el frontend corre en otro origen, asi que la cookie necesita
// SameSite=None y Secure para que el browser la envie cross-site. En
// desarrollo alcanzan los defaults del browser.
func sessionCookieAttributes(environment string) cookieAttributes {
	attrs := cookieAttributes{
		MaxAge:   sessionCookieMaxAge,
		SameSite: http.SameSiteDefaultMode,
		HTTPOnly: true,
	}
	if environment == envProduction {
		attrs.SameSite = http.SameSiteNoneMode
		attrs.Secure = true
	}
	return attrs
}

// setSessionCookie adjunta el token como cookie httpOnly.
func setSessionCookie(c *gin.Context, token, environment string) {
	attrs := sessionCookieAttributes(environment)
	c.SetSameSite(attrs.SameSite)
	c.SetCookie(sessionCookieName, token, attrs.MaxAge, "/", "", attrs.Secure, attrs.HTTPOnly)
}

// clearSessionCookie invalida la cookie de sesion en el browser.
func clearSessionCookie(c *gin.Context, environment string) {
	attrs := sessionCookieAttributes(environment)
	c.SetSameSite(attrs.SameSite)
	c.SetCookie(sessionCookieName, "", -1, "/", "", attrs.Secure, attrs.HTTPOnly)
}
