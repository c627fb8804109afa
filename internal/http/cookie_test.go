package http

import (
	"net/http"
	"testing"
)

func TestSessionCookieAttributes(t *testing.T) {
	prod := sessionCookieAttributes("production")
	if prod.SameSite != http.SameSiteNoneMode || !prod.Secure {
		t.Fatalf("production cookie must be SameSite=None and Secure: %+v", prod)
	}
	if !prod.HTTPOnly || prod.MaxAge != 7*24*60*60 {
		t.Fatalf("unexpected production attributes: %+v", prod)
	}

	dev := sessionCookieAttributes("development")
	if dev.SameSite != http.SameSiteDefaultMode || dev.Secure {
		t.Fatalf("development cookie must use browser defaults: %+v", dev)
	}
	if !dev.HTTPOnly || dev.MaxAge != 7*24*60*60 {
		t.Fatalf("unexpected development attributes: %+v", dev)
	}
}
