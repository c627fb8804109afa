package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/service"
)

func newGuardedRouter(jwtSvc *service.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(jwtSvc), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID, "isAdmin": claims.IsAdmin})
	})
	return r
}

func TestAuthRequiredCookie(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret")
	router := newGuardedRouter(jwtSvc)

	token, err := jwtSvc.Issue("u1", true)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["id"] != "u1" || body["isAdmin"] != true {
		t.Fatalf("unexpected claims: %v", body)
	}
}

func TestAuthRequiredBearer(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret")
	router := newGuardedRouter(jwtSvc)

	token, err := jwtSvc.Issue("u1", false)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAuthRequiredMissingToken(t *testing.T) {
	router := newGuardedRouter(service.NewJWTService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["statusCode"] != float64(401) {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	router := newGuardedRouter(service.NewJWTService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestIsOwnerOrAdmin(t *testing.T) {
	owner := service.Claims{UserID: "u1"}
	admin := service.Claims{UserID: "u9", IsAdmin: true}
	stranger := service.Claims{UserID: "u2"}

	if !isOwnerOrAdmin(owner, "u1") {
		t.Fatalf("owner must be allowed")
	}
	if !isOwnerOrAdmin(admin, "u1") {
		t.Fatalf("admin must be allowed")
	}
	if isOwnerOrAdmin(stranger, "u1") {
		t.Fatalf("stranger must be denied")
	}
}
