package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/service"
)

// AuthHandler mantiene dependencias para los endpoints de autenticacion.
type AuthHandler struct {
	logger      *zap.Logger
	userServ    *service.UserService
	jwtServ     *service.JWTService
	environment string
}

// NewAuthHandler crea una instancia de AuthHandler con sus dependencias.
func NewAuthHandler(logger *zap.Logger, userServ *service.UserService, jwtServ *service.JWTService, environment string) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userServ:    userServ,
		jwtServ:     jwtServ,
		environment: environment,
	}
}

// Signup maneja POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	err := h.userServ.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			respondError(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, service.ErrDuplicateUser):
			respondError(c, http.StatusBadRequest, "Username or email already exists")
		default:
			h.logger.Error("signup failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, "Signup successful")
}

// Signin maneja POST /api/auth/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.userServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			respondError(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, http.StatusBadRequest, "Invalid password")
		case errors.Is(err, service.ErrRateLimited):
			respondError(c, http.StatusTooManyRequests, "Too many login attempts, try again later")
		default:
			h.logger.Error("signin failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	token, err := h.jwtServ.Issue(user.ID, user.IsAdmin)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	setSessionCookie(c, token, h.environment)
	c.JSON(http.StatusOK, newUserView(user))
}

// Google maneja POST /api/auth/google. La asercion del proveedor ya viene
// verificada por el frontend (Firebase); aca solo se reconcilia contra las
// cuentas locales.
func (h *AuthHandler) Google(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		PhotoURL string `json:"googlePhotoUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and name are required")
		return
	}

	user, err := h.userServ.ReconcileGoogle(c.Request.Context(), service.GoogleLogin{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			respondError(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, service.ErrDuplicateUser):
			respondError(c, http.StatusBadRequest, "Username or email already exists")
		default:
			h.logger.Error("google login failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	token, err := h.jwtServ.Issue(user.ID, user.IsAdmin)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	setSessionCookie(c, token, h.environment)
	c.JSON(http.StatusOK, newUserView(user))
}

// Signout maneja POST /api/user/signout.
func (h *AuthHandler) Signout(c *gin.Context) {
	clearSessionCookie(c, h.environment)
	c.JSON(http.StatusOK, "User has been signed out")
}
