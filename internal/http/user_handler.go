package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/service"
)

// UserHandler mantiene dependencias para los endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con sus dependencias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

// Test maneja GET /api/test.
func (h *UserHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is working!"})
}

// UpdateUser maneja PUT /api/user/update/:userId. Solo el propio usuario
// puede editar su perfil, admin incluido.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID := c.Param("userId")
	if claims.UserID != userID {
		respondError(c, http.StatusForbidden, "You are not allowed to update this user")
		return
	}

	var req struct {
		Username       *string `json:"username"`
		Email          *string `json:"email"`
		Password       *string `json:"password"`
		ProfilePicture *string `json:"profilePicture"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userServ.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.Is(err, service.ErrPasswordManaged):
			respondError(c, http.StatusBadRequest, "Cannot update password for Google accounts")
		case errors.As(err, &ve):
			respondError(c, http.StatusBadRequest, ve.Error())
		case errors.Is(err, service.ErrDuplicateUser):
			respondError(c, http.StatusBadRequest, "Username or email already exists")
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusNotFound, "User not found")
		default:
			h.logger.Error("update user failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Internal Server Error")
		}
		return
	}

	c.JSON(http.StatusOK, newUserView(user))
}

// DeleteUser maneja DELETE /api/user/delete/:userId. Puede borrarse el
// propio usuario o un admin a cualquiera.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID := c.Param("userId")
	if !isOwnerOrAdmin(claims, userID) {
		respondError(c, http.StatusForbidden, "You are not allowed to delete this user")
		return
	}

	if err := h.userServ.Delete(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("delete user failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, "User has been deleted")
}

// GetUsers maneja GET /api/user/getusers (solo admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !claims.IsAdmin {
		respondError(c, http.StatusForbidden, "You are not allowed to see all users")
		return
	}

	startIndex, _ := strconv.Atoi(c.DefaultQuery("startIndex", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "9"))

	result, err := h.userServ.ListUsers(c.Request.Context(), service.ListUsersInput{
		StartIndex: startIndex,
		Limit:      limit,
		Ascending:  c.Query("sort") == "asc",
	})
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":          newUserViews(result.Users),
		"totalUsers":     result.TotalUsers,
		"lastMonthUsers": result.LastMonthUsers,
	})
}

// GetUser maneja GET /api/user/:userId (publico).
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userServ.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("get user failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, newUserView(user))
}
