package http

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmirSohelSardar/mern-blog-backend/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	userH *UserHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y CORS con credenciales.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(allowedOrigins)))

	authRequired := AuthRequired(jwtSvc)

	api := r.Group("/api")
	api.GET("/test", userH.Test)

	auth := api.Group("/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/signin", authH.Signin)
	auth.POST("/google", authH.Google)

	users := api.Group("/user")
	users.POST("/signout", authH.Signout)
	users.PUT("/update/:userId", authRequired, userH.UpdateUser)
	users.DELETE("/delete/:userId", authRequired, userH.DeleteUser)
	users.GET("/getusers", authRequired, userH.GetUsers)
	users.GET("/:userId", userH.GetUser)

	return r
}

// corsConfig permite los origenes configurados mas cualquier deploy de
// preview *.vercel.app; las credenciales van habilitadas porque la sesion
// viaja en cookie.
func corsConfig(allowedOrigins []string) cors.Config {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOriginFunc = func(origin string) bool {
		if _, ok := allowed[origin]; ok {
			return true
		}
		return strings.HasSuffix(origin, ".vercel.app")
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "x-requested-with"}
	cfg.AllowCredentials = true
	return cfg
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
