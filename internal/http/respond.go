package http

import "github.com/gin-gonic/gin"

// errorBody es la forma uniforme de error que espera el frontend.
type errorBody struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// respondError escribe la respuesta de error uniforme y aborta la cadena
// de middlewares.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{
		Success:    false,
		Message:    message,
		StatusCode: status,
	})
}
