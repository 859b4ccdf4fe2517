package handler

import "github.com/gin-gonic/gin"

// fail writes the uniform JSON error shape used across all endpoints.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
