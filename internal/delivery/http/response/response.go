package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope: {"ok": true} on success, {"error": "..."} on failure.
type Response struct {
	OK    bool   `json:"ok,omitempty"`
	Error string `json:"error,omitempty"`
}

// Success sends {"ok": true}
func Success(c *gin.Context, code int) {
	c.JSON(code, Response{OK: true})
}

// Error sends {"error": message}
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Error: message})
}
