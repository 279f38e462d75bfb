package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/phananhtu/authcore/internal/api/http/response"
)

// Health reports liveness.
func Health(c *gin.Context) {
	response.OK(c, "Service is healthy", nil)
}
