// Package response defines the JSON envelope every endpoint returns.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/phananhtu/authcore/internal/apperrors"
)

// Body is the uniform response envelope.
type Body struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// OK writes a 200 envelope with the given message and payload.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Body{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

// Error writes the envelope for a failed request and aborts the chain.
// The status and message come from the error's kind; internal causes are
// never exposed.
func Error(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(apperrors.KindOf(err))
	c.AbortWithStatusJSON(status, Body{
		StatusCode: status,
		Message:    apperrors.MessageOf(err),
		Data:       nil,
	})
}
