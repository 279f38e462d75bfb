package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/phananhtu/authcore/internal/apperrors"
)

func TestOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	OK(c, "done", gin.H{"value": 1})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"statusCode":200,"message":"done","data":{"value":1}}`, rec.Body.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "unauthenticated",
			err:        apperrors.NewUnauthenticated("token expired"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"statusCode":401,"message":"token expired","data":null}`,
		},
		{
			name:       "forbidden",
			err:        apperrors.NewForbidden("Account is Locked"),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"statusCode":403,"message":"Account is Locked","data":null}`,
		},
		{
			name:       "internal hides the cause",
			err:        apperrors.NewInternal("Error updating password", assert.AnError),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"statusCode":500,"message":"internal server error","data":null}`,
		},
		{
			name:       "unclassified errors are internal",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"statusCode":500,"message":"internal server error","data":null}`,
		},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)

			Error(c, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.True(t, c.IsAborted())
		})
	}
}
