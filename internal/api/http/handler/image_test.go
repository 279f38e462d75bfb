package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/phananhtu/authcore/internal/mocks"
	"github.com/phananhtu/authcore/internal/testutil"
)

func newImageEngine(storage *mocks.Storage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewImage(storage, testutil.MakeNoopLogger())
	engine := gin.New()
	engine.GET("/images/:name", h.Get)
	return engine
}

func TestImage_Get(t *testing.T) {
	t.Run("streams the object with a content type from the extension", func(t *testing.T) {
		storage := new(mocks.Storage)
		storage.On("Exists", mock.Anything, "avatar.png").Return(true, nil)
		storage.On("Download", mock.Anything, "avatar.png").
			Return(io.NopCloser(strings.NewReader("png-bytes")), nil)

		engine := newImageEngine(storage)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/avatar.png", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Equal(t, "png-bytes", rec.Body.String())
	})

	t.Run("unknown image returns 404", func(t *testing.T) {
		storage := new(mocks.Storage)
		storage.On("Exists", mock.Anything, "missing.png").Return(false, nil)

		engine := newImageEngine(storage)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/missing.png", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "image not found")

		storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	})

	t.Run("storage failure returns 500 without detail", func(t *testing.T) {
		storage := new(mocks.Storage)
		storage.On("Exists", mock.Anything, "avatar.png").Return(false, assert.AnError)

		engine := newImageEngine(storage)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/avatar.png", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	})
}
