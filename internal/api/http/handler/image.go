package handler

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/phananhtu/authcore/internal/api/http/response"
	"github.com/phananhtu/authcore/internal/apperrors"
	"github.com/phananhtu/authcore/internal/logger"
	"github.com/phananhtu/authcore/internal/model"
)

// Image serves profile images from object storage.
type Image struct {
	storage model.Storage
	logger  *logger.Logger
}

// NewImage creates a new Image handler instance.
func NewImage(storage model.Storage, logger *logger.Logger) *Image {
	return &Image{storage: storage, logger: logger}
}

// Get streams the named image to the client.
func (h *Image) Get(c *gin.Context) {
	name := c.Param("name")

	ctx := c.Request.Context()

	exists, err := h.storage.Exists(ctx, name)
	if err != nil {
		h.logger.Error("Image handler: failed to stat image",
			"name", name,
			"error", err.Error())
		response.Error(c, apperrors.NewInternal("Error loading image", err))
		return
	}
	if !exists {
		response.Error(c, apperrors.NewNotFound("image not found"))
		return
	}

	object, err := h.storage.Download(ctx, name)
	if err != nil {
		h.logger.Error("Image handler: failed to download image",
			"name", name,
			"error", err.Error())
		response.Error(c, apperrors.NewInternal("Error loading image", err))
		return
	}
	defer object.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, -1, contentType, object, nil)
}
