package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	mediaapp "github.com/jeenmata/impex/internal/application/media"
	"github.com/jeenmata/impex/internal/infrastructure/storage"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
)

// ObjectReader serves stored objects back by key
type ObjectReader interface {
	Get(key string) (storage.Object, bool)
}

// MediaHandler handles product image uploads
type MediaHandler struct {
	BaseHandler
	imageService *mediaapp.ImageService
	objects      ObjectReader
}

// NewMediaHandler creates a new MediaHandler. objects may be nil when
// uploads are served by the object store itself.
func NewMediaHandler(imageService *mediaapp.ImageService, objects ObjectReader) *MediaHandler {
	return &MediaHandler{imageService: imageService, objects: objects}
}

// UploadImage stores the multipart "file" field and returns its public URL
// @Summary      Upload a product image
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Image file"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/uploads/images [post]
func (h *MediaHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeEmptyFile, "A file is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidFile, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	img, err := h.imageService.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, img)
}

// Serve returns an object kept in memory storage
func (h *MediaHandler) Serve(c *gin.Context) {
	if h.objects == nil {
		h.NotFound(c, "File not found")
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	obj, ok := h.objects.Get(key)
	if !ok {
		h.NotFound(c, "File not found")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
