package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	bulkapp "github.com/jeenmata/impex/internal/application/bulk"
	bulkfile "github.com/jeenmata/impex/internal/infrastructure/bulk"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
)

// BulkHandler serves the admin spreadsheet uploader
type BulkHandler struct {
	BaseHandler
	uploadService *bulkapp.UploadService
	maxFileSize   int64
}

// NewBulkHandler creates a new BulkHandler. Uploads are read up to one byte
// past maxFileSize so that the size check downstream can reject them.
func NewBulkHandler(uploadService *bulkapp.UploadService, maxFileSize int64) *BulkHandler {
	return &BulkHandler{uploadService: uploadService, maxFileSize: maxFileSize}
}

// ImportRequest names a validated upload session to import
type ImportRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
}

// Validate accepts a multipart upload with "file" and "entity" fields and
// returns the validation preview session
// @Summary      Validate a bulk upload
// @Tags         bulk
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "CSV or XLSX file"
// @Param        entity formData string true "products, brands or shipments"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/bulk/validate [post]
func (h *BulkHandler) Validate(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeEmptyFile, "A file is required")
		return
	}
	entity := c.PostForm("entity")
	if entity == "" {
		h.BadRequest(c, "entity is required")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidFile, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	limit := h.maxFileSize
	if limit <= 0 {
		limit = bulkfile.DefaultMaxFileSize
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidFile, "Failed to read uploaded file")
		return
	}

	session, err := h.uploadService.Validate(c.Request.Context(), bulkapp.ValidateRequest{
		Entity:     entity,
		FileName:   fh.Filename,
		Data:       data,
		UploadedBy: middleware.GetJWTEmail(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// Session returns a stored validation session
// @Summary      Get an upload session
// @Tags         bulk
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/bulk/sessions/{id} [get]
func (h *BulkHandler) Session(c *gin.Context) {
	session, err := h.uploadService.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Import writes the valid rows of a validated session
// @Summary      Import a validated upload
// @Tags         bulk
// @Accept       json
// @Produce      json
// @Param        request body ImportRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/bulk/import [post]
func (h *BulkHandler) Import(c *gin.Context) {
	var req ImportRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.uploadService.Import(c.Request.Context(), req.SessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Template downloads a blank sheet for ?entity= in ?format=csv|xlsx
// @Summary      Download an upload template
// @Tags         bulk
// @Produce      octet-stream
// @Param        entity query string true "products, brands or shipments"
// @Param        format query string false "csv or xlsx"
// @Success      200 {file} file
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/bulk/template [get]
func (h *BulkHandler) Template(c *gin.Context) {
	tpl, err := h.uploadService.Template(c.Request.Context(), c.Query("entity"), c.Query("format"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+tpl.FileName+`"`)
	c.Data(http.StatusOK, tpl.ContentType, tpl.Data)
}
