package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/jeenmata/impex/internal/application/catalog"
)

// BrandHandler serves brand pages and the admin brand screens
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *catalogapp.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// ListActive returns the brands page: active brands with product counts
// @Summary      List active brands
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/brands [get]
func (h *BrandHandler) ListActive(c *gin.Context) {
	brands, err := h.brandService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, brands, len(brands))
}

// GetBySlug returns a brand landing page
// @Summary      Get a brand and its products
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "URL slug"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/brands/{slug} [get]
func (h *BrandHandler) GetBySlug(c *gin.Context) {
	detail, err := h.brandService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// List returns every brand, active or not
// @Summary      List all brands
// @Tags         brands
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	brands, err := h.brandService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, brands, len(brands))
}

// GetByID returns one brand for editing
// @Summary      Get a brand
// @Tags         brands
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/brands/{id} [get]
func (h *BrandHandler) GetByID(c *gin.Context) {
	brand, err := h.brandService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Create adds a brand
// @Summary      Create a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.BrandRequest true "Request body"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	var req catalogapp.BrandRequest
	if !h.bindJSON(c, &req) {
		return
	}

	brand, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, brand)
}

// Update replaces a brand
// @Summary      Update a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body catalogapp.BrandRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/brands/{id} [put]
func (h *BrandHandler) Update(c *gin.Context) {
	var req catalogapp.BrandRequest
	if !h.bindJSON(c, &req) {
		return
	}

	brand, err := h.brandService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Delete removes a brand
// @Summary      Delete a brand
// @Tags         brands
// @Produce      json
// @Param        id path string true "ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/brands/{id} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	if err := h.brandService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
