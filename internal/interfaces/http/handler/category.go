package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/jeenmata/impex/internal/application/catalog"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListActive returns the categories shown in the storefront filters
// @Summary      List active categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/categories [get]
func (h *CategoryHandler) ListActive(c *gin.Context) {
	categories, err := h.categoryService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, categories, len(categories))
}

// List returns every category
// @Summary      List all categories
// @Tags         categories
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, categories, len(categories))
}

// GetByID returns one category
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.categoryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Create adds a category
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CategoryRequest true "Request body"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update replaces a category
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body catalogapp.CategoryRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	var req catalogapp.CategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete removes a category
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
