package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/jeenmata/impex/internal/application/catalog"
	"github.com/jeenmata/impex/internal/interfaces/http/middleware"
)

// DefaultFeaturedLimit caps the featured strip on the home page
const DefaultFeaturedLimit = 8

// ProductHandler serves the public catalog and the admin product screens
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Search lists catalog products matching the query string filters
// @Summary      Search catalog products
// @Tags         catalog
// @Produce      json
// @Param        search query string false "Matches name, brand and category"
// @Param        brand query string false "Brand name"
// @Param        category query string false "Category name"
// @Param        stock_status query string false "Stock status"
// @Param        featured query boolean false "Featured products only"
// @Param        sort query string false "name, brand or newest"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products [get]
func (h *ProductHandler) Search(c *gin.Context) {
	var req catalogapp.ProductSearchRequest
	if !h.bindQuery(c, &req) {
		return
	}

	products, err := h.productService.Search(c.Request.Context(), req.ToQuery())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// Featured lists featured products, newest first
// @Summary      List featured products
// @Tags         catalog
// @Produce      json
// @Param        limit query integer false "Maximum rows, 1 to 50"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/featured [get]
func (h *ProductHandler) Featured(c *gin.Context) {
	limit := DefaultFeaturedLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			h.BadRequest(c, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	products, err := h.productService.Featured(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// GetBySlug returns the product detail page data
// @Summary      Get a product by slug
// @Tags         catalog
// @Produce      json
// @Param        slug path string true "URL slug"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List returns every product for the admin table
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, products, len(products))
}

// GetByID returns one product for editing
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "ID"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.productService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create adds a product
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ProductRequest true "Request body"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req, middleware.GetJWTEmail(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update replaces a product's editable fields
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "ID"
// @Param        request body catalogapp.ProductRequest true "Request body"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id path string true "ID"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
