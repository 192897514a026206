package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/dto/response"
	"github.com/velora/velora-commerce-go/internal/middleware"
)

// ProductController handles catalog product endpoints
type ProductController struct {
	productService service.ProductService
	authMiddleware *middleware.AuthMiddleware
}

// NewProductController creates a new ProductController instance
func NewProductController(productService service.ProductService, authMiddleware *middleware.AuthMiddleware) *ProductController {
	return &ProductController{
		productService: productService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers the product routes
func (c *ProductController) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", c.Search)
		products.GET("/featured", c.Featured)
		products.GET("/slug/:slug", c.GetBySlug)
		products.GET("/:id", c.GetByID)
	}

	admin := router.Group("/admin/products")
	admin.Use(c.authMiddleware.Authenticate(), c.authMiddleware.RequireAdmin())
	{
		admin.POST("", c.Create)
		admin.GET("/low-stock", c.LowStock)
		admin.PUT("/bulk/status", c.BulkUpdateStatus)
		admin.DELETE("/bulk", c.BulkDelete)
		admin.PUT("/:id", c.Update)
		admin.PUT("/:id/stock", c.UpdateStock)
		admin.DELETE("/:id", c.Delete)
	}
}

// Search runs the catalog query engine
// @Summary Search products
// @Tags Products
// @Produce json
// @Param category query string false "Category ID, widened to its subtree"
// @Param search query string false "Full-text search"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param tags query string false "Comma-separated tags"
// @Param sort query string false "Sort key"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} response.ApiResponse[[]entity.Product]
// @Router /api/v1/products [get]
func (c *ProductController) Search(ctx *gin.Context) {
	var query request.ProductQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, response.NewErrorWithDetails[any](msgValidationFailed, err.Error()))
		return
	}

	products, total, err := c.productService.Search(ctx.Request.Context(), &query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewPaged(products, query.Page, query.Limit, total))
}

// Featured returns featured products
// @Summary List featured products
// @Tags Products
// @Produce json
// @Param limit query int false "Max products" default(8)
// @Success 200 {object} response.ApiResponse[[]entity.Product]
// @Router /api/v1/products/featured [get]
func (c *ProductController) Featured(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "8"))
	if limit < 1 || limit > 50 {
		limit = 8
	}

	products, err := c.productService.Featured(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(products))
}

// GetBySlug retrieves a product with related products
// @Summary Get a product by slug
// @Tags Products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} response.ApiResponse[response.ProductDetail]
// @Router /api/v1/products/slug/{slug} [get]
func (c *ProductController) GetBySlug(ctx *gin.Context) {
	detail, err := c.productService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(detail))
}

// GetByID retrieves a product by ID
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} response.ApiResponse[entity.Product]
// @Router /api/v1/products/{id} [get]
func (c *ProductController) GetByID(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	product, err := c.productService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(product))
}

// Create creates a product (admin)
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateProductRequest true "Product"
// @Success 201 {object} response.ApiResponse[entity.Product]
// @Router /api/v1/admin/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req request.CreateProductRequest
	if !bindJSON(ctx, &req) {
		return
	}

	product, err := c.productService.Create(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, response.NewSuccess(product, "product created"))
}

// Update updates a product (admin)
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body request.UpdateProductRequest true "Fields to update"
// @Success 200 {object} response.ApiResponse[entity.Product]
// @Router /api/v1/admin/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.UpdateProductRequest
	if !bindJSON(ctx, &req) {
		return
	}

	product, err := c.productService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(product, "product updated"))
}

// UpdateStock adjusts stock for a product or variant (admin)
// @Summary Adjust stock
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body request.UpdateStockRequest true "Stock adjustment"
// @Success 200 {object} response.ApiResponse[entity.Product]
// @Router /api/v1/admin/products/{id}/stock [put]
func (c *ProductController) UpdateStock(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	var req request.UpdateStockRequest
	if !bindJSON(ctx, &req) {
		return
	}

	product, err := c.productService.UpdateStock(ctx.Request.Context(), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(product, "stock updated"))
}

// LowStock lists products at or below their low-stock threshold (admin)
// @Summary List low-stock products
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max products" default(50)
// @Success 200 {object} response.ApiResponse[[]entity.Product]
// @Router /api/v1/admin/products/low-stock [get]
func (c *ProductController) LowStock(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	products, err := c.productService.LowStock(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccessWithData(products))
}

// BulkUpdateStatus sets the status of multiple products (admin)
// @Summary Bulk update product status
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkStatusRequest true "IDs and status"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/products/bulk/status [put]
func (c *ProductController) BulkUpdateStatus(ctx *gin.Context) {
	var req request.BulkStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}
	ids, ok := parseIDs(ctx, req.IDs)
	if !ok {
		return
	}

	updated, err := c.productService.BulkUpdateStatus(ctx.Request.Context(), ids, entity.ProductStatus(req.Status))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(gin.H{"updated": updated}, "status updated"))
}

// BulkDelete soft-deletes multiple products (admin)
// @Summary Bulk delete products
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.BulkDeleteRequest true "IDs to delete"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/products/bulk [delete]
func (c *ProductController) BulkDelete(ctx *gin.Context) {
	var req request.BulkDeleteRequest
	if !bindJSON(ctx, &req) {
		return
	}
	ids, ok := parseIDs(ctx, req.IDs)
	if !ok {
		return
	}

	deleted, err := c.productService.BulkDelete(ctx.Request.Context(), ids)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess(gin.H{"deleted": deleted}, "products deleted"))
}

// Delete soft-deletes a product (admin)
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} response.ApiResponse[any]
// @Router /api/v1/admin/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.productService.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, response.NewSuccess[any](nil, "product deleted"))
}

func parseIDs(ctx *gin.Context, hexes []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, response.NewError[any]("invalid id: "+h))
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
