/*
Package catalog - Product catalog API controller

Responsibilities:
1. Receive HTTP requests and parse parameters
2. Call the application service for business logic
3. Use the response package for unified response and error handling

Public routes serve the storefront listing; admin routes manage the
catalog and expose the sold count.
*/
package catalog

import (
	"net/http"

	"storefront/api/middleware"
	"storefront/api/response"
	catalogapp "storefront/application/catalog"

	"github.com/gin-gonic/gin"
)

// Controller Catalog controller
type Controller struct {
	catalogService *catalogapp.ApplicationService
}

// NewController Create catalog controller
func NewController(catalogService *catalogapp.ApplicationService) *Controller {
	return &Controller{
		catalogService: catalogService,
	}
}

// RegisterRoutes Register catalog routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
	}

	adminGroup := router.Group("/admin/products")
	{
		adminGroup.GET("", c.ListAllProducts)
		adminGroup.POST("", c.CreateProduct)
		adminGroup.PUT("/:id", c.UpdateProduct)
		adminGroup.DELETE("/:id", c.RemoveProduct)
		adminGroup.GET("/:id/sold", c.SoldCount)
	}
}

// ListProducts List available products
// GET /api/v1/products
func (c *Controller) ListProducts(ctx *gin.Context) {
	var req catalogapp.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.catalogService.ListProducts(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page, "products retrieved successfully")
}

// GetProduct Get product detail
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.catalogService.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// ListAllProducts List every product including off-sale ones
// GET /api/v1/admin/products
func (c *Controller) ListAllProducts(ctx *gin.Context) {
	var req catalogapp.ListProductsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	page, err := c.catalogService.ListAllProducts(ctx.Request.Context(), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page, "products retrieved successfully")
}

// CreateProduct Add a product to the catalog
// POST /api/v1/admin/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	product, err := c.catalogService.CreateProduct(ctx.Request.Context(), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// UpdateProduct Change product attributes
// PUT /api/v1/admin/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	var req catalogapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	product, err := c.catalogService.UpdateProduct(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// RemoveProduct Delete a product
// DELETE /api/v1/admin/products/:id
func (c *Controller) RemoveProduct(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	if err := c.catalogService.RemoveProduct(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// SoldCount Get the product's completed-order sold count
// GET /api/v1/admin/products/:id/sold
func (c *Controller) SoldCount(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	sold, err := c.catalogService.SoldCount(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, sold, "sold count retrieved successfully")
}
