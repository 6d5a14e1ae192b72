/*
Package category - Category API controller

Public routes expose the taxonomy for storefront navigation; admin
routes manage it.
*/
package category

import (
	"net/http"

	"storefront/api/middleware"
	"storefront/api/response"
	categoryapp "storefront/application/category"

	"github.com/gin-gonic/gin"
)

// Controller Category controller
type Controller struct {
	categoryService *categoryapp.ApplicationService
}

// NewController Create category controller
func NewController(categoryService *categoryapp.ApplicationService) *Controller {
	return &Controller{
		categoryService: categoryService,
	}
}

// RegisterRoutes Register category routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	categoryGroup := router.Group("/categories")
	{
		categoryGroup.GET("", c.ListCategories)
		categoryGroup.GET("/:id", c.GetCategory)
	}

	adminGroup := router.Group("/admin/categories")
	{
		adminGroup.POST("", c.CreateCategory)
		adminGroup.PUT("/:id", c.UpdateCategory)
		adminGroup.DELETE("/:id", c.RemoveCategory)
	}
}

// ListCategories List categories
// GET /api/v1/categories
func (c *Controller) ListCategories(ctx *gin.Context) {
	var req categoryapp.ListCategoriesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.categoryService.ListCategories(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, page, "categories retrieved successfully")
}

// GetCategory Get category detail
// GET /api/v1/categories/:id
func (c *Controller) GetCategory(ctx *gin.Context) {
	cat, err := c.categoryService.GetCategory(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cat, "category retrieved successfully")
}

// CreateCategory Add a category
// POST /api/v1/admin/categories
func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req categoryapp.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	cat, err := c.categoryService.CreateCategory(ctx.Request.Context(), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, cat, "category created successfully")
}

// UpdateCategory Rename or redescribe a category
// PUT /api/v1/admin/categories/:id
func (c *Controller) UpdateCategory(ctx *gin.Context) {
	var req categoryapp.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	cat, err := c.categoryService.UpdateCategory(ctx.Request.Context(), identity, ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cat, "category updated successfully")
}

// RemoveCategory Delete a category
// DELETE /api/v1/admin/categories/:id
func (c *Controller) RemoveCategory(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	if err := c.categoryService.RemoveCategory(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "category removed successfully")
}
