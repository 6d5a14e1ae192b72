/*
Package cart - Cart API controller

Responsibilities:
1. Receive HTTP requests and parse parameters
2. Call the application service for business logic
3. Use the response package for unified response and error handling

All routes act on the caller's own cart; the identity comes from the
identity middleware, never from the request body.
*/
package cart

import (
	"net/http"

	"storefront/api/middleware"
	"storefront/api/response"
	cartapp "storefront/application/cart"

	"github.com/gin-gonic/gin"
)

// Controller Cart controller
type Controller struct {
	cartService *cartapp.ApplicationService
}

// NewController Create cart controller
func NewController(cartService *cartapp.ApplicationService) *Controller {
	return &Controller{
		cartService: cartService,
	}
}

// RegisterRoutes Register cart routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", c.GetCart)
		cartGroup.POST("/lines", c.AddToCart)
		cartGroup.PUT("/lines/:id", c.SetQuantity)
		cartGroup.DELETE("/lines/:id", c.RemoveLine)
		cartGroup.DELETE("", c.Clear)
	}
}

// GetCart Get the caller's cart with current catalog prices
// GET /api/v1/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	cart, err := c.cartService.GetCart(ctx.Request.Context(), identity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "cart retrieved successfully")
}

// AddToCart Add a product to the cart, merging duplicates
// POST /api/v1/cart/lines
func (c *Controller) AddToCart(ctx *gin.Context) {
	var req cartapp.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	if err := c.cartService.AddToCart(ctx.Request.Context(), identity, req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, nil, "product added to cart")
}

// SetQuantity Replace a line's quantity
// PUT /api/v1/cart/lines/:id
func (c *Controller) SetQuantity(ctx *gin.Context) {
	var req cartapp.SetQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	if err := c.cartService.SetQuantity(ctx.Request.Context(), identity, ctx.Param("id"), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "quantity updated")
}

// RemoveLine Remove one line from the cart
// DELETE /api/v1/cart/lines/:id
func (c *Controller) RemoveLine(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	if err := c.cartService.RemoveLine(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// Clear Remove every line from the cart
// DELETE /api/v1/cart
func (c *Controller) Clear(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	if err := c.cartService.Clear(ctx.Request.Context(), identity); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
