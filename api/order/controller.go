/*
Package order - Order API controller

Responsibilities:
1. Receive HTTP requests and parse parameters
2. Call the application service for business logic
3. Use the response package for unified response and error handling

Error handling:
1. Binding errors: response.HandleError returns 400 directly
2. Business errors: response.HandleAppError maps the status code
   automatically via errors.FromDomainError
*/
package order

import (
	"storefront/api/middleware"
	"storefront/api/response"
	orderapp "storefront/application/order"

	"github.com/gin-gonic/gin"
)

// Controller Order controller
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController Create order controller
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes Register order routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
		orderGroup.POST("/:id/complete", c.CompleteOrder)
	}
}

// ListOrders Get the caller's orders, newest first
// GET /api/v1/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	orders, err := c.orderService.ListOrders(ctx.Request.Context(), identity)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// GetOrder Get one order
// GET /api/v1/orders/:id
//
// Error mapping example:
//
//	Repository returns order.ErrOrderNotFound
//	-> HandleAppError converts it to AppError{Code: NOT_FOUND}
//	-> mapped to HTTP 404, full chain logged with the failure stack
func (c *Controller) GetOrder(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	order, err := c.orderService.GetOrder(ctx.Request.Context(), identity, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// CancelOrder Cancel a pending order
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	if err := c.orderService.CancelOrder(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order cancelled")
}

// CompleteOrder Mark a pending order as completed (admin)
// POST /api/v1/orders/:id/complete
func (c *Controller) CompleteOrder(ctx *gin.Context) {
	identity := middleware.IdentityFromContext(ctx)
	if err := c.orderService.CompleteOrder(ctx.Request.Context(), identity, ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "order completed")
}
