/*
Package checkout - Checkout API controller

One route: convert the cart (or a single buy-now product) into an order.
*/
package checkout

import (
	"net/http"

	"storefront/api/middleware"
	"storefront/api/response"
	checkoutapp "storefront/application/checkout"

	"github.com/gin-gonic/gin"
)

// Controller Checkout controller
type Controller struct {
	checkoutService *checkoutapp.ApplicationService
}

// NewController Create checkout controller
func NewController(checkoutService *checkoutapp.ApplicationService) *Controller {
	return &Controller{
		checkoutService: checkoutService,
	}
}

// RegisterRoutes Register checkout routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", c.Checkout)
}

// Checkout Place an order from the cart or a buy-now product
// POST /api/v1/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	var req checkoutapp.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	order, err := c.checkoutService.Checkout(ctx.Request.Context(), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order placed successfully")
}
