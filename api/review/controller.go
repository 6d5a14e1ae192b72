/*
Package review - Review API controller

Listing is public; submission goes through the purchase gate in the
application service.
*/
package review

import (
	"net/http"

	"storefront/api/middleware"
	"storefront/api/response"
	reviewapp "storefront/application/review"

	"github.com/gin-gonic/gin"
)

// Controller Review controller
type Controller struct {
	reviewService *reviewapp.ApplicationService
}

// NewController Create review controller
func NewController(reviewService *reviewapp.ApplicationService) *Controller {
	return &Controller{
		reviewService: reviewService,
	}
}

// RegisterRoutes Register review routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products/:id/reviews", c.ListProductReviews)
	router.POST("/reviews", c.SubmitReview)
}

// ListProductReviews Get a product's reviews, newest first
// GET /api/v1/products/:id/reviews
func (c *Controller) ListProductReviews(ctx *gin.Context) {
	reviews, err := c.reviewService.ListProductReviews(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, reviews, "reviews retrieved successfully")
}

// SubmitReview Submit a review for a purchased product
// POST /api/v1/reviews
func (c *Controller) SubmitReview(ctx *gin.Context) {
	var req reviewapp.SubmitReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	identity := middleware.IdentityFromContext(ctx)
	review, err := c.reviewService.SubmitReview(ctx.Request.Context(), identity, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, review, "review submitted successfully")
}
