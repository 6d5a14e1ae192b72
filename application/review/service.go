/*
Package review Application Layer - Review Submission and Listing

The review gate: only buyers with a COMPLETED order containing the
product may review it, once. The eligibility checks here are advisory;
the storage-level unique key is the final arbiter when two submissions
race.
*/
package review

import (
	"context"
	"time"

	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/review"
	"storefront/domain/shared"
)

// ApplicationService Review application service
type ApplicationService struct {
	reviewRepo  review.Repository
	orderRepo   order.Repository
	catalogRepo catalog.Reader
	uowFactory  shared.UnitOfWorkFactory
}

// NewApplicationService Create review application service
func NewApplicationService(
	reviewRepo review.Repository,
	orderRepo order.Repository,
	catalogRepo catalog.Reader,
	uowFactory shared.UnitOfWorkFactory,
) *ApplicationService {
	return &ApplicationService{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		uowFactory:  uowFactory,
	}
}

// ============================================================================
// DTO Definitions - Data Transfer Objects
// ============================================================================

// SubmitReviewRequest Submit review request DTO
type SubmitReviewRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Content   string `json:"content"`
}

// ReviewResponse Review response DTO
type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================================================================
// Application Service Methods - Business Process Orchestration
// ============================================================================

// SubmitReview Submit a review for a purchased product
// Gate chain: authenticated, product exists, buyer has a COMPLETED order
// containing the product, no prior review for the pair.
func (s *ApplicationService) SubmitReview(ctx context.Context, identity shared.Identity, req SubmitReviewRequest) (*ReviewResponse, error) {
	if !identity.Authenticated() {
		return nil, shared.NewUnauthorizedError("review")
	}

	var rev *review.Review

	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		if _, err := s.catalogRepo.FindByID(ctx, req.ProductID); err != nil {
			return err
		}

		purchased, err := s.orderRepo.HasCompletedPurchase(ctx, identity.UserID, req.ProductID)
		if err != nil {
			return err
		}
		if !purchased {
			return review.NewNotEligibleError(identity.UserID, req.ProductID)
		}

		exists, err := s.reviewRepo.Exists(ctx, identity.UserID, req.ProductID)
		if err != nil {
			return err
		}
		if exists {
			return review.NewDuplicateReviewError(identity.UserID, req.ProductID)
		}

		rev, err = review.NewReview(identity.UserID, req.ProductID, req.Rating, req.Content)
		if err != nil {
			return err
		}

		// Save surfaces the unique-key violation as ErrDuplicateReview,
		// closing the race between the Exists check and the insert
		if err := s.reviewRepo.Save(ctx, rev); err != nil {
			return err
		}

		uow.RegisterNew(rev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return convertToResponse(rev), nil
}

// ListProductReviews Get a product's reviews, newest first. Public.
func (s *ApplicationService) ListProductReviews(ctx context.Context, productID string) ([]*ReviewResponse, error) {
	if _, err := s.catalogRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ReviewResponse, len(reviews))
	for i, rev := range reviews {
		responses[i] = convertToResponse(rev)
	}

	return responses, nil
}

// convertToResponse Convert review entity to response DTO
func convertToResponse(rev *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        rev.ID(),
		UserID:    rev.UserID(),
		ProductID: rev.ProductID(),
		Rating:    rev.Rating(),
		Content:   rev.Content(),
		CreatedAt: rev.CreatedAt(),
	}
}
