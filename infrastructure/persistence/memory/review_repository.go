package memory

import (
	"context"
	"sort"
	"sync"

	"storefront/domain/review"
)

// ReviewRepository In-memory implementation of the review repository
// Save holds the write lock across duplicate check and insert, matching
// the unique (user, product) constraint in MySQL.
type ReviewRepository struct {
	reviews map[string]review.ReconstructionDTO
	mu      sync.RWMutex
}

// NewReviewRepository Create in-memory review repository
func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		reviews: make(map[string]review.ReconstructionDTO),
	}
}

func (r *ReviewRepository) snapshot() func() {
	r.mu.RLock()
	saved := make(map[string]review.ReconstructionDTO, len(r.reviews))
	for id, dto := range r.reviews {
		saved[id] = dto
	}
	r.mu.RUnlock()

	return func() {
		r.mu.Lock()
		r.reviews = saved
		r.mu.Unlock()
	}
}

// Save Persist a new review; a duplicate (user, product) pair fails with
// ErrDuplicateReview
func (r *ReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, dto := range r.reviews {
		if dto.UserID == rev.UserID() && dto.ProductID == rev.ProductID() {
			return review.NewDuplicateReviewError(rev.UserID(), rev.ProductID())
		}
	}

	r.reviews[rev.ID()] = review.ReconstructionDTO{
		ID:        rev.ID(),
		UserID:    rev.UserID(),
		ProductID: rev.ProductID(),
		Rating:    rev.Rating(),
		Content:   rev.Content(),
		CreatedAt: rev.CreatedAt(),
	}

	return nil
}

// Exists Report whether a review by the user for the product is present
func (r *ReviewRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.reviews {
		if dto.UserID == userID && dto.ProductID == productID {
			return true, nil
		}
	}

	return false, nil
}

// FindByProductID Find a product's reviews, newest first
func (r *ReviewRepository) FindByProductID(ctx context.Context, productID string) ([]*review.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dtos := make([]review.ReconstructionDTO, 0)
	for _, dto := range r.reviews {
		if dto.ProductID == productID {
			dtos = append(dtos, dto)
		}
	}

	sort.Slice(dtos, func(i, j int) bool {
		return dtos[i].CreatedAt.After(dtos[j].CreatedAt)
	})

	reviews := make([]*review.Review, len(dtos))
	for i, dto := range dtos {
		reviews[i] = review.RebuildFromDTO(dto)
	}

	return reviews, nil
}

var _ review.Repository = (*ReviewRepository)(nil)
