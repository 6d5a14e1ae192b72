package po

import (
	"time"

	"storefront/domain/review"
)

// ReviewPO Review persistence object
// The unique (user_id, product_id) index enforces one review per buyer
// per product at the storage level.
type ReviewPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_review_user_product,priority:1"`
	ProductID string    `gorm:"size:64;not null;uniqueIndex:idx_review_user_product,priority:2;index"`
	Rating    int       `gorm:"not null"`
	Content   string    `gorm:"size:2000"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName Specify table name
func (ReviewPO) TableName() string {
	return "reviews"
}

// FromReviewDomain Convert domain model to persistence object
func FromReviewDomain(r *review.Review) *ReviewPO {
	return &ReviewPO{
		ID:        r.ID(),
		UserID:    r.UserID(),
		ProductID: r.ProductID(),
		Rating:    r.Rating(),
		Content:   r.Content(),
		CreatedAt: r.CreatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *ReviewPO) ToDomain() *review.Review {
	return review.RebuildFromDTO(review.ReconstructionDTO{
		ID:        po.ID,
		UserID:    po.UserID,
		ProductID: po.ProductID,
		Rating:    po.Rating,
		Content:   po.Content,
		CreatedAt: po.CreatedAt,
	})
}
