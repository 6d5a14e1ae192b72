/*
Package review - product-review subdomain.

A review may only exist if its author completed an order containing the
product, and at most one review exists per (user, product) pair no
matter how many completed orders contain it. The eligibility check
itself lives with the order subdomain; this package owns the review
record and its uniqueness.
*/
package review

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is one user's verdict on one purchased product.
type Review struct {
	id        string
	userID    string
	productID string
	rating    int
	content   string
	createdAt time.Time

	events []shared.DomainEvent
}

// NewReview creates a review with a server-assigned timestamp. Callers
// must have verified purchase eligibility first.
func NewReview(userID, productID string, rating int, content string) (*Review, error) {
	if userID == "" {
		return nil, ErrInvalidAuthor
	}
	if productID == "" {
		return nil, ErrInvalidProduct
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate review ID: %w", err)
	}

	r := &Review{
		id:        id.String(),
		userID:    userID,
		productID: productID,
		rating:    rating,
		content:   strings.TrimSpace(content),
		createdAt: time.Now(),
	}
	r.events = append(r.events, NewSubmittedEvent(r.id, userID, productID, rating))

	return r, nil
}

func (r *Review) ID() string           { return r.id }
func (r *Review) UserID() string       { return r.userID }
func (r *Review) ProductID() string    { return r.productID }
func (r *Review) Rating() int          { return r.rating }
func (r *Review) Content() string      { return r.content }
func (r *Review) CreatedAt() time.Time { return r.createdAt }

// Version implements shared.AggregateRoot; reviews are write-once.
func (r *Review) Version() int { return 0 }

// PullEvents returns and clears the recorded domain events.
func (r *Review) PullEvents() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// ReconstructionDTO rebuilds a Review from storage.
// Repository-layer use only.
type ReconstructionDTO struct {
	ID        string
	UserID    string
	ProductID string
	Rating    int
	Content   string
	CreatedAt time.Time
}

// RebuildFromDTO reconstructs a Review from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Review {
	return &Review{
		id:        dto.ID,
		userID:    dto.UserID,
		productID: dto.ProductID,
		rating:    dto.Rating,
		content:   dto.Content,
		createdAt: dto.CreatedAt,
	}
}

// SubmittedEvent is recorded when a review is created.
type SubmittedEvent struct {
	reviewID   string
	userID     string
	productID  string
	rating     int
	occurredOn time.Time
}

func NewSubmittedEvent(reviewID, userID, productID string, rating int) *SubmittedEvent {
	return &SubmittedEvent{
		reviewID:   reviewID,
		userID:     userID,
		productID:  productID,
		rating:     rating,
		occurredOn: time.Now(),
	}
}

func (e *SubmittedEvent) EventName() string     { return "review.submitted" }
func (e *SubmittedEvent) OccurredOn() time.Time { return e.occurredOn }
func (e *SubmittedEvent) AggregateID() string   { return e.reviewID }
func (e *SubmittedEvent) UserID() string        { return e.userID }
func (e *SubmittedEvent) ProductID() string     { return e.productID }
func (e *SubmittedEvent) Rating() int           { return e.rating }

// Compile-time check that Review implements AggregateRoot.
var _ shared.AggregateRoot = (*Review)(nil)
