/*
Package cart - shopping-cart subdomain.

A cart is the per-user set of (product, quantity) lines representing
unpurchased intent. Lines are small independent entities rather than one
big cart aggregate: the unique (user, product) key is the real invariant
and is enforced by the store, so two requests touching different lines
never contend.
*/
package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Line is one cart entry. Quantity is always strictly positive; a line
// whose quantity would drop to zero is removed, never persisted.
type Line struct {
	id        string
	userID    string
	productID string
	quantity  int
	createdAt time.Time
	updatedAt time.Time
}

// NewLine creates a cart line for the given user and product.
func NewLine(userID, productID string, quantity int) (*Line, error) {
	if userID == "" {
		return nil, ErrInvalidOwner
	}
	if productID == "" {
		return nil, ErrInvalidProduct
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cart line ID: %w", err)
	}

	now := time.Now()
	return &Line{
		id:        id.String(),
		userID:    userID,
		productID: productID,
		quantity:  quantity,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Merge adds quantity from another add-to-cart request onto this line.
func (l *Line) Merge(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	l.quantity += quantity
	l.updatedAt = time.Now()
	return nil
}

// SetQuantity replaces the quantity. Zero or negative values are
// rejected; the caller must remove the line explicitly instead.
func (l *Line) SetQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	l.quantity = quantity
	l.updatedAt = time.Now()
	return nil
}

// OwnedBy reports whether the line belongs to the given user.
func (l *Line) OwnedBy(userID string) bool {
	return l.userID == userID
}

func (l *Line) ID() string           { return l.id }
func (l *Line) UserID() string       { return l.userID }
func (l *Line) ProductID() string    { return l.productID }
func (l *Line) Quantity() int        { return l.quantity }
func (l *Line) CreatedAt() time.Time { return l.createdAt }
func (l *Line) UpdatedAt() time.Time { return l.updatedAt }

// ReconstructionDTO rebuilds a Line from storage.
// Repository-layer use only.
type ReconstructionDTO struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO reconstructs a cart line from a DTO.
func RebuildFromDTO(dto ReconstructionDTO) *Line {
	return &Line{
		id:        dto.ID,
		userID:    dto.UserID,
		productID: dto.ProductID,
		quantity:  dto.Quantity,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
	}
}
