package po

import (
	"time"

	"storefront/domain/cart"
)

// CartLinePO Cart line persistence object
// The unique (user_id, product_id) index backs the merge-on-add rule:
// a user never holds two lines for the same product.
type CartLinePO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID string    `gorm:"size:64;not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CartLinePO) TableName() string {
	return "cart_lines"
}

// FromCartLineDomain Convert domain model to persistence object
func FromCartLineDomain(l *cart.Line) *CartLinePO {
	return &CartLinePO{
		ID:        l.ID(),
		UserID:    l.UserID(),
		ProductID: l.ProductID(),
		Quantity:  l.Quantity(),
		CreatedAt: l.CreatedAt(),
		UpdatedAt: l.UpdatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *CartLinePO) ToDomain() *cart.Line {
	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		ID:        po.ID,
		UserID:    po.UserID,
		ProductID: po.ProductID,
		Quantity:  po.Quantity,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
