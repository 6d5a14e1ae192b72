package po

import (
	"time"

	"storefront/domain/catalog"
	"storefront/domain/shared"
)

// ProductPO Product persistence object
// Note: Only used for database mapping, does not contain any business logic
type ProductPO struct {
	ID            string    `gorm:"primaryKey;size:64"`
	Name          string    `gorm:"size:255;not null"`
	Category      string    `gorm:"size:100;index"`
	PriceAmount   int64     `gorm:"not null"`
	PriceCurrency string    `gorm:"size:3;not null"`
	Status        string    `gorm:"size:20;not null;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain Convert domain model to persistence object
func FromProductDomain(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		Name:          p.Name(),
		Category:      p.Category(),
		PriceAmount:   p.Price().Amount(),
		PriceCurrency: p.Price().Currency(),
		Status:        string(p.Status()),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildFromDTO(catalog.ReconstructionDTO{
		ID:        po.ID,
		Name:      po.Name,
		Price:     *shared.NewMoney(po.PriceAmount, po.PriceCurrency),
		Category:  po.Category,
		Status:    catalog.Availability(po.Status),
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	})
}
