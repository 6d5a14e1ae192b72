package po

import (
	"time"

	"storefront/domain/category"
)

// CategoryPO Category persistence object
// Note: Only used for database mapping, does not contain any business logic
type CategoryPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Name        string    `gorm:"size:100;not null;uniqueIndex"`
	Description string    `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (CategoryPO) TableName() string {
	return "categories"
}

// FromCategoryDomain Convert domain model to persistence object
func FromCategoryDomain(c *category.Category) *CategoryPO {
	return &CategoryPO{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *CategoryPO) ToDomain() *category.Category {
	return category.RebuildFromDTO(category.ReconstructionDTO{
		ID:          po.ID,
		Name:        po.Name,
		Description: po.Description,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
