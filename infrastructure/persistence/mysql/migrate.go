package mysql

import (
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all persistence objects.
// Development convenience only; production schemas are managed outside
// the application.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&po.CategoryPO{},
		&po.ProductPO{},
		&po.CartLinePO{},
		&po.OrderPO{},
		&po.OrderLinePO{},
		&po.ReviewPO{},
		&po.OutboxEventPO{},
	)
}
