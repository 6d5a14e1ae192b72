package mysql

import (
	"context"
	"errors"

	"storefront/domain/cart"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository MySQL/GORM implementation of the cart-line repository
// The unique (user_id, product_id) index makes AddOrMerge atomic: two
// concurrent adds for the same pair end as one row with the summed
// quantity.
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository Create cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// AddOrMerge Insert the line, or add its quantity onto the existing row
// for the same (user, product) pair via INSERT ... ON DUPLICATE KEY UPDATE
func (r *CartRepository) AddOrMerge(ctx context.Context, line *cart.Line) error {
	linePO := po.FromCartLineDomain(line)

	return r.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", linePO.Quantity),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(linePO).Error
}

// Save Update an existing line
func (r *CartRepository) Save(ctx context.Context, line *cart.Line) error {
	return r.getDB(ctx).Save(po.FromCartLineDomain(line)).Error
}

// FindByID Find line by ID
func (r *CartRepository) FindByID(ctx context.Context, id string) (*cart.Line, error) {
	var linePO po.CartLinePO

	result := r.getDB(ctx).First(&linePO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, cart.NewLineNotFoundError(id)
		}
		return nil, result.Error
	}

	return linePO.ToDomain(), nil
}

// FindByUserID Find the user's lines ordered by creation time
func (r *CartRepository) FindByUserID(ctx context.Context, userID string) ([]*cart.Line, error) {
	var linePOs []po.CartLinePO

	if err := r.getDB(ctx).Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&linePOs).Error; err != nil {
		return nil, err
	}

	lines := make([]*cart.Line, len(linePOs))
	for i := range linePOs {
		lines[i] = linePOs[i].ToDomain()
	}

	return lines, nil
}

// Remove Delete one line
func (r *CartRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CartLinePO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return cart.NewLineNotFoundError(id)
	}

	return nil
}

// RemoveByIDs Delete exactly the given lines of one user and report how
// many rows actually went away. Checkout compares the count against the
// lines it priced to detect concurrent cart mutation.
func (r *CartRepository) RemoveByIDs(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.getDB(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&po.CartLinePO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

var _ cart.Repository = (*CartRepository)(nil)
