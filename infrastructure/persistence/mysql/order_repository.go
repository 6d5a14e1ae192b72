package mysql

import (
	"context"
	"errors"

	"storefront/domain/order"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OrderRepository MySQL/GORM implementation of order repository
// DDD principle: Repository is only responsible for persistence of aggregate roots, not event publishing
// GORM usage specification: Association features are prohibited to maintain DDD aggregate boundaries
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository Create order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save order together with its lines
// Note: Manually manage saving of orders and order lines, do not use GORM associations
// When called within UoW.Execute(), it uses the transaction from context
// When called standalone, it creates its own transaction for atomicity
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	orderPO, linePOs := po.FromOrderDomain(o)

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o.ID(), orderPO, linePOs)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o.ID(), orderPO, linePOs)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, orderID string, orderPO *po.OrderPO, linePOs []po.OrderLinePO) error {
	if err := tx.Save(orderPO).Error; err != nil {
		return err
	}

	// Delete then insert keeps line persistence simple; orders are
	// write-once so this only ever runs against an empty line set on
	// creation.
	if err := tx.Where("order_id = ?", orderID).Delete(&po.OrderLinePO{}).Error; err != nil {
		return err
	}

	if len(linePOs) > 0 {
		if err := tx.Create(&linePOs).Error; err != nil {
			return err
		}
	}

	return nil
}

// FindByID Find order by ID with its lines
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)
	var orderPO po.OrderPO

	result := db.First(&orderPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, result.Error
	}

	// Manually query order lines (do not use GORM's Preload to keep aggregate boundaries clear)
	var linePOs []po.OrderLinePO
	if err := db.Where("order_id = ?", id).Find(&linePOs).Error; err != nil {
		return nil, err
	}

	return orderPO.ToDomain(linePOs), nil
}

// FindByUserID Find order list by user ID, newest first
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)
	var orderPOs []po.OrderPO

	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		var linePOs []po.OrderLinePO
		if err := db.Where("order_id = ?", orderPO.ID).Find(&linePOs).Error; err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(linePOs)
	}

	return orders, nil
}

// Transition Move the order status from one state to another as a single
// compare-and-commit statement. When the stored status no longer equals
// from, the losing caller gets ErrInvalidTransition and the row stays
// untouched.
func (r *OrderRepository) Transition(ctx context.Context, orderID string, from, to order.Status) error {
	result := r.getDB(ctx).
		Model(&po.OrderPO{}).
		Where("id = ? AND status = ?", orderID, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"version":    gorm.Expr("version + 1"),
			"updated_at": gorm.Expr("NOW()"),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing order from a lost transition race
		var current po.OrderPO
		err := r.getDB(ctx).First(&current, "id = ?", orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.NewOrderNotFoundError(orderID)
		}
		if err != nil {
			return err
		}
		return order.NewInvalidTransitionError(current.Status, string(to))
	}

	return nil
}

// HasCompletedPurchase Report whether any line for the product exists in
// a COMPLETED order owned by the user
func (r *OrderRepository) HasCompletedPurchase(ctx context.Context, userID, productID string) (bool, error) {
	var count int64

	err := r.getDB(ctx).
		Model(&po.OrderLinePO{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_lines.product_id = ?",
			userID, string(order.StatusCompleted), productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CompletedQuantity Sum the quantity of a product across all COMPLETED orders
func (r *OrderRepository) CompletedQuantity(ctx context.Context, productID string) (int64, error) {
	var sold int64

	err := r.getDB(ctx).
		Model(&po.OrderLinePO{}).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Where("orders.status = ? AND order_lines.product_id = ?",
			string(order.StatusCompleted), productID).
		Select("COALESCE(SUM(order_lines.quantity), 0)").
		Scan(&sold).Error
	if err != nil {
		return 0, err
	}

	return sold, nil
}

var _ order.Repository = (*OrderRepository)(nil)
