package mysql

import (
	"context"
	"errors"

	"storefront/domain/review"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ReviewRepository MySQL/GORM implementation of the review repository
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository Create review repository
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ReviewRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Persist a new review
// The unique (user_id, product_id) index closes the race between the
// duplicate check and the insert; a constraint violation surfaces as
// ErrDuplicateReview.
func (r *ReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	err := r.getDB(ctx).Create(po.FromReviewDomain(rev)).Error
	if err != nil {
		if isDuplicateKeyError(err) {
			return review.NewDuplicateReviewError(rev.UserID(), rev.ProductID())
		}
		return err
	}

	return nil
}

// Exists Report whether a review by the user for the product is present
func (r *ReviewRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var count int64

	err := r.getDB(ctx).
		Model(&po.ReviewPO{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// FindByProductID Find a product's reviews, newest first
func (r *ReviewRepository) FindByProductID(ctx context.Context, productID string) ([]*review.Review, error) {
	var reviewPOs []po.ReviewPO

	if err := r.getDB(ctx).Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviewPOs).Error; err != nil {
		return nil, err
	}

	reviews := make([]*review.Review, len(reviewPOs))
	for i := range reviewPOs {
		reviews[i] = reviewPOs[i].ToDomain()
	}

	return reviews, nil
}

// isDuplicateKeyError recognizes a unique-constraint violation from both
// the gorm translation layer and the raw MySQL driver (error 1062).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysqlDriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

var _ review.Repository = (*ReviewRepository)(nil)
