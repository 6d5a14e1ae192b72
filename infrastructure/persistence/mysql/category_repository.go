package mysql

import (
	"context"
	"errors"

	"storefront/domain/category"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CategoryRepository MySQL/GORM implementation of the category taxonomy
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository Create category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find category by ID
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*category.Category, error) {
	var categoryPO po.CategoryPO

	result := r.getDB(ctx).First(&categoryPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, category.NewCategoryNotFoundError(id)
		}
		return nil, result.Error
	}

	return categoryPO.ToDomain(), nil
}

// FindByName Find category by exact name
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	var categoryPO po.CategoryPO

	result := r.getDB(ctx).First(&categoryPO, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, category.NewCategoryNotFoundError(name)
		}
		return nil, result.Error
	}

	return categoryPO.ToDomain(), nil
}

// Save Save category (create or update)
func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	err := r.getDB(ctx).Save(po.FromCategoryDomain(c)).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return category.NewDuplicateCategoryError(c.Name())
	}
	return err
}

// Search Return one page of matching categories (newest first) and the total count
func (r *CategoryRepository) Search(ctx context.Context, criteria category.SearchCriteria) ([]*category.Category, int64, error) {
	db := r.getDB(ctx).Model(&po.CategoryPO{})

	if criteria.Keyword != "" {
		pattern := "%" + criteria.Keyword + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var categoryPOs []po.CategoryPO
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&categoryPOs).Error; err != nil {
		return nil, 0, err
	}

	categories := make([]*category.Category, len(categoryPOs))
	for i := range categoryPOs {
		categories[i] = categoryPOs[i].ToDomain()
	}

	return categories, total, nil
}

// Remove Delete category
func (r *CategoryRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CategoryPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return category.NewCategoryNotFoundError(id)
	}

	return nil
}

var _ category.Repository = (*CategoryRepository)(nil)
