package mysql

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// CatalogRepository MySQL/GORM implementation of the product catalog
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository Create catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *CatalogRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID Find product by ID
func (r *CatalogRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var productPO po.ProductPO

	result := r.getDB(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}

	return productPO.ToDomain(), nil
}

// FindByIDs Find products by IDs, keyed by ID; missing IDs are absent
func (r *CatalogRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*catalog.Product, error) {
	if len(ids) == 0 {
		return map[string]*catalog.Product{}, nil
	}

	var productPOs []po.ProductPO
	if err := r.getDB(ctx).Where("id IN ?", ids).Find(&productPOs).Error; err != nil {
		return nil, err
	}

	products := make(map[string]*catalog.Product, len(productPOs))
	for i := range productPOs {
		products[productPOs[i].ID] = productPOs[i].ToDomain()
	}

	return products, nil
}

// Save Save product (create or update)
func (r *CatalogRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.getDB(ctx).Save(po.FromProductDomain(product)).Error
}

// Search Return one page of matching products (newest first) and the total count
func (r *CatalogRepository) Search(ctx context.Context, criteria catalog.SearchCriteria) ([]*catalog.Product, int64, error) {
	db := r.getDB(ctx).Model(&po.ProductPO{})

	if criteria.Category != "" {
		db = db.Where("category = ?", criteria.Category)
	}
	if criteria.NameContains != "" {
		db = db.Where("name LIKE ?", "%"+criteria.NameContains+"%")
	}
	if criteria.OnlyAvailable {
		db = db.Where("status = ?", string(catalog.Available))
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

	var productPOs []po.ProductPO
	if err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&productPOs).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*catalog.Product, len(productPOs))
	for i := range productPOs {
		products[i] = productPOs[i].ToDomain()
	}

	return products, total, nil
}

// Remove Delete product
func (r *CatalogRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewProductNotFoundError(id)
	}

	return nil
}

var _ catalog.Repository = (*CatalogRepository)(nil)
