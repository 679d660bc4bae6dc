package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductCategoryRepository implements ProductCategoryRepository using GORM
type GormProductCategoryRepository struct {
	db *gorm.DB
}

// NewGormProductCategoryRepository creates a new GormProductCategoryRepository
func NewGormProductCategoryRepository(db *gorm.DB) *GormProductCategoryRepository {
	return &GormProductCategoryRepository{db: db}
}

// FindByID finds a product category by its ID
func (r *GormProductCategoryRepository) FindByID(ctx context.Context, id int64) (*catalog.ProductCategory, error) {
	var model models.ProductCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "ProductCategory")
	}
	return model.ToDomain(), nil
}

// FindByIDs finds all categories with the given IDs, ordered by ID
func (r *GormProductCategoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.ProductCategory, error) {
	if len(ids) == 0 {
		return []catalog.ProductCategory{}, nil
	}

	var rows []models.ProductCategoryModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProductCategories(rows), nil
}

// FindAll finds all product categories matching the filter
func (r *GormProductCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductCategory, error) {
	var rows []models.ProductCategoryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductCategoryModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProductCategories(rows), nil
}

// Count counts product categories matching the filter
func (r *GormProductCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductCategoryModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks if a product category exists
func (r *GormProductCategoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return existsByID[models.ProductCategoryModel](r.db.WithContext(ctx), id)
}

// Save creates or updates a product category.
// New categories receive their database ID; updates are guarded by the version column.
func (r *GormProductCategoryRepository) Save(ctx context.Context, category *catalog.ProductCategory) error {
	model := models.ProductCategoryModelFromDomain(category)
	db := r.db.WithContext(ctx)

	if category.IsNew() {
		if err := db.Create(model).Error; err != nil {
			return err
		}
		category.ID = model.ID
		return nil
	}
	return updateWithVersion(db, model, category.ID, category.Version)
}

// Delete removes a product category and detaches it from every order
func (r *GormProductCategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_category_id = ?", id).Delete(&models.ProductOrderCategoryModel{}).Error; err != nil {
			return err
		}
		return deleteByID[models.ProductCategoryModel](tx, id)
	})
}

func (r *GormProductCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaging(query, filter, productCategorySort)
}

func (r *GormProductCategoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if name, ok := filter.Filters["name"].(string); ok && name != "" {
		query = query.Where("name = ?", name)
	}
	return query
}

func toProductCategories(rows []models.ProductCategoryModel) []catalog.ProductCategory {
	out := make([]catalog.ProductCategory, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ catalog.ProductCategoryRepository = (*GormProductCategoryRepository)(nil)
