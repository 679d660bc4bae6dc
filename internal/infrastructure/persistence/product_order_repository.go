package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductOrderRepository implements ProductOrderRepository using GORM.
// The category association is written through the join table directly.
type GormProductOrderRepository struct {
	db *gorm.DB
}

// NewGormProductOrderRepository creates a new GormProductOrderRepository
func NewGormProductOrderRepository(db *gorm.DB) *GormProductOrderRepository {
	return &GormProductOrderRepository{db: db}
}

// FindByID finds a product order by its ID without loading categories
func (r *GormProductOrderRepository) FindByID(ctx context.Context, id int64) (*order.ProductOrder, error) {
	var model models.ProductOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "ProductOrder")
	}
	return model.ToDomain(), nil
}

// FindByIDWithRelations finds a product order by its ID with its categories
func (r *GormProductOrderRepository) FindByIDWithRelations(ctx context.Context, id int64) (*order.ProductOrder, error) {
	var model models.ProductOrderModel
	if err := r.withCategories(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "ProductOrder")
	}
	if model.Categories == nil {
		model.Categories = []models.ProductCategoryModel{}
	}
	return model.ToDomain(), nil
}

// FindByCartID finds all orders placed in a cart
func (r *GormProductOrderRepository) FindByCartID(ctx context.Context, cartID int64) ([]order.ProductOrder, error) {
	var rows []models.ProductOrderModel
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProductOrders(rows, false), nil
}

// FindAll finds all product orders matching the filter
func (r *GormProductOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.ProductOrder, error) {
	return r.find(r.db.WithContext(ctx), filter, false)
}

// FindAllWithRelations finds all product orders matching the filter with their categories
func (r *GormProductOrderRepository) FindAllWithRelations(ctx context.Context, filter shared.Filter) ([]order.ProductOrder, error) {
	return r.find(r.withCategories(r.db.WithContext(ctx)), filter, true)
}

// Count counts product orders matching the filter
func (r *GormProductOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductOrderModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks if a product order exists
func (r *GormProductOrderRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return existsByID[models.ProductOrderModel](r.db.WithContext(ctx), id)
}

// Save creates or updates a product order. When CategoryIDs is non-nil the
// join rows are replaced in the same transaction; a nil slice leaves them untouched.
func (r *GormProductOrderRepository) Save(ctx context.Context, o *order.ProductOrder) error {
	model := models.ProductOrderModelFromDomain(o)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if o.IsNew() {
			if err := tx.Omit("Categories").Create(model).Error; err != nil {
				return err
			}
			o.ID = model.ID
		} else if err := updateWithVersion(tx, model, o.ID, o.Version); err != nil {
			return err
		}

		if o.CategoryIDs == nil {
			return nil
		}
		return r.replaceCategories(tx, o.ID, o.CategoryIDs)
	})
}

// Delete removes a product order and its category links
func (r *GormProductOrderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_order_id = ?", id).Delete(&models.ProductOrderCategoryModel{}).Error; err != nil {
			return err
		}
		return deleteByID[models.ProductOrderModel](tx, id)
	})
}

func (r *GormProductOrderRepository) replaceCategories(tx *gorm.DB, orderID int64, categoryIDs []int64) error {
	if err := tx.Where("product_order_id = ?", orderID).Delete(&models.ProductOrderCategoryModel{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := models.ProductOrderCategoryRows(orderID, categoryIDs)
	return tx.Create(&rows).Error
}

func (r *GormProductOrderRepository) withCategories(db *gorm.DB) *gorm.DB {
	return db.Preload("Categories", func(db *gorm.DB) *gorm.DB {
		return db.Order("product_category.id ASC")
	})
}

func (r *GormProductOrderRepository) find(db *gorm.DB, filter shared.Filter, withCategories bool) ([]order.ProductOrder, error) {
	var rows []models.ProductOrderModel
	query := r.applyFilter(db.Model(&models.ProductOrderModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProductOrders(rows, withCategories), nil
}

func (r *GormProductOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaging(query, filter, productOrderSort)
}

func (r *GormProductOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if cartID, ok := filter.Filters["cart_id"].(int64); ok && cartID > 0 {
		query = query.Where("cart_id = ?", cartID)
	}
	return query
}

func toProductOrders(rows []models.ProductOrderModel, withCategories bool) []order.ProductOrder {
	out := make([]order.ProductOrder, len(rows))
	for i := range rows {
		if withCategories && rows[i].Categories == nil {
			rows[i].Categories = []models.ProductCategoryModel{}
		}
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ order.ProductOrderRepository = (*GormProductOrderRepository)(nil)
