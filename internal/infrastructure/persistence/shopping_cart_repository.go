package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShoppingCartRepository implements ShoppingCartRepository using GORM
type GormShoppingCartRepository struct {
	db *gorm.DB
}

// NewGormShoppingCartRepository creates a new GormShoppingCartRepository
func NewGormShoppingCartRepository(db *gorm.DB) *GormShoppingCartRepository {
	return &GormShoppingCartRepository{db: db}
}

// FindByID finds a shopping cart by its ID
func (r *GormShoppingCartRepository) FindByID(ctx context.Context, id int64) (*cart.ShoppingCart, error) {
	var model models.ShoppingCartModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "ShoppingCart")
	}
	return model.ToDomain(), nil
}

// FindByCustomerDetailsID finds all carts owned by a customer
func (r *GormShoppingCartRepository) FindByCustomerDetailsID(ctx context.Context, customerDetailsID int64) ([]cart.ShoppingCart, error) {
	var rows []models.ShoppingCartModel
	if err := r.db.WithContext(ctx).
		Where("customer_details_id = ?", customerDetailsID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toShoppingCarts(rows), nil
}

// FindAll finds all shopping carts matching the filter
func (r *GormShoppingCartRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cart.ShoppingCart, error) {
	var rows []models.ShoppingCartModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ShoppingCartModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toShoppingCarts(rows), nil
}

// Count counts shopping carts matching the filter
func (r *GormShoppingCartRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ShoppingCartModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks if a shopping cart exists
func (r *GormShoppingCartRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return existsByID[models.ShoppingCartModel](r.db.WithContext(ctx), id)
}

// Save creates or updates a shopping cart
func (r *GormShoppingCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	model := models.ShoppingCartModelFromDomain(c)
	db := r.db.WithContext(ctx)

	if c.IsNew() {
		if err := db.Create(model).Error; err != nil {
			return err
		}
		c.ID = model.ID
		return nil
	}
	return updateWithVersion(db, model, c.ID, c.Version)
}

// Delete removes a shopping cart. Orders placed in it keep existing with no cart.
func (r *GormShoppingCartRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductOrderModel{}).
			Where("cart_id = ?", id).
			Update("cart_id", nil).Error; err != nil {
			return err
		}
		return deleteByID[models.ShoppingCartModel](tx, id)
	})
}

func (r *GormShoppingCartRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaging(query, filter, shoppingCartSort)
}

func (r *GormShoppingCartRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_details_id"].(int64); ok && customerID > 0 {
		query = query.Where("customer_details_id = ?", customerID)
	}
	return query
}

func toShoppingCarts(rows []models.ShoppingCartModel) []cart.ShoppingCart {
	out := make([]cart.ShoppingCart, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ cart.ShoppingCartRepository = (*GormShoppingCartRepository)(nil)
