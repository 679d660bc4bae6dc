package persistence

import (
	"context"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerDetailsRepository implements CustomerDetailsRepository using GORM
type GormCustomerDetailsRepository struct {
	db *gorm.DB
}

// NewGormCustomerDetailsRepository creates a new GormCustomerDetailsRepository
func NewGormCustomerDetailsRepository(db *gorm.DB) *GormCustomerDetailsRepository {
	return &GormCustomerDetailsRepository{db: db}
}

// FindByID finds customer details by ID without loading carts
func (r *GormCustomerDetailsRepository) FindByID(ctx context.Context, id int64) (*customer.CustomerDetails, error) {
	var model models.CustomerDetailsModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "CustomerDetails")
	}
	return model.ToDomain(), nil
}

// FindByIDWithRelations finds customer details by ID with their carts
func (r *GormCustomerDetailsRepository) FindByIDWithRelations(ctx context.Context, id int64) (*customer.CustomerDetails, error) {
	var model models.CustomerDetailsModel
	if err := r.withCarts(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err, "CustomerDetails")
	}
	if model.Carts == nil {
		model.Carts = []models.ShoppingCartModel{}
	}
	return model.ToDomain(), nil
}

// FindAll finds all customer details matching the filter
func (r *GormCustomerDetailsRepository) FindAll(ctx context.Context, filter shared.Filter) ([]customer.CustomerDetails, error) {
	return r.find(r.db.WithContext(ctx), filter, false)
}

// FindAllWithRelations finds all customer details matching the filter with their carts
func (r *GormCustomerDetailsRepository) FindAllWithRelations(ctx context.Context, filter shared.Filter) ([]customer.CustomerDetails, error) {
	return r.find(r.withCarts(r.db.WithContext(ctx)), filter, true)
}

// Count counts customer details matching the filter
func (r *GormCustomerDetailsRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CustomerDetailsModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks if customer details exist
func (r *GormCustomerDetailsRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return existsByID[models.CustomerDetailsModel](r.db.WithContext(ctx), id)
}

// Save creates or updates customer details. Carts are never written from this side.
func (r *GormCustomerDetailsRepository) Save(ctx context.Context, c *customer.CustomerDetails) error {
	model := models.CustomerDetailsModelFromDomain(c)
	db := r.db.WithContext(ctx)

	if c.IsNew() {
		if err := db.Omit("Carts").Create(model).Error; err != nil {
			return err
		}
		c.ID = model.ID
		return nil
	}
	return updateWithVersion(db, model, c.ID, c.Version)
}

// Delete removes customer details and detaches their carts
func (r *GormCustomerDetailsRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ShoppingCartModel{}).
			Where("customer_details_id = ?", id).
			Update("customer_details_id", nil).Error; err != nil {
			return err
		}
		return deleteByID[models.CustomerDetailsModel](tx, id)
	})
}

func (r *GormCustomerDetailsRepository) withCarts(db *gorm.DB) *gorm.DB {
	return db.Preload("Carts", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func (r *GormCustomerDetailsRepository) find(db *gorm.DB, filter shared.Filter, withCarts bool) ([]customer.CustomerDetails, error) {
	var rows []models.CustomerDetailsModel
	query := r.applyFilter(db.Model(&models.CustomerDetailsModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]customer.CustomerDetails, len(rows))
	for i := range rows {
		if withCarts && rows[i].Carts == nil {
			rows[i].Carts = []models.ShoppingCartModel{}
		}
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormCustomerDetailsRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaging(query, filter, customerDetailsSort)
}

func (r *GormCustomerDetailsRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for _, key := range []string{"gender", "city", "country"} {
		if v, ok := filter.Filters[key].(string); ok && v != "" {
			query = query.Where(key+" = ?", v)
		}
	}
	return query
}

var _ customer.CustomerDetailsRepository = (*GormCustomerDetailsRepository)(nil)
