package order

import (
	"context"
	"slices"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProductOrderService handles product order use cases.
// The cache holds orders with their category ids; category records are
// read from the category repository on every lookup.
type ProductOrderService struct {
	repo         order.ProductOrderRepository
	cartRepo     cart.ShoppingCartRepository
	categoryRepo catalog.ProductCategoryRepository
	cache        shared.EntityCache[order.ProductOrder]
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewProductOrderService creates a new ProductOrderService
func NewProductOrderService(
	repo order.ProductOrderRepository,
	cartRepo cart.ShoppingCartRepository,
	categoryRepo catalog.ProductCategoryRepository,
	cache shared.EntityCache[order.ProductOrder],
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductOrderService {
	return &ProductOrderService{
		repo:         repo,
		cartRepo:     cartRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create creates a new product order
func (s *ProductOrderService) Create(ctx context.Context, req CreateProductOrderRequest) (*ProductOrderResponse, error) {
	if req.ID != nil {
		return nil, shared.ErrIdentifierExists
	}
	if err := s.checkCart(ctx, req.CartID); err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	o, err := order.NewProductOrder(req.ToFields())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	o.Categories = nonNil(categories)

	s.log(ctx).Info("Product order created", zap.Int64("id", o.ID), zap.Int("categories", len(o.CategoryIDs)))
	s.publish(ctx, o)

	resp := ToProductOrderResponse(o)
	return &resp, nil
}

// Update replaces every field of an existing product order, including its categories
func (s *ProductOrderService) Update(ctx context.Context, id int64, req UpdateProductOrderRequest) (*ProductOrderResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCart(ctx, req.CartID); err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if err := o.Replace(req.ToFields()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, o); err != nil {
		return nil, err
	}
	o.Categories = nonNil(categories)

	resp := ToProductOrderResponse(o)
	return &resp, nil
}

// PartialUpdate merges the present fields of req into the stored order
func (s *ProductOrderService) PartialUpdate(ctx context.Context, id int64, req PatchProductOrderRequest) (*ProductOrderResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	o, err := s.repo.FindByIDWithRelations(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCart(ctx, req.CartID); err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	changed := o.ApplyPatch(req.ToPatch())
	if len(changed) > 0 {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if err := s.save(ctx, o); err != nil {
			return nil, err
		}
		s.log(ctx).Debug("Product order patched", zap.Int64("id", id), zap.Strings("fields", changed))
	}
	if req.CategoryIDs != nil {
		o.Categories = nonNil(categories)
	}

	resp := ToProductOrderResponse(o)
	return &resp, nil
}

// List returns a page of product orders and the total count.
// With Eagerload set each order carries its categories.
func (s *ProductOrderService) List(ctx context.Context, filter ProductOrderListFilter) ([]ProductOrderResponse, int64, error) {
	domainFilter := filter.ToFilter()

	var (
		orders []order.ProductOrder
		err    error
	)
	if filter.Eagerload {
		orders, err = s.repo.FindAllWithRelations(ctx, domainFilter)
	} else {
		orders, err = s.repo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductOrderResponses(orders), total, nil
}

// GetByID returns a product order with its categories
func (s *ProductOrderService) GetByID(ctx context.Context, id int64) (*ProductOrderResponse, error) {
	o, found, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log(ctx).Warn("Product order cache read failed", zap.Int64("id", id), zap.Error(err))
	}

	if found {
		categories, err := s.categoryRepo.FindByIDs(ctx, o.CategoryIDs)
		if err != nil {
			return nil, err
		}
		o.Categories = categories
		o.SyncCategoryIDs()
	} else {
		o, err = s.repo.FindByIDWithRelations(ctx, id)
		if err != nil {
			return nil, err
		}
		flat := *o
		flat.Categories = nil
		if err := s.cache.Set(ctx, id, &flat); err != nil {
			s.log(ctx).Warn("Product order cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	resp := ToProductOrderResponse(o)
	return &resp, nil
}

// Delete removes a product order and its category links
func (s *ProductOrderService) Delete(ctx context.Context, id int64) error {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.evict(ctx, id)
	o.MarkDeleted()
	s.publish(ctx, o)
	s.log(ctx).Info("Product order deleted", zap.Int64("id", id))
	return nil
}

// checkCart verifies that a referenced cart exists
func (s *ProductOrderService) checkCart(ctx context.Context, cartID *int64) error {
	if cartID == nil {
		return nil
	}
	exists, err := s.cartRepo.ExistsByID(ctx, *cartID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_INPUT", "Shopping cart not found")
	}
	return nil
}

// resolveCategories loads the referenced categories and fails when any is missing.
// A nil id list resolves to nil.
func (s *ProductOrderService) resolveCategories(ctx context.Context, ids []int64) ([]catalog.ProductCategory, error) {
	if ids == nil {
		return nil, nil
	}
	unique := slices.Compact(slices.Sorted(slices.Values(ids)))
	if len(unique) == 0 {
		return []catalog.ProductCategory{}, nil
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product category not found")
	}
	return categories, nil
}

func (s *ProductOrderService) save(ctx context.Context, o *order.ProductOrder) error {
	if err := s.repo.Save(ctx, o); err != nil {
		return err
	}
	s.evict(ctx, o.ID)
	s.publish(ctx, o)
	return nil
}

func (s *ProductOrderService) evict(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log(ctx).Warn("Product order cache eviction failed", zap.Int64("id", id), zap.Error(err))
	}
}

func (s *ProductOrderService) publish(ctx context.Context, o *order.ProductOrder) {
	events := o.PullEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.log(ctx).Error("Failed to publish product order events", zap.Int64("id", o.ID), zap.Error(err))
	}
}

func nonNil(categories []catalog.ProductCategory) []catalog.ProductCategory {
	if categories == nil {
		return []catalog.ProductCategory{}
	}
	return categories
}

func (s *ProductOrderService) log(ctx context.Context) *zap.Logger {
	return logger.Ctx(ctx, s.logger)
}
