package cart

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ShoppingCartService handles shopping cart use cases
type ShoppingCartService struct {
	repo         cart.ShoppingCartRepository
	customerRepo customer.CustomerDetailsRepository
	orderRepo    order.ProductOrderRepository
	cache        shared.EntityCache[cart.ShoppingCart]
	orderCache   shared.EntityCache[order.ProductOrder]
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewShoppingCartService creates a new ShoppingCartService.
// The order repository and cache are used to evict orders detached by a cart deletion.
func NewShoppingCartService(
	repo cart.ShoppingCartRepository,
	customerRepo customer.CustomerDetailsRepository,
	orderRepo order.ProductOrderRepository,
	cache shared.EntityCache[cart.ShoppingCart],
	orderCache shared.EntityCache[order.ProductOrder],
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ShoppingCartService {
	return &ShoppingCartService{
		repo:         repo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		cache:        cache,
		orderCache:   orderCache,
		publisher:    publisher,
		logger:       logger,
	}
}

// Create creates a new shopping cart
func (s *ShoppingCartService) Create(ctx context.Context, req CreateShoppingCartRequest) (*ShoppingCartResponse, error) {
	if req.ID != nil {
		return nil, shared.ErrIdentifierExists
	}
	if err := s.checkCustomer(ctx, req.CustomerDetailsID); err != nil {
		return nil, err
	}

	c, err := cart.NewShoppingCart(req.ToFields())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Shopping cart created", zap.Int64("id", c.ID), zap.String("status", string(c.Status)))
	s.publish(ctx, c)

	resp := ToShoppingCartResponse(c)
	return &resp, nil
}

// Update replaces every field of an existing shopping cart
func (s *ShoppingCartService) Update(ctx context.Context, id int64, req UpdateShoppingCartRequest) (*ShoppingCartResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCustomer(ctx, req.CustomerDetailsID); err != nil {
		return nil, err
	}
	if err := c.Replace(req.ToFields()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToShoppingCartResponse(c)
	return &resp, nil
}

// PartialUpdate merges the present fields of req into the stored cart
func (s *ShoppingCartService) PartialUpdate(ctx context.Context, id int64, req PatchShoppingCartRequest) (*ShoppingCartResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCustomer(ctx, req.CustomerDetailsID); err != nil {
		return nil, err
	}

	changed := c.ApplyPatch(req.ToPatch())
	if len(changed) > 0 {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if err := s.save(ctx, c); err != nil {
			return nil, err
		}
		s.log(ctx).Debug("Shopping cart patched", zap.Int64("id", id), zap.Strings("fields", changed))
	}

	resp := ToShoppingCartResponse(c)
	return &resp, nil
}

// List returns a page of shopping carts and the total count
func (s *ShoppingCartService) List(ctx context.Context, filter ShoppingCartListFilter) ([]ShoppingCartResponse, int64, error) {
	domainFilter := filter.ToFilter()

	carts, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToShoppingCartResponses(carts), total, nil
}

// GetByID returns a shopping cart, reading through the cache
func (s *ShoppingCartService) GetByID(ctx context.Context, id int64) (*ShoppingCartResponse, error) {
	c, found, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log(ctx).Warn("Shopping cart cache read failed", zap.Int64("id", id), zap.Error(err))
	}
	if !found {
		c, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, id, c); err != nil {
			s.log(ctx).Warn("Shopping cart cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	resp := ToShoppingCartResponse(c)
	return &resp, nil
}

// Delete removes a shopping cart. Orders placed in it are kept with no cart.
func (s *ShoppingCartService) Delete(ctx context.Context, id int64) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	orders, err := s.orderRepo.FindByCartID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.evict(ctx, id)
	for i := range orders {
		if err := s.orderCache.Delete(ctx, orders[i].ID); err != nil {
			s.log(ctx).Warn("Product order cache eviction failed", zap.Int64("id", orders[i].ID), zap.Error(err))
		}
	}
	c.MarkDeleted()
	s.publish(ctx, c)
	s.log(ctx).Info("Shopping cart deleted", zap.Int64("id", id), zap.Int("detached_orders", len(orders)))
	return nil
}

// checkCustomer verifies that a referenced customer exists
func (s *ShoppingCartService) checkCustomer(ctx context.Context, customerID *int64) error {
	if customerID == nil {
		return nil
	}
	exists, err := s.customerRepo.ExistsByID(ctx, *customerID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("INVALID_INPUT", "Customer details not found")
	}
	return nil
}

func (s *ShoppingCartService) save(ctx context.Context, c *cart.ShoppingCart) error {
	if err := s.repo.Save(ctx, c); err != nil {
		return err
	}
	s.evict(ctx, c.ID)
	s.publish(ctx, c)
	return nil
}

func (s *ShoppingCartService) evict(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log(ctx).Warn("Shopping cart cache eviction failed", zap.Int64("id", id), zap.Error(err))
	}
}

func (s *ShoppingCartService) publish(ctx context.Context, c *cart.ShoppingCart) {
	events := c.PullEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.log(ctx).Error("Failed to publish shopping cart events", zap.Int64("id", c.ID), zap.Error(err))
	}
}

func (s *ShoppingCartService) log(ctx context.Context) *zap.Logger {
	return logger.Ctx(ctx, s.logger)
}
