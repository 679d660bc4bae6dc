package customer

import (
	"context"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// CustomerDetailsService handles customer details use cases.
// Only the flat customer record is cached; carts are always read from the cart repository.
type CustomerDetailsService struct {
	repo      customer.CustomerDetailsRepository
	cartRepo  cart.ShoppingCartRepository
	cache     shared.EntityCache[customer.CustomerDetails]
	cartCache shared.EntityCache[cart.ShoppingCart]
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewCustomerDetailsService creates a new CustomerDetailsService
func NewCustomerDetailsService(
	repo customer.CustomerDetailsRepository,
	cartRepo cart.ShoppingCartRepository,
	cache shared.EntityCache[customer.CustomerDetails],
	cartCache shared.EntityCache[cart.ShoppingCart],
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CustomerDetailsService {
	return &CustomerDetailsService{
		repo:      repo,
		cartRepo:  cartRepo,
		cache:     cache,
		cartCache: cartCache,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates new customer details
func (s *CustomerDetailsService) Create(ctx context.Context, req CreateCustomerDetailsRequest) (*CustomerDetailsResponse, error) {
	if req.ID != nil {
		return nil, shared.ErrIdentifierExists
	}

	c, err := customer.NewCustomerDetails(req.ToFields())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Customer details created", zap.Int64("id", c.ID))
	s.publish(ctx, c)

	resp := ToCustomerDetailsResponse(c)
	return &resp, nil
}

// Update replaces every field of existing customer details
func (s *CustomerDetailsService) Update(ctx context.Context, id int64, req UpdateCustomerDetailsRequest) (*CustomerDetailsResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Replace(req.ToFields()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCustomerDetailsResponse(c)
	return &resp, nil
}

// PartialUpdate merges the present fields of req into the stored customer details
func (s *CustomerDetailsService) PartialUpdate(ctx context.Context, id int64, req PatchCustomerDetailsRequest) (*CustomerDetailsResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
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
		s.log(ctx).Debug("Customer details patched", zap.Int64("id", id), zap.Strings("fields", changed))
	}

	resp := ToCustomerDetailsResponse(c)
	return &resp, nil
}

// List returns a page of customer details and the total count.
// With Eagerload set each customer carries its carts.
func (s *CustomerDetailsService) List(ctx context.Context, filter CustomerDetailsListFilter) ([]CustomerDetailsResponse, int64, error) {
	domainFilter := filter.ToFilter()

	var (
		customers []customer.CustomerDetails
		err       error
	)
	if filter.Eagerload {
		customers, err = s.repo.FindAllWithRelations(ctx, domainFilter)
	} else {
		customers, err = s.repo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerDetailsResponses(customers), total, nil
}

// GetByID returns customer details with their carts
func (s *CustomerDetailsService) GetByID(ctx context.Context, id int64) (*CustomerDetailsResponse, error) {
	c, found, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log(ctx).Warn("Customer details cache read failed", zap.Int64("id", id), zap.Error(err))
	}
	if !found {
		c, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, id, c); err != nil {
			s.log(ctx).Warn("Customer details cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	carts, err := s.cartRepo.FindByCustomerDetailsID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Carts = carts

	resp := ToCustomerDetailsResponse(c)
	return &resp, nil
}

// Delete removes customer details. Their carts are kept with no owner.
func (s *CustomerDetailsService) Delete(ctx context.Context, id int64) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	carts, err := s.cartRepo.FindByCustomerDetailsID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.evict(ctx, id)
	for i := range carts {
		if err := s.cartCache.Delete(ctx, carts[i].ID); err != nil {
			s.log(ctx).Warn("Shopping cart cache eviction failed", zap.Int64("id", carts[i].ID), zap.Error(err))
		}
	}
	c.MarkDeleted()
	s.publish(ctx, c)
	s.log(ctx).Info("Customer details deleted", zap.Int64("id", id), zap.Int("detached_carts", len(carts)))
	return nil
}

func (s *CustomerDetailsService) save(ctx context.Context, c *customer.CustomerDetails) error {
	if err := s.repo.Save(ctx, c); err != nil {
		return err
	}
	s.evict(ctx, c.ID)
	s.publish(ctx, c)
	return nil
}

func (s *CustomerDetailsService) evict(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log(ctx).Warn("Customer details cache eviction failed", zap.Int64("id", id), zap.Error(err))
	}
}

func (s *CustomerDetailsService) publish(ctx context.Context, c *customer.CustomerDetails) {
	events := c.PullEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.log(ctx).Error("Failed to publish customer details events", zap.Int64("id", c.ID), zap.Error(err))
	}
}

func (s *CustomerDetailsService) log(ctx context.Context) *zap.Logger {
	return logger.Ctx(ctx, s.logger)
}
