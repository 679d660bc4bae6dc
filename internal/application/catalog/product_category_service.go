package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProductCategoryService handles product category use cases
type ProductCategoryService struct {
	repo      catalog.ProductCategoryRepository
	cache     shared.EntityCache[catalog.ProductCategory]
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewProductCategoryService creates a new ProductCategoryService
func NewProductCategoryService(
	repo catalog.ProductCategoryRepository,
	cache shared.EntityCache[catalog.ProductCategory],
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductCategoryService {
	return &ProductCategoryService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates a new product category
func (s *ProductCategoryService) Create(ctx context.Context, req CreateProductCategoryRequest) (*ProductCategoryResponse, error) {
	if req.ID != nil {
		return nil, shared.ErrIdentifierExists
	}

	category, err := catalog.NewProductCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, category); err != nil {
		return nil, err
	}

	s.log(ctx).Info("Product category created", zap.Int64("id", category.ID))
	s.publish(ctx, category)

	resp := ToProductCategoryResponse(category)
	return &resp, nil
}

// Update replaces every field of an existing product category
func (s *ProductCategoryService) Update(ctx context.Context, id int64, req UpdateProductCategoryRequest) (*ProductCategoryResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Replace(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToProductCategoryResponse(category)
	return &resp, nil
}

// PartialUpdate merges the present fields of req into the stored category.
// A patch that changes nothing is not written.
func (s *ProductCategoryService) PartialUpdate(ctx context.Context, id int64, req PatchProductCategoryRequest) (*ProductCategoryResponse, error) {
	if err := shared.CheckIdentifier(id, req.ID); err != nil {
		return nil, err
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := category.ApplyPatch(req.ToPatch())
	if len(changed) > 0 {
		if err := category.Validate(); err != nil {
			return nil, err
		}
		if err := s.save(ctx, category); err != nil {
			return nil, err
		}
		s.log(ctx).Debug("Product category patched", zap.Int64("id", id), zap.Strings("fields", changed))
	}

	resp := ToProductCategoryResponse(category)
	return &resp, nil
}

// List returns a page of product categories and the total count
func (s *ProductCategoryService) List(ctx context.Context, filter ProductCategoryListFilter) ([]ProductCategoryResponse, int64, error) {
	domainFilter := filter.ToFilter()

	categories, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductCategoryResponses(categories), total, nil
}

// GetByID returns a product category, reading through the cache
func (s *ProductCategoryService) GetByID(ctx context.Context, id int64) (*ProductCategoryResponse, error) {
	category, found, err := s.cache.Get(ctx, id)
	if err != nil {
		s.log(ctx).Warn("Product category cache read failed", zap.Int64("id", id), zap.Error(err))
	}
	if !found {
		category, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, id, category); err != nil {
			s.log(ctx).Warn("Product category cache write failed", zap.Int64("id", id), zap.Error(err))
		}
	}

	resp := ToProductCategoryResponse(category)
	return &resp, nil
}

// Delete removes a product category and detaches it from every order
func (s *ProductCategoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.evict(ctx, id)
	category.MarkDeleted()
	s.publish(ctx, category)
	s.log(ctx).Info("Product category deleted", zap.Int64("id", id))
	return nil
}

func (s *ProductCategoryService) save(ctx context.Context, category *catalog.ProductCategory) error {
	if err := s.repo.Save(ctx, category); err != nil {
		return err
	}
	s.evict(ctx, category.ID)
	s.publish(ctx, category)
	return nil
}

func (s *ProductCategoryService) evict(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log(ctx).Warn("Product category cache eviction failed", zap.Int64("id", id), zap.Error(err))
	}
}

func (s *ProductCategoryService) publish(ctx context.Context, category *catalog.ProductCategory) {
	events := category.PullEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.log(ctx).Error("Failed to publish product category events", zap.Int64("id", category.ID), zap.Error(err))
	}
}

func (s *ProductCategoryService) log(ctx context.Context) *zap.Logger {
	return logger.Ctx(ctx, s.logger)
}
