package catalog

import (
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/patch"
)

// Field length limits
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 2000
)

// ProductCategory groups product orders under a named category
type ProductCategory struct {
	shared.BaseAggregateRoot
	Name        string
	Description *string
}

// ProductCategoryPatch carries the fields of a partial update.
// Nil fields are left unchanged.
type ProductCategoryPatch struct {
	ID          *int64
	Name        *string
	Description *string
}

// NewProductCategory creates a new product category
func NewProductCategory(name string, description *string) (*ProductCategory, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	category := &ProductCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
	}
	category.AddDomainEvent(NewProductCategoryCreatedEvent(category))

	return category, nil
}

// Replace overwrites every field, as a full update does
func (c *ProductCategory) Replace(name string, description *string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.MarkChanged()
	c.AddDomainEvent(NewProductCategoryUpdatedEvent(c, []string{"name", "description"}))

	return nil
}

// ApplyPatch merges the non-nil fields of p into the category and
// returns the names of the fields that changed.
func (c *ProductCategory) ApplyPatch(p ProductCategoryPatch) []string {
	changed := patch.Apply(
		patch.Field("name", &c.Name, p.Name),
		patch.Nullable("description", &c.Description, p.Description),
	)
	if len(changed) == 0 {
		return nil
	}

	c.MarkChanged()
	c.AddDomainEvent(NewProductCategoryUpdatedEvent(c, changed))

	return changed
}

// Validate checks the category's current field values
func (c *ProductCategory) Validate() error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	return validateDescription(c.Description)
}

// MarkDeleted records the deletion event
func (c *ProductCategory) MarkDeleted() {
	c.AddDomainEvent(NewProductCategoryDeletedEvent(c))
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return shared.NewDomainError("INVALID_INPUT", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len(*description) > MaxDescriptionLength {
		return shared.NewDomainError("INVALID_INPUT", "Category description cannot exceed 2000 characters")
	}
	return nil
}
