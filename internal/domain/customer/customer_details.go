package customer

import (
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/patch"
)

// Gender of a customer
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// IsValid reports whether g is a known gender
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// CustomerDetails holds a customer's contact and address information.
// Carts is only populated when loaded with relations.
type CustomerDetails struct {
	shared.BaseAggregateRoot
	Gender       Gender
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	Country      string
	Carts        []cart.ShoppingCart
}

// CustomerDetailsPatch carries the fields of a partial update
type CustomerDetailsPatch struct {
	ID           *int64
	Gender       *Gender
	Phone        *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	Country      *string
}

// Fields holds the writable fields used by create and full update
type Fields struct {
	Gender       Gender
	Phone        string
	AddressLine1 string
	AddressLine2 *string
	City         string
	Country      string
}

// NewCustomerDetails creates new customer details
func NewCustomerDetails(f Fields) (*CustomerDetails, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	c := &CustomerDetails{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	c.assign(f)
	c.AddDomainEvent(NewCustomerDetailsCreatedEvent(c))

	return c, nil
}

// Replace overwrites every writable field
func (c *CustomerDetails) Replace(f Fields) error {
	if err := f.validate(); err != nil {
		return err
	}

	c.assign(f)
	c.MarkChanged()
	c.AddDomainEvent(NewCustomerDetailsUpdatedEvent(c, []string{
		"gender", "phone", "address_line1", "address_line2", "city", "country",
	}))

	return nil
}

// ApplyPatch merges the non-nil fields of p and returns the changed field names
func (c *CustomerDetails) ApplyPatch(p CustomerDetailsPatch) []string {
	changed := patch.Apply(
		patch.Field("gender", &c.Gender, p.Gender),
		patch.Field("phone", &c.Phone, p.Phone),
		patch.Field("address_line1", &c.AddressLine1, p.AddressLine1),
		patch.Nullable("address_line2", &c.AddressLine2, p.AddressLine2),
		patch.Field("city", &c.City, p.City),
		patch.Field("country", &c.Country, p.Country),
	)
	if len(changed) == 0 {
		return nil
	}

	c.MarkChanged()
	c.AddDomainEvent(NewCustomerDetailsUpdatedEvent(c, changed))

	return changed
}

// Validate checks the current field values
func (c *CustomerDetails) Validate() error {
	return Fields{
		Gender:       c.Gender,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		Country:      c.Country,
	}.validate()
}

// MarkDeleted records the deletion event
func (c *CustomerDetails) MarkDeleted() {
	c.AddDomainEvent(NewCustomerDetailsDeletedEvent(c))
}

func (c *CustomerDetails) assign(f Fields) {
	c.Gender = f.Gender
	c.Phone = f.Phone
	c.AddressLine1 = f.AddressLine1
	c.AddressLine2 = f.AddressLine2
	c.City = f.City
	c.Country = f.Country
}

func (f Fields) validate() error {
	if !f.Gender.IsValid() {
		return shared.NewDomainError("INVALID_GENDER", "Unknown gender: "+string(f.Gender))
	}
	if f.Phone == "" {
		return shared.NewDomainError("INVALID_INPUT", "Phone is required")
	}
	if f.AddressLine1 == "" {
		return shared.NewDomainError("INVALID_INPUT", "Address line 1 is required")
	}
	if f.City == "" {
		return shared.NewDomainError("INVALID_INPUT", "City is required")
	}
	if f.Country == "" {
		return shared.NewDomainError("INVALID_INPUT", "Country is required")
	}
	return nil
}
