package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() Fields {
	return Fields{
		Gender:       GenderFemale,
		Phone:        "+31 20 123 4567",
		AddressLine1: "Damrak 1",
		City:         "Amsterdam",
		Country:      "Netherlands",
	}
}

func TestNewCustomerDetails(t *testing.T) {
	t.Run("creates customer details with valid fields", func(t *testing.T) {
		c, err := NewCustomerDetails(validFields())
		require.NoError(t, err)

		assert.Equal(t, GenderFemale, c.Gender)
		assert.Nil(t, c.AddressLine2)
		assert.Equal(t, 1, c.Version)

		events := c.PendingEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*CustomerDetailsCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, "Amsterdam", created.City)
	})

	tests := []struct {
		name   string
		mutate func(*Fields)
		errMsg string
	}{
		{"unknown gender", func(f *Fields) { f.Gender = "UNKNOWN" }, "Unknown gender"},
		{"missing phone", func(f *Fields) { f.Phone = "" }, "Phone is required"},
		{"missing address", func(f *Fields) { f.AddressLine1 = "" }, "Address line 1 is required"},
		{"missing city", func(f *Fields) { f.City = "" }, "City is required"},
		{"missing country", func(f *Fields) { f.Country = "" }, "Country is required"},
	}
	for _, tt := range tests {
		t.Run("fails with "+tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			_, err := NewCustomerDetails(f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCustomerDetails_ApplyPatch(t *testing.T) {
	newCustomer := func(t *testing.T) *CustomerDetails {
		t.Helper()
		c, err := NewCustomerDetails(validFields())
		require.NoError(t, err)
		c.ID = 11
		c.PullEvents()
		return c
	}

	t.Run("updates city only", func(t *testing.T) {
		c := newCustomer(t)
		city := "Rotterdam"

		changed := c.ApplyPatch(CustomerDetailsPatch{City: &city})

		assert.Equal(t, []string{"city"}, changed)
		assert.Equal(t, "Rotterdam", c.City)
		assert.Equal(t, "Damrak 1", c.AddressLine1)
		assert.Equal(t, "Netherlands", c.Country)
		assert.Equal(t, int64(11), c.ID)
	})

	t.Run("sets optional address line", func(t *testing.T) {
		c := newCustomer(t)
		line := "Floor 2"

		changed := c.ApplyPatch(CustomerDetailsPatch{AddressLine2: &line})

		assert.Equal(t, []string{"address_line2"}, changed)
		require.NotNil(t, c.AddressLine2)
		assert.Equal(t, "Floor 2", *c.AddressLine2)
	})

	t.Run("value equal to current is not reported", func(t *testing.T) {
		c := newCustomer(t)
		gender := GenderFemale

		assert.Nil(t, c.ApplyPatch(CustomerDetailsPatch{Gender: &gender}))
		assert.Equal(t, 1, c.Version)
		assert.Empty(t, c.PendingEvents())
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		c := newCustomer(t)
		phone := "+31 10 000 0000"
		p := CustomerDetailsPatch{Phone: &phone}

		c.ApplyPatch(p)
		snapshot := *c
		c.ApplyPatch(p)

		assert.Equal(t, snapshot.Phone, c.Phone)
		assert.Equal(t, snapshot.Version, c.Version)
	})
}

func TestCustomerDetails_Replace(t *testing.T) {
	c, err := NewCustomerDetails(validFields())
	require.NoError(t, err)
	c.PullEvents()

	f := validFields()
	f.Gender = GenderOther
	require.NoError(t, c.Replace(f))
	assert.Equal(t, GenderOther, c.Gender)
	assert.Equal(t, 2, c.Version)

	f.City = ""
	require.Error(t, c.Replace(f))
	assert.Equal(t, "Amsterdam", c.City)
}
