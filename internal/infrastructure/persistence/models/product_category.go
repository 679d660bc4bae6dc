package models

import (
	"github.com/storefront/backend/internal/domain/catalog"
)

// ProductCategoryModel is the persistence model for the ProductCategory domain entity.
type ProductCategoryModel struct {
	AggregateModel
	Name        string  `gorm:"type:varchar(100);not null"`
	Description *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductCategoryModel) TableName() string {
	return "product_category"
}

// ToDomain converts the persistence model to a domain ProductCategory entity.
func (m *ProductCategoryModel) ToDomain() *catalog.ProductCategory {
	return &catalog.ProductCategory{
		BaseAggregateRoot: m.root(),
		Name:              m.Name,
		Description:       m.Description,
	}
}

// FromDomain populates the persistence model from a domain ProductCategory entity.
func (m *ProductCategoryModel) FromDomain(c *catalog.ProductCategory) {
	m.fillFrom(&c.BaseAggregateRoot)
	m.Name = c.Name
	m.Description = c.Description
}

// ProductCategoryModelFromDomain creates a new persistence model from a domain entity.
func ProductCategoryModelFromDomain(c *catalog.ProductCategory) *ProductCategoryModel {
	m := &ProductCategoryModel{}
	m.FromDomain(c)
	return m
}
