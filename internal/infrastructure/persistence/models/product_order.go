package models

import (
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// ProductOrderModel is the persistence model for the ProductOrder domain entity.
type ProductOrderModel struct {
	AggregateModel
	Quantity   int                    `gorm:"not null"`
	TotalPrice decimal.Decimal        `gorm:"type:decimal(21,2);not null"`
	CartID     *int64                 `gorm:"index"`
	Categories []ProductCategoryModel `gorm:"many2many:rel_product_order__category;joinForeignKey:ProductOrderID;joinReferences:ProductCategoryID"`
}

// TableName returns the table name for GORM
func (ProductOrderModel) TableName() string {
	return "product_order"
}

// ToDomain converts the persistence model to a domain ProductOrder entity.
// When categories were preloaded both Categories and CategoryIDs are set.
func (m *ProductOrderModel) ToDomain() *order.ProductOrder {
	o := &order.ProductOrder{
		BaseAggregateRoot: m.root(),
		Quantity:          m.Quantity,
		TotalPrice:        m.TotalPrice,
		CartID:            m.CartID,
	}
	if m.Categories != nil {
		o.Categories = make([]catalog.ProductCategory, len(m.Categories))
		for i := range m.Categories {
			o.Categories[i] = *m.Categories[i].ToDomain()
		}
		o.SyncCategoryIDs()
	}
	return o
}

// FromDomain populates the persistence model from a domain ProductOrder entity.
// The category association is written through ProductOrderCategoryModel rows.
func (m *ProductOrderModel) FromDomain(o *order.ProductOrder) {
	m.fillFrom(&o.BaseAggregateRoot)
	m.Quantity = o.Quantity
	m.TotalPrice = o.TotalPrice
	m.CartID = o.CartID
}

// ProductOrderModelFromDomain creates a new persistence model from a domain entity.
func ProductOrderModelFromDomain(o *order.ProductOrder) *ProductOrderModel {
	m := &ProductOrderModel{}
	m.FromDomain(o)
	return m
}

// ProductOrderCategoryModel is a row of the order/category join table.
type ProductOrderCategoryModel struct {
	ProductOrderID    int64 `gorm:"primaryKey"`
	ProductCategoryID int64 `gorm:"primaryKey"`
}

// TableName returns the table name for GORM
func (ProductOrderCategoryModel) TableName() string {
	return "rel_product_order__category"
}

// ProductOrderCategoryRows builds the join rows for an order's category ids.
func ProductOrderCategoryRows(orderID int64, categoryIDs []int64) []ProductOrderCategoryModel {
	rows := make([]ProductOrderCategoryModel, len(categoryIDs))
	for i, id := range categoryIDs {
		rows[i] = ProductOrderCategoryModel{ProductOrderID: orderID, ProductCategoryID: id}
	}
	return rows
}

// AllModels lists every persistence model, in dependency order, for AutoMigrate.
func AllModels() []any {
	return []any{
		&ProductCategoryModel{},
		&CustomerDetailsModel{},
		&ShoppingCartModel{},
		&ProductOrderModel{},
		&ProductOrderCategoryModel{},
	}
}
