// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: AggregateModel (id, version, timestamps)
//   - product_category.go: product_category table
//   - customer_details.go: customer_details table, has-many carts
//   - shopping_cart.go: shopping_cart table
//   - product_order.go: product_order table and the rel_product_order__category join table
package models
