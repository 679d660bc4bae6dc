package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/storefront/backend/internal/application/order"
)

// ProductOrderHandler handles product order API endpoints
type ProductOrderHandler struct {
	BaseHandler
	service *orderapp.ProductOrderService
}

// NewProductOrderHandler creates a new ProductOrderHandler
func NewProductOrderHandler(service *orderapp.ProductOrderService) *ProductOrderHandler {
	return &ProductOrderHandler{service: service}
}

// Create godoc
// @ID           createProductOrder
//
//	@Summary		Create a product order
//	@Tags			product-orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orderapp.CreateProductOrderRequest	true	"Product order without id"
//	@Success		201		{object}	APIResponse[orderapp.ProductOrderResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/product-orders [post]
func (h *ProductOrderHandler) Create(c *gin.Context) {
	var req orderapp.CreateProductOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update godoc
// @ID           updateProductOrder
//
//	@Summary		Replace a product order
//	@Tags			product-orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int										true	"Product order ID"
//	@Param			request	body		orderapp.UpdateProductOrderRequest	true	"Product order; id must match the path"
//	@Success		200		{object}	APIResponse[orderapp.ProductOrderResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/product-orders/{id} [put]
func (h *ProductOrderHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req orderapp.UpdateProductOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// PartialUpdate godoc
// @ID           patchProductOrder
//
//	@Summary		Partially update a product order
//	@Description	Fields left out of the body keep their stored value. An empty category_ids list clears the categories
//	@Tags			product-orders
//	@Accept			json,application/merge-patch+json
//	@Produce		json
//	@Param			id		path		int										true	"Product order ID"
//	@Param			request	body		orderapp.PatchProductOrderRequest	true	"Fields to change; id must match the path"
//	@Success		200		{object}	APIResponse[orderapp.ProductOrderResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/product-orders/{id} [patch]
func (h *ProductOrderHandler) PartialUpdate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req orderapp.PatchProductOrderRequest
	if !h.bindPatch(c, &req) {
		return
	}

	result, err := h.service.PartialUpdate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List godoc
// @ID           listProductOrders
//
//	@Summary		List product orders
//	@Tags			product-orders
//	@Produce		json
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Sort field"	default(id)
//	@Param			order_dir	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Param			cart_id		query		int		false	"Owning cart"
//	@Param			eagerload	query		bool	false	"Include categories"
//	@Success		200			{object}	ListResponse[orderapp.ProductOrderResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/product-orders [get]
func (h *ProductOrderHandler) List(c *gin.Context) {
	var filter orderapp.ProductOrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, items, total, filter.ToFilter())
}

// GetByID godoc
// @ID           getProductOrderById
//
//	@Summary		Get a product order
//	@Tags			product-orders
//	@Produce		json
//	@Param			id	path		int	true	"Product order ID"
//	@Success		200	{object}	APIResponse[orderapp.ProductOrderResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/product-orders/{id} [get]
func (h *ProductOrderHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @ID           deleteProductOrder
//
//	@Summary		Delete a product order
//	@Tags			product-orders
//	@Param			id	path	int	true	"Product order ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/product-orders/{id} [delete]
func (h *ProductOrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
