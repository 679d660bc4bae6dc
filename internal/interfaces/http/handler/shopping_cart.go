package handler

import (
	"github.com/gin-gonic/gin"
	cartapp "github.com/storefront/backend/internal/application/cart"
)

// ShoppingCartHandler handles shopping cart API endpoints
type ShoppingCartHandler struct {
	BaseHandler
	service *cartapp.ShoppingCartService
}

// NewShoppingCartHandler creates a new ShoppingCartHandler
func NewShoppingCartHandler(service *cartapp.ShoppingCartService) *ShoppingCartHandler {
	return &ShoppingCartHandler{service: service}
}

// Create godoc
// @ID           createShoppingCart
//
//	@Summary		Create a shopping cart
//	@Tags			shopping-carts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartapp.CreateShoppingCartRequest	true	"Shopping cart without id"
//	@Success		201		{object}	APIResponse[cartapp.ShoppingCartResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/shopping-carts [post]
func (h *ShoppingCartHandler) Create(c *gin.Context) {
	var req cartapp.CreateShoppingCartRequest
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
// @ID           updateShoppingCart
//
//	@Summary		Replace a shopping cart
//	@Tags			shopping-carts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int										true	"Shopping cart ID"
//	@Param			request	body		cartapp.UpdateShoppingCartRequest	true	"Shopping cart; id must match the path"
//	@Success		200		{object}	APIResponse[cartapp.ShoppingCartResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/shopping-carts/{id} [put]
func (h *ShoppingCartHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req cartapp.UpdateShoppingCartRequest
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
// @ID           patchShoppingCart
//
//	@Summary		Partially update a shopping cart
//	@Description	Fields left out of the body keep their stored value. customer_details_id can be set but not cleared
//	@Tags			shopping-carts
//	@Accept			json,application/merge-patch+json
//	@Produce		json
//	@Param			id		path		int										true	"Shopping cart ID"
//	@Param			request	body		cartapp.PatchShoppingCartRequest	true	"Fields to change; id must match the path"
//	@Success		200		{object}	APIResponse[cartapp.ShoppingCartResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/shopping-carts/{id} [patch]
func (h *ShoppingCartHandler) PartialUpdate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req cartapp.PatchShoppingCartRequest
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
// @ID           listShoppingCarts
//
//	@Summary		List shopping carts
//	@Tags			shopping-carts
//	@Produce		json
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Sort field"	default(id)
//	@Param			order_dir	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Param			status				query		string	false	"Order status"	Enums(COMPLETED, PAID, PENDING, CANCELLED, REFUNDED)
//	@Param			customer_details_id	query		int		false	"Owning customer"
//	@Success		200			{object}	ListResponse[cartapp.ShoppingCartResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/shopping-carts [get]
func (h *ShoppingCartHandler) List(c *gin.Context) {
	var filter cartapp.ShoppingCartListFilter
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
// @ID           getShoppingCartById
//
//	@Summary		Get a shopping cart
//	@Tags			shopping-carts
//	@Produce		json
//	@Param			id	path		int	true	"Shopping cart ID"
//	@Success		200	{object}	APIResponse[cartapp.ShoppingCartResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/shopping-carts/{id} [get]
func (h *ShoppingCartHandler) GetByID(c *gin.Context) {
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
// @ID           deleteShoppingCart
//
//	@Summary		Delete a shopping cart
//	@Description	Product orders in the cart are detached, not deleted
//	@Tags			shopping-carts
//	@Param			id	path	int	true	"Shopping cart ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/shopping-carts/{id} [delete]
func (h *ShoppingCartHandler) Delete(c *gin.Context) {
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
