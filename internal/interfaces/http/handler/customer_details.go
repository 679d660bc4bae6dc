package handler

import (
	"github.com/gin-gonic/gin"
	customerapp "github.com/storefront/backend/internal/application/customer"
)

// CustomerDetailsHandler handles customer details API endpoints
type CustomerDetailsHandler struct {
	BaseHandler
	service *customerapp.CustomerDetailsService
}

// NewCustomerDetailsHandler creates a new CustomerDetailsHandler
func NewCustomerDetailsHandler(service *customerapp.CustomerDetailsService) *CustomerDetailsHandler {
	return &CustomerDetailsHandler{service: service}
}

// Create godoc
// @ID           createCustomerDetails
//
//	@Summary		Create customer details
//	@Tags			customer-details
//	@Accept			json
//	@Produce		json
//	@Param			request	body		customerapp.CreateCustomerDetailsRequest	true	"Customer details without id"
//	@Success		201		{object}	APIResponse[customerapp.CustomerDetailsResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/customer-details [post]
func (h *CustomerDetailsHandler) Create(c *gin.Context) {
	var req customerapp.CreateCustomerDetailsRequest
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
// @ID           updateCustomerDetails
//
//	@Summary		Replace customer details
//	@Tags			customer-details
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int										true	"Customer details ID"
//	@Param			request	body		customerapp.UpdateCustomerDetailsRequest	true	"Customer details; id must match the path"
//	@Success		200		{object}	APIResponse[customerapp.CustomerDetailsResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/customer-details/{id} [put]
func (h *CustomerDetailsHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req customerapp.UpdateCustomerDetailsRequest
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
// @ID           patchCustomerDetails
//
//	@Summary		Partially update customer details
//	@Description	Fields left out of the body keep their stored value
//	@Tags			customer-details
//	@Accept			json,application/merge-patch+json
//	@Produce		json
//	@Param			id		path		int										true	"Customer details ID"
//	@Param			request	body		customerapp.PatchCustomerDetailsRequest	true	"Fields to change; id must match the path"
//	@Success		200		{object}	APIResponse[customerapp.CustomerDetailsResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/customer-details/{id} [patch]
func (h *CustomerDetailsHandler) PartialUpdate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req customerapp.PatchCustomerDetailsRequest
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
// @ID           listCustomerDetails
//
//	@Summary		List customer details
//	@Tags			customer-details
//	@Produce		json
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Sort field"	default(id)
//	@Param			order_dir	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Param			gender		query		string	false	"Gender"	Enums(MALE, FEMALE, OTHER)
//	@Param			city		query		string	false	"City"
//	@Param			country		query		string	false	"Country"
//	@Param			eagerload	query		bool	false	"Include shopping carts"
//	@Success		200			{object}	ListResponse[customerapp.CustomerDetailsResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/customer-details [get]
func (h *CustomerDetailsHandler) List(c *gin.Context) {
	var filter customerapp.CustomerDetailsListFilter
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
// @ID           getCustomerDetailsById
//
//	@Summary		Get customer details
//	@Tags			customer-details
//	@Produce		json
//	@Param			id	path		int	true	"Customer details ID"
//	@Success		200	{object}	APIResponse[customerapp.CustomerDetailsResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/customer-details/{id} [get]
func (h *CustomerDetailsHandler) GetByID(c *gin.Context) {
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
// @ID           deleteCustomerDetails
//
//	@Summary		Delete customer details
//	@Description	Shopping carts of the customer are detached, not deleted
//	@Tags			customer-details
//	@Param			id	path	int	true	"Customer details ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/customer-details/{id} [delete]
func (h *CustomerDetailsHandler) Delete(c *gin.Context) {
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
