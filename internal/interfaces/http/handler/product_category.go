package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ProductCategoryHandler handles product category API endpoints
type ProductCategoryHandler struct {
	BaseHandler
	service *catalogapp.ProductCategoryService
}

// NewProductCategoryHandler creates a new ProductCategoryHandler
func NewProductCategoryHandler(service *catalogapp.ProductCategoryService) *ProductCategoryHandler {
	return &ProductCategoryHandler{service: service}
}

// Create godoc
// @ID           createProductCategory
//
//	@Summary		Create a product category
//	@Tags			product-categories
//	@Accept			json
//	@Produce		json
//	@Param			request	body		catalogapp.CreateProductCategoryRequest	true	"Product category without id"
//	@Success		201		{object}	APIResponse[catalogapp.ProductCategoryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/product-categories [post]
func (h *ProductCategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Update godoc
// @ID           updateProductCategory
//
//	@Summary		Replace a product category
//	@Tags			product-categories
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int										true	"Product category ID"
//	@Param			request	body		catalogapp.UpdateProductCategoryRequest	true	"Product category; id must match the path"
//	@Success		200		{object}	APIResponse[catalogapp.ProductCategoryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/product-categories/{id} [put]
func (h *ProductCategoryHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req catalogapp.UpdateProductCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// PartialUpdate godoc
// @ID           patchProductCategory
//
//	@Summary		Partially update a product category
//	@Description	Fields left out of the body keep their stored value
//	@Tags			product-categories
//	@Accept			json,application/merge-patch+json
//	@Produce		json
//	@Param			id		path		int										true	"Product category ID"
//	@Param			request	body		catalogapp.PatchProductCategoryRequest	true	"Fields to change; id must match the path"
//	@Success		200		{object}	APIResponse[catalogapp.ProductCategoryResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Router			/product-categories/{id} [patch]
func (h *ProductCategoryHandler) PartialUpdate(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req catalogapp.PatchProductCategoryRequest
	if !h.bindPatch(c, &req) {
		return
	}

	category, err := h.service.PartialUpdate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// List godoc
// @ID           listProductCategories
//
//	@Summary		List product categories
//	@Tags			product-categories
//	@Produce		json
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Sort field"	default(id)
//	@Param			order_dir	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Param			name		query		string	false	"Name contains"
//	@Success		200			{object}	ListResponse[catalogapp.ProductCategoryResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Router			/product-categories [get]
func (h *ProductCategoryHandler) List(c *gin.Context) {
	var filter catalogapp.ProductCategoryListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	categories, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Page(c, categories, total, filter.ToFilter())
}

// GetByID godoc
// @ID           getProductCategoryById
//
//	@Summary		Get a product category
//	@Tags			product-categories
//	@Produce		json
//	@Param			id	path		int	true	"Product category ID"
//	@Success		200	{object}	APIResponse[catalogapp.ProductCategoryResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/product-categories/{id} [get]
func (h *ProductCategoryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	category, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete godoc
// @ID           deleteProductCategory
//
//	@Summary		Delete a product category
//	@Description	Orders referencing the category lose the link
//	@Tags			product-categories
//	@Param			id	path	int	true	"Product category ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/product-categories/{id} [delete]
func (h *ProductCategoryHandler) Delete(c *gin.Context) {
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
