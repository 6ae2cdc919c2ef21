package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/preorder/backend/internal/application/inventory"
)

// ItemHandler handles inventory item and stock endpoints
type ItemHandler struct {
	BaseHandler
	itemService *inventoryapp.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService *inventoryapp.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create godoc
//
//	@Summary	Create a stocked item
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		Idempotency-Key	header		string							false	"Replay protection key"
//	@Param		request			body		inventoryapp.CreateItemRequest	true	"Item"
//	@Success	201				{object}	dto.Response{data=inventoryapp.ItemResponse}
//	@Failure	409				{object}	dto.Response
//	@Router		/inventory/items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List godoc
//
//	@Summary	List items
//	@Tags		inventory
//	@Produce	json
//	@Param		search		query		string	false	"Match on SKU or name"
//	@Param		category	query		string	false	"Exact category"
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param		order_by	query		string	false	"Sort field"
//	@Param		order_dir	query		string	false	"Sort direction"	Enums(asc, desc)
//	@Success	200			{object}	dto.Response{data=[]inventoryapp.ItemResponse}
//	@Router		/inventory/items [get]
func (h *ItemHandler) List(c *gin.Context) {
	var filter inventoryapp.ItemListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.itemService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// GetByID godoc
//
//	@Summary	Get an item
//	@Tags		inventory
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"	format(uuid)
//	@Success	200	{object}	dto.Response{data=inventoryapp.ItemResponse}
//	@Failure	404	{object}	dto.Response
//	@Router		/inventory/items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "item")
	if !ok {
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update godoc
//
//	@Summary	Update an item's name, category and threshold
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Item ID"	format(uuid)
//	@Param		request	body		inventoryapp.UpdateItemRequest	true	"Changes"
//	@Success	200		{object}	dto.Response{data=inventoryapp.ItemResponse}
//	@Router		/inventory/items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "item")
	if !ok {
		return
	}

	var req inventoryapp.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
//
//	@Summary	Delete an item
//	@Tags		inventory
//	@Param		id	path	string	true	"Item ID"	format(uuid)
//	@Success	204
//	@Router		/inventory/items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "item")
	if !ok {
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LowStock godoc
//
//	@Summary	List items at or below their low stock threshold
//	@Tags		inventory
//	@Produce	json
//	@Success	200	{object}	dto.Response{data=[]inventoryapp.ItemResponse}
//	@Router		/inventory/items/low-stock [get]
func (h *ItemHandler) LowStock(c *gin.Context) {
	items, err := h.itemService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Adjust godoc
//
//	@Summary	Apply a signed stock change and log it
//	@Tags		inventory
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Item ID"	format(uuid)
//	@Param		request	body		inventoryapp.AdjustStockRequest	true	"Delta and reason"
//	@Success	200		{object}	dto.Response{data=inventoryapp.AdjustStockResponse}
//	@Failure	422		{object}	dto.Response
//	@Router		/inventory/items/{id}/adjust [post]
func (h *ItemHandler) Adjust(c *gin.Context) {
	id, ok := h.pathID(c, "item")
	if !ok {
		return
	}

	var req inventoryapp.AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.itemService.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Transactions godoc
//
//	@Summary	List an item's stock movements, newest first
//	@Tags		inventory
//	@Produce	json
//	@Param		id			path		string	true	"Item ID"	format(uuid)
//	@Param		page		query		int		false	"Page number"	default(1)
//	@Param		page_size	query		int		false	"Page size"		default(20)
//	@Success	200			{object}	dto.Response{data=[]inventoryapp.TransactionResponse}
//	@Router		/inventory/items/{id}/transactions [get]
func (h *ItemHandler) Transactions(c *gin.Context) {
	id, ok := h.pathID(c, "item")
	if !ok {
		return
	}

	var filter inventoryapp.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	txs, total, err := h.itemService.Transactions(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, txs, total, page, pageSize)
}
