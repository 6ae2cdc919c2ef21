package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/preorder/backend/internal/application/inventory"
)

// BundleHandler handles bundle and availability endpoints
type BundleHandler struct {
	BaseHandler
	bundleService *inventoryapp.BundleService
}

// NewBundleHandler creates a new BundleHandler
func NewBundleHandler(bundleService *inventoryapp.BundleService) *BundleHandler {
	return &BundleHandler{bundleService: bundleService}
}

// Create godoc
//
//	@Summary	Create a bundle from existing items
//	@Tags		bundles
//	@Accept		json
//	@Produce	json
//	@Param		Idempotency-Key	header		string								false	"Replay protection key"
//	@Param		request			body		inventoryapp.CreateBundleRequest	true	"Bundle and components"
//	@Success	201				{object}	dto.Response{data=inventoryapp.BundleResponse}
//	@Failure	409				{object}	dto.Response
//	@Router		/inventory/bundles [post]
func (h *BundleHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateBundleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	bundle, err := h.bundleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bundle)
}

// List godoc
//
//	@Summary	List bundles with components
//	@Tags		bundles
//	@Produce	json
//	@Param		include_hidden	query		bool	false	"Include hidden bundles"	default(true)
//	@Success	200				{object}	dto.Response{data=[]inventoryapp.BundleResponse}
//	@Router		/inventory/bundles [get]
func (h *BundleHandler) List(c *gin.Context) {
	var filter inventoryapp.BundleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	includeHidden := true
	if filter.IncludeHidden != nil {
		includeHidden = *filter.IncludeHidden
	}

	bundles, err := h.bundleService.List(c.Request.Context(), includeHidden)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bundles)
}

// GetByID godoc
//
//	@Summary	Get a bundle with components
//	@Tags		bundles
//	@Produce	json
//	@Param		id	path		string	true	"Bundle ID"	format(uuid)
//	@Success	200	{object}	dto.Response{data=inventoryapp.BundleResponse}
//	@Failure	404	{object}	dto.Response
//	@Router		/inventory/bundles/{id} [get]
func (h *BundleHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "bundle")
	if !ok {
		return
	}

	bundle, err := h.bundleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bundle)
}

// Delete godoc
//
//	@Summary	Delete a bundle
//	@Tags		bundles
//	@Param		id	path	string	true	"Bundle ID"	format(uuid)
//	@Success	204
//	@Router		/inventory/bundles/{id} [delete]
func (h *BundleHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "bundle")
	if !ok {
		return
	}

	if err := h.bundleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Availability godoc
//
//	@Summary	How many of a bundle can be assembled from current stock
//	@Tags		bundles
//	@Produce	json
//	@Param		id	path		string	true	"Bundle ID"	format(uuid)
//	@Success	200	{object}	dto.Response{data=inventoryapp.AvailabilityResponse}
//	@Router		/inventory/bundles/{id}/availability [get]
func (h *BundleHandler) Availability(c *gin.Context) {
	id, ok := h.pathID(c, "bundle")
	if !ok {
		return
	}

	availability, err := h.bundleService.Availability(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, availability)
}

// AllAvailability godoc
//
//	@Summary	Availability of every bundle
//	@Tags		bundles
//	@Produce	json
//	@Success	200	{object}	dto.Response{data=[]inventoryapp.AvailabilityResponse}
//	@Router		/inventory/availability [get]
func (h *BundleHandler) AllAvailability(c *gin.Context) {
	list, err := h.bundleService.AllAvailability(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}
