package handler

import (
	"github.com/gin-gonic/gin"
	forecastapp "github.com/preorder/backend/internal/application/forecast"
)

// BatchHandler handles product batch and forecast endpoints
type BatchHandler struct {
	BaseHandler
	batchService *forecastapp.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(batchService *forecastapp.BatchService) *BatchHandler {
	return &BatchHandler{batchService: batchService}
}

// Create godoc
//
//	@Summary		Create a product batch
//	@Description	Every field is required. batch_produced is capped at 1000000 sets.
//	@Description	Responds 201 with the batch inside the standard response envelope,
//	@Description	not a bare 200 body like earlier clients of this endpoint saw.
//	@Tags			batches
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string							false	"Replay protection key"
//	@Param			request			body		forecastapp.CreateBatchRequest	true	"Batch inputs"
//	@Success		201				{object}	dto.Response{data=forecastapp.BatchResponse}
//	@Failure		400				{object}	dto.Response
//	@Router			/batches/ [post]
func (h *BatchHandler) Create(c *gin.Context) {
	var req forecastapp.CreateBatchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	batch, err := h.batchService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, batch)
}

// List godoc
//
//	@Summary	List product batches, newest first
//	@Tags		batches
//	@Produce	json
//	@Success	200	{object}	dto.Response{data=[]forecastapp.BatchResponse}
//	@Router		/batches/ [get]
func (h *BatchHandler) List(c *gin.Context) {
	batches, err := h.batchService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// GetByID godoc
//
//	@Summary	Get a product batch
//	@Tags		batches
//	@Produce	json
//	@Param		id	path		string	true	"Batch ID"	format(uuid)
//	@Success	200	{object}	dto.Response{data=forecastapp.BatchResponse}
//	@Failure	404	{object}	dto.Response
//	@Router		/batches/{id} [get]
func (h *BatchHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "batch")
	if !ok {
		return
	}

	batch, err := h.batchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Delete godoc
//
//	@Summary	Delete a product batch and its scenarios
//	@Tags		batches
//	@Param		id	path	string	true	"Batch ID"	format(uuid)
//	@Success	204
//	@Failure	404	{object}	dto.Response
//	@Router		/batches/{id} [delete]
func (h *BatchHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "batch")
	if !ok {
		return
	}

	if err := h.batchService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateScenario godoc
//
//	@Summary	Estimate and store a scenario for an expected sell count
//	@Tags		batches
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Batch ID"	format(uuid)
//	@Param		request	body		forecastapp.CreateScenarioRequest	true	"Expected sets sold"
//	@Success	201		{object}	dto.Response{data=forecastapp.ScenarioResponse}
//	@Failure	404		{object}	dto.Response
//	@Router		/batches/{id}/scenario [post]
func (h *BatchHandler) CreateScenario(c *gin.Context) {
	id, ok := h.pathID(c, "batch")
	if !ok {
		return
	}

	var req forecastapp.CreateScenarioRequest
	if !h.bindJSON(c, &req) {
		return
	}

	scenario, err := h.batchService.CreateScenario(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, scenario)
}

// ListScenarios godoc
//
//	@Summary	List a batch's scenarios, newest first
//	@Tags		batches
//	@Produce	json
//	@Param		id	path		string	true	"Batch ID"	format(uuid)
//	@Success	200	{object}	dto.Response{data=[]forecastapp.ScenarioResponse}
//	@Failure	404	{object}	dto.Response
//	@Router		/batches/{id}/scenarios [get]
func (h *BatchHandler) ListScenarios(c *gin.Context) {
	id, ok := h.pathID(c, "batch")
	if !ok {
		return
	}

	scenarios, err := h.batchService.ListScenarios(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, scenarios)
}

// Series godoc
//
//	@Summary	Estimate a batch at a fractional sell-through rate
//	@Tags		batches
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Batch ID"	format(uuid)
//	@Param		request	body		forecastapp.SeriesRequest	true	"Buy rate and optional batch size"
//	@Success	200		{object}	dto.Response{data=forecastapp.EstimateResponse}
//	@Router		/batches/{id}/series [post]
func (h *BatchHandler) Series(c *gin.Context) {
	id, ok := h.pathID(c, "batch")
	if !ok {
		return
	}

	var req forecastapp.SeriesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	estimate, err := h.batchService.EstimateSeries(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, estimate)
}

// ForecastCurve godoc
//
//	@Summary	Sweep batch sizes and return the profit curve
//	@Tags		batches
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Batch ID"	format(uuid)
//	@Param		request	body		forecastapp.ForecastCurveRequest	true	"Batch size range"
//	@Success	200		{object}	dto.Response{data=forecastapp.ForecastCurveResponse}
//	@Router		/batches/{id}/forecast_curve [post]
func (h *BatchHandler) ForecastCurve(c *gin.Context) {
	id, ok := h.pathID(c, "batch")
	if !ok {
		return
	}

	var req forecastapp.ForecastCurveRequest
	if !h.bindJSON(c, &req) {
		return
	}

	curve, err := h.batchService.ForecastCurve(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, curve)
}
