package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/preorder/backend/internal/infrastructure/logger"
	"github.com/preorder/backend/internal/interfaces/http/dto"
	"github.com/preorder/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler writes the response envelope. Resource handlers embed it.
type BaseHandler struct{}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes a failure envelope tagged with the request id.
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

func (h *BaseHandler) ServiceUnavailable(c *gin.Context, message string) {
	h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable, message)
}

func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed", middleware.GetRequestID(c), details))
}

// HandleError renders err. A DomainError anywhere in the chain is published
// with its own code and message; anything else is logged and hidden behind
// a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		h.Error(c, dto.HTTPStatus(de.Code), de.Code, de.Message)
		return
	}

	_ = c.Error(err)
	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}

func (h *BaseHandler) bindJSON(c *gin.Context, obj any) bool {
	return h.bound(c, c.ShouldBindJSON(obj))
}

func (h *BaseHandler) bindQuery(c *gin.Context, obj any) bool {
	return h.bound(c, c.ShouldBindQuery(obj))
}

// bound answers 400 for a failed bind and reports whether the handler may
// continue.
func (h *BaseHandler) bound(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if details := middleware.ValidationDetails(err); details != nil {
		h.ValidationError(c, details)
	} else {
		h.BadRequest(c, "Invalid request: "+err.Error())
	}
	return false
}

// pathID parses the :id parameter; what names the resource in the 400
// message.
func (h *BaseHandler) pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid "+what+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// pageOf fills unset pagination with the shared defaults for list metadata.
func pageOf(page, pageSize int) (int, int) {
	def := shared.DefaultFilter()
	if page < 1 {
		page = def.Page
	}
	if pageSize < 1 {
		pageSize = def.PageSize
	}
	return page, pageSize
}
