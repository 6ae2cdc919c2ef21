package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/preorder/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

var setupOnce sync.Once

// SetupValidator configures gin's validator once: field errors are reported
// under their json (or form) names, and decimal.Decimal values are compared
// as numbers so tags such as min=0 apply to money fields.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	})
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

// ValidationDetails lists one entry per failed field, or nil when err is not
// a validator error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, dto.ValidationDetail{
			Field:   e.Field(),
			Message: fieldMessage(e),
		})
	}
	return details
}

// HandleValidationError answers a failed bind. Validator errors become a 400
// with per-field details; anything else (malformed JSON, wrong types) becomes
// a plain 400 bad request.
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	if details := ValidationDetails(err); details != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed", requestID, details))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeBadRequest, "Invalid request body: "+err.Error(), requestID))
}

// fieldMessages holds the fixed wording per tag; %s is the tag parameter.
var fieldMessages = map[string]string{
	"required": "This field is required",
	"len":      "Must be exactly %s characters",
	"uuid":     "Invalid UUID format",
	"oneof":    "Must be one of: %s",
	"gte":      "Must be greater than or equal to %s",
	"gtefield": "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"gt":       "Must be greater than %s",
	"lt":       "Must be less than %s",
	"ne":       "Must not be %s",
}

func fieldMessage(e validator.FieldError) string {
	switch {
	case e.Tag() == "min" && e.Kind() == reflect.String:
		return "Must be at least " + e.Param() + " characters"
	case e.Tag() == "min" && e.Kind() == reflect.Slice:
		return "Must contain at least " + e.Param() + " entries"
	case e.Tag() == "min":
		return "Must be at least " + e.Param()
	case e.Tag() == "max" && e.Kind() == reflect.String:
		return "Must be at most " + e.Param() + " characters"
	case e.Tag() == "max":
		return "Must be at most " + e.Param()
	}
	if msg, ok := fieldMessages[e.Tag()]; ok {
		if strings.Contains(msg, "%s") {
			return fmt.Sprintf(msg, e.Param())
		}
		return msg
	}
	return "Invalid value"
}
