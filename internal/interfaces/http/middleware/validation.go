package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jeenmata/impex/internal/interfaces/http/dto"
)

// SetupValidator makes binding errors report fields by their JSON (or form)
// names so the storefront forms can highlight the right input
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// HandleValidationError writes a 400 with per-field details. Malformed JSON
// gets ERR_INVALID_JSON instead.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Malformed request body", requestID))
		return
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(ve, requestID))
}

// FormatValidationErrors turns validator errors into the standard error
// envelope with one detail per failing field
func FormatValidationErrors(err error, requestID string) dto.Response {
	var ve validator.ValidationErrors
	errors.As(err, &ve)

	details := make([]dto.ValidationDetail, 0, len(ve))
	for _, fe := range ve {
		details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: getValidationMessage(fe)})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// fixed messages by tag; tags taking a parameter are handled below
var tagMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"url":      "Invalid URL format",
	"hexcolor": "Must be a hex color such as #1a2b3c",
	"e164":     "Must be a phone number in international format",
	"numeric":  "Must be numeric",
}

var boundPrefixes = map[string]string{
	"min": "Must be at least ",
	"max": "Must be at most ",
	"len": "Must be exactly ",
	"gte": "Must be greater than or equal to ",
	"lte": "Must be less than or equal to ",
	"gt":  "Must be greater than ",
	"lt":  "Must be less than ",
}

func getValidationMessage(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	if prefix, ok := boundPrefixes[fe.Tag()]; ok {
		msg := prefix + fe.Param()
		if fe.Kind() == reflect.String && (fe.Tag() == "min" || fe.Tag() == "max" || fe.Tag() == "len") {
			msg += " characters"
		}
		return msg
	}
	switch fe.Tag() {
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "datetime":
		return "Must be a date in " + fe.Param() + " format"
	}
	return "Invalid value"
}
