package response

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/logging"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Code   int      `json:"code"`
	Errors []string `json:"errors"`
}

// ValidationErrorResponse is returned when individual fields fail validation.
type ValidationErrorResponse struct {
	Code   int               `json:"code"`
	Errors map[string]string `json:"errors"`
}

// Error sends a JSON error response and logs the failure.
// AppErrors are translated by kind; anything else is reported as 500
// without exposing the underlying message.
func Error(c *gin.Context, err error) {
	appErr := translate(err)
	status := appErr.Status()

	entry := logging.FromContext(c).WithFields(logrus.Fields{
		"operation": c.Request.Method + " " + c.FullPath(),
		"code":      appErr.Code,
		"kind":      appErr.Kind.String(),
	})
	for _, p := range c.Params {
		entry = entry.WithField(p.Key, p.Value)
	}
	if cause := errors.Unwrap(appErr); cause != nil {
		entry = entry.WithError(cause)
	}

	if status >= 500 {
		entry.Error(appErr.Message)
	} else {
		entry.Info(appErr.Message)
	}

	if len(appErr.Fields) > 0 {
		c.AbortWithStatusJSON(status, ValidationErrorResponse{Code: appErr.Code, Errors: appErr.Fields})
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Code: appErr.Code, Errors: []string{appErr.Message}})
}

// BindError reports a request binding failure. Field validation failures
// become a field map, anything else (malformed JSON, wrong types) is a bad request.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldName(fe)] = fieldMessage(fe)
		}
		Error(c, apperror.Validation(fields))
		return
	}

	Error(c, apperror.Wrap(err, apperror.ErrBadRequest))
}

// URIError reports a path parameter that failed to bind, such as a malformed id.
func URIError(c *gin.Context, err error) {
	Error(c, apperror.Wrap(err, apperror.ErrInvalidID))
}

func translate(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}

// fieldName turns a validator namespace like "CreateBookingRequest.ContactInfo.Phone"
// into "contactInfo.phone".
func fieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return "must have at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind().String() == "string" {
			return "must have at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}
