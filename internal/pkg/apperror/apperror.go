package apperror

import "net/http"

// Kind classifies an AppError. The HTTP boundary maps each Kind to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindUnauthorized
	KindForbidden
	KindValidation
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidState, KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a custom error type that carries a taxonomy kind and a stable numeric code.
type AppError struct {
	Kind    Kind              // Taxonomy entry, decides the HTTP status
	Code    int               // Stable numeric code exposed to clients
	Message string            // User-facing error message
	Fields  map[string]string // Field level messages for validation failures
	Err     error             // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code, so wrapped
// copies of a sentinel still match it with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Kind == t.Kind
}

// Status returns the HTTP status code for the error.
func (e *AppError) Status() int {
	return e.Kind.Status()
}

// New creates a new AppError with a kind, code and message.
func New(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Wrap creates a copy of a sentinel AppError that carries the underlying cause.
func Wrap(err error, sentinel *AppError) *AppError {
	return &AppError{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Fields:  sentinel.Fields,
		Err:     err,
	}
}

// Validation creates a validation error with per-field messages.
func Validation(fields map[string]string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// Internal wraps an unexpected error.
func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Code:    CodeInternal,
		Message: "Something went wrong",
		Err:     err,
	}
}

// Numeric codes shared by every module.
const (
	CodeHotelNotFound               = 1200
	CodeRoomAlreadyBooked           = 1201
	CodeRoomNotFound                = 1202
	CodeRoomNotFoundInHotel         = 1203
	CodeRoomUnavailable             = 1204
	CodeUserNotFound                = 1205
	CodeBookingNotFound             = 1206
	CodeRoomAlreadyExists           = 1207
	CodeHotelMaximumRoomCount       = 1208
	CodeCheckOutBeforeCheckIn       = 1209
	CodeCheckInInPast               = 1210
	CodeHotelCapacityBelowRoomCount = 1211
	CodeUserAlreadyExists           = 1212
	CodeConstraintViolation         = 1213

	CodeInvalidCredentials = 1401
	CodeInvalidToken       = 1402
	CodeTokenExpired       = 1403
	CodeMissingToken       = 1404
	CodeUnauthorizedUser   = 1430

	CodeBadRequest = 400
	CodeValidation = 422
	CodeInternal   = 500
)

// Errors that are not owned by a single domain package.
var (
	ErrUnauthorizedUser    = New(KindForbidden, CodeUnauthorizedUser, "User is not authorized to access this resource")
	ErrBadRequest          = New(KindBadRequest, CodeBadRequest, "Bad request format")
	ErrInvalidID           = New(KindBadRequest, CodeBadRequest, "Invalid resource id")
	ErrConstraintViolation = New(KindValidation, CodeConstraintViolation, "Request violates a data constraint")
)
