package auth

import "github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, apperror.CodeInvalidCredentials, "Invalid email or password")
	ErrInvalidToken       = apperror.New(apperror.KindUnauthorized, apperror.CodeInvalidToken, "Invalid token")
	ErrTokenExpired       = apperror.New(apperror.KindUnauthorized, apperror.CodeTokenExpired, "Token has expired")
	ErrMissingToken       = apperror.New(apperror.KindUnauthorized, apperror.CodeMissingToken, "Authorization token is missing")
)
