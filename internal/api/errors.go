package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osu-parks/parks-api/internal/api/shared"
	"github.com/osu-parks/parks-api/internal/domain"
	"github.com/osu-parks/parks-api/internal/service/auth"
	"github.com/osu-parks/parks-api/internal/store"
)

// Request errors detected by the HTTP layer itself.
var (
	// ErrIDMismatch is returned when a body's resource id differs from the path id.
	ErrIDMismatch = errors.New("resource id does not match the request path")

	// ErrTypeMismatch is returned when a body's resource type differs from the endpoint's.
	ErrTypeMismatch = errors.New("resource type does not match the endpoint")
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var (
		fkErr        *domain.ForeignKeyViolationError
		malformedErr *domain.MalformedRequestError
		amenityErr   *domain.InvalidAmenityError
	)

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// A missing referenced row on write reads as not found; a still
	// referenced row on delete is a conflict.
	case errors.As(err, &fkErr):
		if fkErr.Op == domain.OpDelete {
			return http.StatusConflict
		}
		return http.StatusNotFound

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, ErrIDMismatch),
		errors.Is(err, ErrTypeMismatch):
		return http.StatusConflict

	// Bad request errors
	case errors.As(err, &malformedErr),
		errors.As(err, &amenityErr),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	// Integrity violations and everything else
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var (
		fkErr        *domain.ForeignKeyViolationError
		malformedErr *domain.MalformedRequestError
		amenityErr   *domain.InvalidAmenityError
	)

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid client credentials"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrMissingToken):
		return "Bearer token required"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.As(err, &fkErr):
		if fkErr.Op == domain.OpDelete {
			return fmt.Sprintf("Cannot delete %s while parks reference it", fkErr.Resource)
		}
		return "Owner not found"

	case errors.Is(err, store.ErrParkNotFound):
		return "Park not found"

	case errors.Is(err, store.ErrOwnerNotFound):
		return "Owner not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, ErrIDMismatch):
		return "Resource id does not match the request path"

	case errors.Is(err, ErrTypeMismatch):
		return "Resource type does not match the endpoint"

	// Malformed request reasons and amenity names are authored for clients.
	case errors.As(err, &malformedErr):
		return "Malformed request: " + malformedErr.Reason

	case errors.As(err, &amenityErr):
		return fmt.Sprintf("Invalid amenity %q", amenityErr.Name)

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted details.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	var opts []shared.ResponseOption
	if errors.Is(err, auth.ErrInvalidCredentials) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}

// SanitizeValidationError turns a validator error into a MalformedRequestError
// naming the offending field by its JSON path.
func SanitizeValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domain.MalformedRequestError{Reason: "validation error", Err: err}
	}

	fe := verrs[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return &domain.MalformedRequestError{
		Reason: fmt.Sprintf("invalid %s: %s", field, getValidationTagMessage(fe.Tag())),
		Err:    err,
	}
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short or too small"
	case "max":
		return "too long or too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
