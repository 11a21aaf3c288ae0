// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package), plus the translation from service-layer
// sentinel errors to HTTP status/code pairs. These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes (e.g., validation_failed, configuration_error) are
//     reserved for business rule failures that cannot be conveyed by status alone.
//   - All error responses must include both an HTTP status and one of these codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/services"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeValidationFailed   = "validation_failed"
	ErrCodeConfigurationError = "configuration_error"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
)

// failService translates a service-layer error into the HTTP error envelope.
//
// Mapping:
//   - duplicate ids / documents / descriptions, in-use catalog entries → 409
//   - missing records → 404
//   - business rule violations (category, parties, prerequisites, status) → 422
//   - missing Tutela type configuration → 500 configuration_error
//   - anything else → 500 internal_error
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateTrialID),
		errors.Is(err, services.ErrDuplicateActionID),
		errors.Is(err, services.ErrDuplicateDocument),
		errors.Is(err, services.ErrDuplicateDescription),
		errors.Is(err, services.ErrDescriptionActionInUse):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())

	case errors.Is(err, services.ErrTrialNotFound),
		errors.Is(err, services.ErrPersonNotFound),
		errors.Is(err, services.ErrActionNotFound),
		errors.Is(err, services.ErrDescriptionActionNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())

	case errors.Is(err, services.ErrUnknownTrialType),
		errors.Is(err, services.ErrUnknownTypeAction),
		errors.Is(err, services.ErrCategoryRequired),
		errors.Is(err, services.ErrCategoryNotAllowed),
		errors.Is(err, services.ErrMissingPrerequisite),
		errors.Is(err, services.ErrSameParty),
		errors.Is(err, services.ErrInvalidStatus):
		fail(c, http.StatusUnprocessableEntity, ErrCodeValidationFailed, err.Error())

	case errors.Is(err, services.ErrTutelaTypeMissing):
		fail(c, http.StatusInternalServerError, ErrCodeConfigurationError, err.Error())

	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
