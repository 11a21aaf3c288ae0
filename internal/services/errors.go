// Package services defines the business logic for trials, actions, people,
// and statistics. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers with errors.Is.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer. Every error here is a request-scoped, user-correctable business-rule
// violation except ErrTutelaTypeMissing, which points at a data-seeding
// problem rather than bad input.
package services

import "errors"

// Uniqueness violations.
var (
	// ErrDuplicateTrialID is returned when a trial with the supplied id is
	// already registered.
	ErrDuplicateTrialID = errors.New("trial already registered")

	// ErrDuplicateActionID is returned when an action with the supplied id is
	// already registered.
	ErrDuplicateActionID = errors.New("action already registered")

	// ErrDuplicateDocument is returned when another person already holds the
	// supplied document number.
	ErrDuplicateDocument = errors.New("a person with that document already exists")

	// ErrDuplicateDescription is returned when a description-action with the
	// same wording already exists for the same action type and trial type.
	ErrDuplicateDescription = errors.New("description already exists for this action type and trial type")
)

// Missing referenced entities.
var (
	// ErrTrialNotFound indicates that the requested trial does not exist.
	ErrTrialNotFound = errors.New("trial not found")

	// ErrPersonNotFound indicates that the requested person does not exist.
	ErrPersonNotFound = errors.New("person not found")

	// ErrActionNotFound indicates that the requested action does not exist.
	ErrActionNotFound = errors.New("action not found")

	// ErrDescriptionActionNotFound indicates that the requested
	// description-action catalog entry does not exist.
	ErrDescriptionActionNotFound = errors.New("description action not found")

	// ErrUnknownTrialType is returned when a trial-type reference does not
	// resolve to any registered type.
	ErrUnknownTrialType = errors.New("trial type does not exist")

	// ErrUnknownTypeAction is returned when an action-type reference does not
	// resolve to any registered type.
	ErrUnknownTypeAction = errors.New("action type does not exist")
)

// Trial classification rules.
var (
	// ErrCategoryRequired is returned when a trial of any type other than
	// pago por consignación is created or edited without a category.
	ErrCategoryRequired = errors.New("category is required for this trial type")

	// ErrCategoryNotAllowed is returned when a pago por consignación trial
	// carries a category.
	ErrCategoryNotAllowed = errors.New("pago por consignación trials must not have a category")

	// ErrMissingPrerequisite is returned when an incidente de desacato is
	// created without a pre-existing Tutela sharing its case number.
	ErrMissingPrerequisite = errors.New("incidente de desacato requires a previous Tutela with the same case number")

	// ErrTutelaTypeMissing is returned when the Tutela trial type, which the
	// desacato rule assumes always exists, is absent from the registry.
	// This is a seeding problem, not a user error, but it is still surfaced
	// synchronously to the caller.
	ErrTutelaTypeMissing = errors.New("trial type 'Tutela' is not registered")

	// ErrSameParty is returned when a trial names the same person as both
	// plaintiff and defendant.
	ErrSameParty = errors.New("plaintiff and defendant must be different people")

	// ErrInvalidStatus is returned when a status value is outside the
	// enumerated set.
	ErrInvalidStatus = errors.New("invalid status")
)

// Delete protection.
var (
	// ErrDescriptionActionInUse blocks deleting a description-action that
	// still has actions recorded against it.
	ErrDescriptionActionInUse = errors.New("description action has recorded actions")
)
