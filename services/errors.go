package services

import "errors"

// Errors shared by the services and mapped to HTTP statuses by the handlers.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrAuthInvalidCredentials = errors.New("invalid password")
	ErrAuthInvalidToken       = errors.New("invalid or expired token")
	ErrAuthDisabled           = errors.New("organiser login is not configured")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	ErrPublishingDisabled = errors.New("schedule publishing is not configured")
	ErrImportFailed       = errors.New("registration import failed")
)
