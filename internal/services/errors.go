package services

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to the handler layer for HTTP mapping.
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrCourseCodeExists = errors.New("course code already exists for this user")
	ErrEmailExists      = errors.New("email already registered")

	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid assignment status")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrCourseNotOwned = errors.New("course does not belong to this user")

	ErrServiceManagerNotInitialized = errors.New("service manager not initialized")
	ErrServiceManagerShutdown       = errors.New("service manager is shut down")
)

// PermissionError carries the denied operation for logging.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %d cannot %s %s %d: %s", e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}
