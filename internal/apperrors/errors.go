package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the actor is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates a business-rule gate rejected the operation
// (full shift, duplicate claim, quota reached, closed window, ...).
// Callers wrap it with the specific gate message.
var ErrConflict = errors.New("operation conflicts with current state")
