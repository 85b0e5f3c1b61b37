package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("authentication failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("action not allowed")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrInvalidCommentID   = errors.New("invalid comment id")
)

// ValidationError carries a client-facing reason for a rejected request.
// errors.Is(err, ErrValidation) reports true for it.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
