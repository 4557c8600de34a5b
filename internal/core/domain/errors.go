package domain

import "errors"

// Not-found failures. Messages are safe to return to callers verbatim.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
)

// Validation and business-rule failures.
var (
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrEmailTaken      = errors.New("email is already in use")
	ErrDuplicateCode   = errors.New("project code is already in use")
	ErrInvalidRole     = errors.New("unknown role name")
	ErrAdminExists     = errors.New("an administrator account already exists")
	ErrBadInvitation   = errors.New("invalid invitation code")
	ErrSetupDisabled   = errors.New("initial setup is disabled")
)

// Authentication and authorization failures. The failure translator maps
// these to fixed, non-leaking messages.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrForbidden          = errors.New("access denied")
)
