package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these onto HTTP
// codes; the repository layer wraps driver failures separately so callers can
// always tell "fix your input" from "something is broken".
var (
	ErrNotFound               = errors.New("resource not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists     = errors.New("email already registered")
	ErrInvalidInput           = errors.New("invalid input")
	ErrDuplicateName          = errors.New("a party with that name already exists")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("access denied")
	ErrConflict               = errors.New("conflicts with current state")
)
